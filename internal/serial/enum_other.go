//go:build !linux

package serial

import "github.com/Shoaibashk/serialport/serialerr"

// Only linux has an enumeration backend with its own error taxonomy.
func enumerationError(err error) *serialerr.Error {
	return serialerr.FromIOError(err)
}
