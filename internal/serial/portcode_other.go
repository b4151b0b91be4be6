//go:build !unix && !windows

package serial

import (
	"syscall"

	"go.bug.st/serial"
)

func portErrno(serial.PortErrorCode) syscall.Errno {
	return 0
}
