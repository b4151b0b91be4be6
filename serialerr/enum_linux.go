//go:build linux

package serialerr

import (
	"errors"
	"syscall"
)

// EnumErrorKind is the classification reported by the device enumeration
// backend.
type EnumErrorKind int

const (
	EnumNoMem EnumErrorKind = iota
	EnumInvalidInput
	EnumIO
)

// EnumError is implemented by errors from the device enumeration backend.
// Only linux builds provide the capability.
type EnumError interface {
	error
	EnumKind() EnumErrorKind
	// IOKind is the I/O subkind of an EnumIO error.
	IOKind() Kind
}

// FromEnumError folds an enumeration backend error into the normalized
// taxonomy, keeping its description verbatim. An I/O subkind outside the
// I/O class is reported as IoOther.
func FromEnumError(e EnumError) *Error {
	var kind Kind
	switch e.EnumKind() {
	case EnumNoMem:
		kind = Unknown
	case EnumInvalidInput:
		kind = InvalidInput
	default:
		kind = e.IOKind()
		if !kind.IsIO() {
			kind = IoOther
		}
	}

	normalized := newError(kind, e.Error(), e)

	var code syscall.Errno
	if errors.As(e, &code) {
		normalized.Errno = code
	}

	return normalized
}
