//go:build linux

package serial

import (
	"errors"
	"strings"
	"syscall"

	"github.com/Shoaibashk/serialport/serialerr"
	"go.bug.st/serial/enumerator"
	"golang.org/x/sys/unix"
)

// enumError adapts a failure of the sysfs backed enumerator to the
// serialerr.EnumError capability.
type enumError struct {
	kind   serialerr.EnumErrorKind
	ioKind serialerr.Kind
	code   syscall.Errno
	err    error
}

func newEnumError(err error) *enumError {
	e := &enumError{kind: serialerr.EnumIO, ioKind: serialerr.IoOther, err: err}

	code, ok := enumErrno(err)
	if !ok {
		e.ioKind = serialerr.FromIOError(err).Kind
		return e
	}
	e.code = code

	switch code {
	case unix.ENOMEM:
		e.kind = serialerr.EnumNoMem
	case unix.EINVAL:
		e.kind = serialerr.EnumInvalidInput
	default:
		e.ioKind = serialerr.FromErrno(code).Kind
	}
	return e
}

func (e *enumError) Error() string                     { return e.err.Error() }
func (e *enumError) EnumKind() serialerr.EnumErrorKind { return e.kind }
func (e *enumError) IOKind() serialerr.Kind            { return e.ioKind }

// Unwrap exposes the recovered code next to the original error so
// errors.As finds it even when the enumerator dropped it from the chain.
func (e *enumError) Unwrap() []error {
	if e.code == 0 {
		return []error{e.err}
	}
	return []error{e.err, e.code}
}

// enumErrno finds the platform code behind an enumeration failure.
// PortEnumerationError keeps its cause unexported and the sysfs helpers
// format theirs with %s, so for those the code is matched from the
// trailing description.
func enumErrno(err error) (syscall.Errno, bool) {
	var code syscall.Errno
	if errors.As(err, &code) {
		return code, true
	}

	var enumErr *enumerator.PortEnumerationError
	if !errors.As(err, &enumErr) {
		return 0, false
	}
	return errnoFromText(err.Error())
}

// maxErrno bounds the scan of the errno table; linux codes stay below it.
const maxErrno = 256

func errnoFromText(text string) (syscall.Errno, bool) {
	var (
		found syscall.Errno
		best  int
	)
	for code := syscall.Errno(1); code < maxErrno; code++ {
		if unix.ErrnoName(code) == "" {
			continue
		}
		desc := code.Error()
		if (text == desc || strings.HasSuffix(text, ": "+desc)) && len(desc) > best {
			found, best = code, len(desc)
		}
	}
	return found, best > 0
}

func enumerationError(err error) *serialerr.Error {
	return serialerr.FromEnumError(newEnumError(err))
}
