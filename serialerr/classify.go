package serialerr

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"syscall"
)

// FromErrno classifies an explicit platform error code. The mapping is
// total: codes outside the known partition are IoOther.
func FromErrno(code syscall.Errno) *Error {
	return &Error{
		Kind:    errnoKind(code),
		Message: errnoText(code),
		Errno:   code,
		cause:   code,
	}
}

// FromSyscall classifies the error returned by a failed system call. It
// stands in for reading the thread's last error: the caller passes what the
// call just returned. Errors without a platform code are Unknown.
// A nil err returns nil.
func FromSyscall(err error) *Error {
	if err == nil {
		return nil
	}

	var code syscall.Errno
	if errors.As(err, &code) {
		return FromErrno(code)
	}

	return newError(Unknown, err.Error(), err)
}

// FromIOError classifies an error produced by the os, io or net layers.
//
// An embedded platform code is delegated to FromErrno. Otherwise the
// failure never reached the OS: the I/O layer's own condition is kept as the
// kind and its description becomes the message verbatim. Errors that are
// already normalized are returned unchanged. A nil err returns nil.
func FromIOError(err error) *Error {
	if err == nil {
		return nil
	}

	var normalized *Error
	if errors.As(err, &normalized) {
		return normalized
	}

	var code syscall.Errno
	if errors.As(err, &code) {
		return FromErrno(code)
	}

	return newError(ioKind(err), err.Error(), err)
}

// ioKind maps conditions raised by the generic I/O layer.
func ioKind(err error) Kind {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return IoTimedOut
	case errors.Is(err, context.Canceled):
		return IoInterrupted
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return IoUnexpectedEOF
	case errors.Is(err, os.ErrClosed), errors.Is(err, net.ErrClosed), errors.Is(err, io.ErrClosedPipe):
		return IoClosed
	default:
		return IoOther
	}
}

// errnoText resolves the platform description of code. An empty
// description degrades to a generic message.
func errnoText(code syscall.Errno) string {
	if s := code.Error(); s != "" {
		return s
	}
	return "os error " + strconv.Itoa(int(code))
}
