/*
Copyright 2024 SerialPort Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package serialerr normalizes platform failures into a single error type.
//
// Every operation of the serial port library reports failures as *Error. An
// Error carries a Kind from a closed set and a human readable message, so
// callers can switch on the kind without knowing which operating system
// facility failed.
package serialerr

import (
	"errors"
	"fmt"
	"strconv"
	"syscall"
)

// Kind classifies a normalized error
type Kind int

const (
	// Unknown is used for failures that carry no usable classification,
	// such as allocation failures reported by the enumeration backend.
	Unknown Kind = iota
	// NoDevice means the requested device is absent, busy, inaccessible or
	// names something that cannot be opened as a device.
	NoDevice
	// InvalidInput means an argument was rejected.
	InvalidInput
	// IoInterrupted means the operation was interrupted and may be retried.
	IoInterrupted
	// IoWouldBlock means the operation would block; back off or poll.
	IoWouldBlock
	// IoTimedOut means a deadline expired before the operation completed.
	IoTimedOut
	// IoUnexpectedEOF means the stream ended early.
	IoUnexpectedEOF
	// IoClosed means the port or file was already closed.
	IoClosed
	// IoOther is any other I/O failure.
	IoOther
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case NoDevice:
		return "no_device"
	case InvalidInput:
		return "invalid_input"
	case IoInterrupted:
		return "io_interrupted"
	case IoWouldBlock:
		return "io_would_block"
	case IoTimedOut:
		return "io_timed_out"
	case IoUnexpectedEOF:
		return "io_unexpected_eof"
	case IoClosed:
		return "io_closed"
	case IoOther:
		return "io_other"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsIO reports whether k belongs to the I/O class.
func (k Kind) IsIO() bool {
	return k >= IoInterrupted && k <= IoOther
}

// Error is the normalized error returned across the library.
type Error struct {
	Kind    Kind
	Message string

	// Errno is the platform code that was classified, or zero when the
	// failure did not originate from one.
	Errno syscall.Errno

	cause error
}

// New creates an Error of the given kind. cause may be nil.
func New(kind Kind, message string, cause error) *Error {
	return newError(kind, message, cause)
}

// Newf creates an Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return newError(kind, fmt.Sprintf(format, args...), nil)
}

func newError(kind Kind, message string, cause error) *Error {
	if message == "" {
		message = kind.String()
	}
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the original error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by kind. A target with an empty Message matches
// every error of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Name returns the symbolic name of the platform code, e.g. "EBUSY".
// It is empty when there is no code or the platform has no name for it.
func (e *Error) Name() string {
	if e.Errno == 0 {
		return ""
	}
	return errnoName(e.Errno)
}

// KindOf returns the kind of err if it is, or wraps, an *Error. Any other
// non-nil error is Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
