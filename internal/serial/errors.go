package serial

import (
	"errors"
	"fmt"

	"github.com/Shoaibashk/serialport/serialerr"
	"go.bug.st/serial"
)

var (
	// ErrPortNotOpen is returned when operations are attempted on a port without a session
	ErrPortNotOpen = errors.New("serial port is not open")
	// ErrPortLocked is returned when another session holds the port
	ErrPortLocked = errors.New("serial port is locked by another session")
	// ErrInvalidSession is returned when the session ID does not own the port
	ErrInvalidSession = errors.New("invalid session")
	// ErrPortNotFound is returned when enumeration does not list the port
	ErrPortNotFound = errors.New("serial port not found")
	// ErrInvalidConfig is returned for rejected port settings
	ErrInvalidConfig = errors.New("invalid serial configuration")
)

// fail builds a normalized error around one of the package sentinels.
func fail(kind serialerr.Kind, sentinel error, format string, args ...interface{}) *serialerr.Error {
	err := fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	return serialerr.New(kind, err.Error(), err)
}

func invalidConfig(format string, args ...interface{}) *serialerr.Error {
	return fail(serialerr.InvalidInput, ErrInvalidConfig, format, args...)
}

// normalize converts a failure reported by go.bug.st/serial or the OS into
// the library's error type. err must not be nil.
func normalize(err error) *serialerr.Error {
	if code, ok := portErrorCode(err); ok {
		if kind, known := portErrorKind(code); known {
			normalized := serialerr.New(kind, err.Error(), err)
			normalized.Errno = portErrno(code)
			return normalized
		}
	}
	return serialerr.FromIOError(err)
}

func portErrorCode(err error) (serial.PortErrorCode, bool) {
	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr != nil {
		return portErr.Code(), true
	}
	return 0, false
}

// portErrorKind mirrors the errno partition for the serial library's own
// error codes. Codes it does not know fall back to I/O classification.
func portErrorKind(code serial.PortErrorCode) (serialerr.Kind, bool) {
	switch code {
	case serial.PortBusy, serial.PortNotFound, serial.InvalidSerialPort, serial.PermissionDenied:
		return serialerr.NoDevice, true
	case serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidParity, serial.InvalidStopBits, serial.InvalidTimeoutValue:
		return serialerr.InvalidInput, true
	case serial.PortClosed:
		return serialerr.IoClosed, true
	default:
		return 0, false
	}
}
