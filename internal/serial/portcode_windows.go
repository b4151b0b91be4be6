//go:build windows

package serial

import (
	"syscall"

	"go.bug.st/serial"
	"golang.org/x/sys/windows"
)

// portErrno returns the system error code go.bug.st/serial folded into
// code, or zero when the code stands for no single one.
func portErrno(code serial.PortErrorCode) syscall.Errno {
	switch code {
	case serial.PortBusy, serial.PermissionDenied:
		return windows.ERROR_ACCESS_DENIED
	case serial.PortNotFound:
		return windows.ERROR_FILE_NOT_FOUND
	case serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidParity, serial.InvalidStopBits, serial.InvalidTimeoutValue:
		return windows.ERROR_INVALID_PARAMETER
	default:
		return 0
	}
}
