//go:build unix

package serial

import (
	"syscall"

	"go.bug.st/serial"
	"golang.org/x/sys/unix"
)

// portErrno returns the errno go.bug.st/serial folded into code, or zero
// when the code stands for no single errno.
func portErrno(code serial.PortErrorCode) syscall.Errno {
	switch code {
	case serial.PortBusy:
		return unix.EBUSY
	case serial.PermissionDenied:
		return unix.EACCES
	case serial.PortNotFound:
		return unix.ENOENT
	case serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidParity, serial.InvalidStopBits, serial.InvalidTimeoutValue:
		return unix.EINVAL
	default:
		return 0
	}
}
