//go:build unix

package serialerr

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func errnoKind(code syscall.Errno) Kind {
	switch code {
	case unix.EBUSY, unix.EISDIR, unix.ELOOP, unix.ENOTDIR, unix.ENOENT, unix.ENODEV, unix.ENXIO, unix.EACCES:
		return NoDevice
	case unix.EINVAL, unix.ENAMETOOLONG:
		return InvalidInput
	case unix.EINTR:
		return IoInterrupted
	case unix.EWOULDBLOCK:
		return IoWouldBlock
	default:
		return IoOther
	}
}

func errnoName(code syscall.Errno) string {
	return unix.ErrnoName(code)
}
