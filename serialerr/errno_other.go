//go:build !unix && !windows

package serialerr

import "syscall"

func errnoKind(code syscall.Errno) Kind {
	switch code {
	case syscall.EBUSY, syscall.EISDIR, syscall.ELOOP, syscall.ENOTDIR, syscall.ENOENT, syscall.ENODEV, syscall.ENXIO, syscall.EACCES:
		return NoDevice
	case syscall.EINVAL, syscall.ENAMETOOLONG:
		return InvalidInput
	case syscall.EINTR:
		return IoInterrupted
	case syscall.EAGAIN:
		return IoWouldBlock
	default:
		return IoOther
	}
}

func errnoName(code syscall.Errno) string {
	return ""
}
