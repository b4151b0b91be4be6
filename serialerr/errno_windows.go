//go:build windows

package serialerr

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Windows reports failures as system error codes; the partition follows the
// same intent as the unix one.
func errnoKind(code syscall.Errno) Kind {
	switch code {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND, windows.ERROR_ACCESS_DENIED,
		windows.ERROR_SHARING_VIOLATION, windows.ERROR_BUSY, windows.ERROR_DEV_NOT_EXIST:
		return NoDevice
	case windows.ERROR_INVALID_PARAMETER, windows.ERROR_INVALID_NAME, windows.ERROR_FILENAME_EXCED_RANGE:
		return InvalidInput
	case windows.ERROR_OPERATION_ABORTED:
		return IoInterrupted
	case windows.ERROR_IO_PENDING:
		return IoWouldBlock
	default:
		return IoOther
	}
}

func errnoName(code syscall.Errno) string {
	return ""
}
