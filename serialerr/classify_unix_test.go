//go:build unix

package serialerr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFromErrnoPartition(t *testing.T) {
	tests := []struct {
		name string
		code syscall.Errno
		want Kind
	}{
		{"busy", unix.EBUSY, NoDevice},
		{"is a directory", unix.EISDIR, NoDevice},
		{"too many symlinks", unix.ELOOP, NoDevice},
		{"not a directory", unix.ENOTDIR, NoDevice},
		{"no such entry", unix.ENOENT, NoDevice},
		{"no such device", unix.ENODEV, NoDevice},
		{"no such device or address", unix.ENXIO, NoDevice},
		{"permission denied", unix.EACCES, NoDevice},
		{"invalid argument", unix.EINVAL, InvalidInput},
		{"name too long", unix.ENAMETOOLONG, InvalidInput},
		{"interrupted", unix.EINTR, IoInterrupted},
		{"would block", unix.EWOULDBLOCK, IoWouldBlock},
		{"again", unix.EAGAIN, IoWouldBlock},
		{"out of memory", unix.ENOMEM, IoOther},
		{"i/o error", unix.EIO, IoOther},
		{"operation not permitted", unix.EPERM, IoOther},
		{"unused code", syscall.Errno(4242), IoOther},
		{"zero", syscall.Errno(0), IoOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromErrno(tt.code)
			require.NotNil(t, err)

			assert.Equal(t, tt.want, err.Kind)
			assert.NotEmpty(t, err.Message)
			assert.Equal(t, tt.code, err.Errno)
		})
	}
}

func TestFromErrnoMessage(t *testing.T) {
	assert.Equal(t, unix.EBUSY.Error(), FromErrno(unix.EBUSY).Message)
	assert.Equal(t, "errno 4242", FromErrno(syscall.Errno(4242)).Message)
}

func TestFromErrnoIdempotent(t *testing.T) {
	for _, code := range []syscall.Errno{unix.ENOENT, unix.EINTR, unix.ENOMEM, syscall.Errno(4242)} {
		assert.Equal(t, FromErrno(code), FromErrno(code))
	}
}

func TestFromErrnoName(t *testing.T) {
	assert.Equal(t, "EBUSY", FromErrno(unix.EBUSY).Name())
	assert.Empty(t, FromErrno(syscall.Errno(4242)).Name())
	assert.Empty(t, New(IoOther, "framing", nil).Name())
}

func TestFromErrnoUnwrapsToCode(t *testing.T) {
	err := FromErrno(unix.ENOENT)

	assert.ErrorIs(t, err, unix.ENOENT)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFromSyscall(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FromSyscall(nil))
	})

	t.Run("bare errno", func(t *testing.T) {
		assert.Equal(t, FromErrno(unix.EACCES), FromSyscall(unix.EACCES))
	})

	t.Run("wrapped errno", func(t *testing.T) {
		err := os.NewSyscallError("ioctl", unix.ENOTTY)
		assert.Equal(t, FromErrno(unix.ENOTTY), FromSyscall(err))
	})

	t.Run("no platform code", func(t *testing.T) {
		err := FromSyscall(errors.New("tcgetattr: bad state"))
		assert.Equal(t, Unknown, err.Kind)
		assert.Equal(t, "tcgetattr: bad state", err.Message)
	})
}

func TestFromIOErrorDelegatesToErrno(t *testing.T) {
	for _, code := range []syscall.Errno{unix.EINTR, unix.ENOENT, unix.EINVAL, unix.EAGAIN, unix.EIO} {
		wrapped := &os.PathError{Op: "open", Path: "/dev/ttyUSB0", Err: code}

		got := FromIOError(wrapped)
		assert.Equal(t, FromErrno(code).Kind, got.Kind, code.Error())
		assert.Equal(t, code, got.Errno)
	}
}

func TestFromIOErrorOpenMissingDevice(t *testing.T) {
	_, err := os.Open("/dev/this-serial-port-does-not-exist")
	require.Error(t, err)

	got := FromIOError(err)
	assert.Equal(t, NoDevice, got.Kind)
	assert.Equal(t, "ENOENT", got.Name())
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("open /dev/ttyS0: %w", FromErrno(unix.EBUSY))

	assert.ErrorIs(t, err, &Error{Kind: NoDevice})
	assert.ErrorIs(t, err, &Error{Kind: NoDevice, Message: unix.EBUSY.Error()})
	assert.NotErrorIs(t, err, &Error{Kind: InvalidInput})
	assert.NotErrorIs(t, err, &Error{Kind: NoDevice, Message: "something else"})
	assert.Equal(t, NoDevice, KindOf(err))
}
