package serial

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/stretchr/testify/assert"
	"go.bug.st/serial"
)

func TestNormalizePortError(t *testing.T) {
	portErr := &serial.PortError{}

	got := normalize(fmt.Errorf("open /dev/ttyACM0: %w", portErr))
	assert.Equal(t, serialerr.NoDevice, got.Kind)
	assert.ErrorIs(t, got, portErr)
}

func TestPortErrorKind(t *testing.T) {
	tests := []struct {
		code  serial.PortErrorCode
		want  serialerr.Kind
		known bool
	}{
		{serial.PortBusy, serialerr.NoDevice, true},
		{serial.PortNotFound, serialerr.NoDevice, true},
		{serial.InvalidSerialPort, serialerr.NoDevice, true},
		{serial.PermissionDenied, serialerr.NoDevice, true},
		{serial.InvalidSpeed, serialerr.InvalidInput, true},
		{serial.InvalidDataBits, serialerr.InvalidInput, true},
		{serial.InvalidParity, serialerr.InvalidInput, true},
		{serial.InvalidStopBits, serialerr.InvalidInput, true},
		{serial.InvalidTimeoutValue, serialerr.InvalidInput, true},
		{serial.PortClosed, serialerr.IoClosed, true},
		{serial.ErrorEnumeratingPorts, 0, false},
		{serial.FunctionNotImplemented, 0, false},
	}

	for _, tt := range tests {
		kind, known := portErrorKind(tt.code)
		assert.Equal(t, tt.known, known, "code %d", tt.code)
		if tt.known {
			assert.Equal(t, tt.want, kind, "code %d", tt.code)
		}
	}
}

func TestNormalizeGenericError(t *testing.T) {
	src := errors.New("termios: unsupported line discipline")

	got := normalize(src)
	assert.Equal(t, serialerr.IoOther, got.Kind)
	assert.Equal(t, src.Error(), got.Message)
}

func TestNormalizeKeepsNormalized(t *testing.T) {
	src := invalidConfig("invalid parity %q", "sideways")

	assert.Same(t, src, normalize(src))
	assert.ErrorIs(t, src, ErrInvalidConfig)
	assert.Equal(t, `invalid serial configuration: invalid parity "sideways"`, src.Error())
}

func TestPortErrnoAgreesWithKind(t *testing.T) {
	codes := []serial.PortErrorCode{
		serial.PortBusy, serial.PortNotFound, serial.InvalidSerialPort, serial.PermissionDenied,
		serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidParity, serial.InvalidStopBits,
		serial.InvalidTimeoutValue, serial.PortClosed,
	}

	for _, code := range codes {
		errno := portErrno(code)
		if errno == 0 {
			continue
		}
		kind, _ := portErrorKind(code)
		assert.Equal(t, kind, serialerr.FromErrno(errno).Kind, "code %d", code)
	}
}
