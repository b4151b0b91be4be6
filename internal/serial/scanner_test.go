package serial

import (
	"errors"
	"testing"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

func staticLister(ports ...*enumerator.PortDetails) Lister {
	return func() ([]*enumerator.PortDetails, error) {
		return ports, nil
	}
}

func TestScan(t *testing.T) {
	list := staticLister(
		&enumerator.PortDetails{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", Product: "FT232R"},
		&enumerator.PortDetails{Name: "/dev/ttyS0"},
		&enumerator.PortDetails{Name: "/dev/ttyACM0", IsUSB: true},
	)

	s, err := NewScannerWithLister([]string{`^/dev/ttyS`}, nil, list)
	require.NoError(t, err)

	ports, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, ports, 2)

	assert.Equal(t, "/dev/ttyACM0", ports[0].Name)
	assert.Equal(t, "USB Serial Device", ports[0].Description)
	assert.Equal(t, "/dev/ttyUSB0", ports[1].Name)
	assert.Equal(t, "FT232R", ports[1].Description)
	assert.Equal(t, `USB\VID_0403&PID_6001`, ports[1].HardwareID)
	assert.Equal(t, PortTypeUSB, ports[1].PortType)

	assert.Equal(t, ports, s.GetCached())
}

func TestScanMarksOpenPorts(t *testing.T) {
	m := NewManagerWithOpener(false, DefaultConfig(), func(name string, mode *serial.Mode) (serial.Port, error) {
		return &fakePort{}, nil
	})
	_, err := m.OpenPort("/dev/ttyUSB0", DefaultConfig(), "client-a", false)
	require.NoError(t, err)

	s, err := NewScannerWithLister(nil, m, staticLister(&enumerator.PortDetails{Name: "/dev/ttyUSB0", IsUSB: true}))
	require.NoError(t, err)

	port, err := s.GetPort("/dev/ttyUSB0")
	require.NoError(t, err)
	assert.True(t, port.IsOpen)
	assert.Equal(t, "client-a", port.LockedBy)
}

func TestGetPortNotFound(t *testing.T) {
	s, err := NewScannerWithLister(nil, nil, staticLister())
	require.NoError(t, err)

	_, err = s.GetPort("/dev/ttyUSB7")
	assert.Equal(t, serialerr.NoDevice, serialerr.KindOf(err))
	assert.ErrorIs(t, err, ErrPortNotFound)
}

func TestNewScannerInvalidPattern(t *testing.T) {
	_, err := NewScannerWithLister([]string{"("}, nil, staticLister())
	assert.Equal(t, serialerr.InvalidInput, serialerr.KindOf(err))
}

func TestScanEnumerationFailure(t *testing.T) {
	src := errors.New("enumeration backend unavailable")
	s, err := NewScannerWithLister(nil, nil, func() ([]*enumerator.PortDetails, error) {
		return nil, src
	})
	require.NoError(t, err)

	_, err = s.Scan()
	var normalized *serialerr.Error
	require.ErrorAs(t, err, &normalized)
	assert.Equal(t, serialerr.IoOther, normalized.Kind)
	assert.Equal(t, src.Error(), normalized.Message)
	assert.ErrorIs(t, err, src)
	assert.Nil(t, s.GetCached())
}
