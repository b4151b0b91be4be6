package serial

import (
	"testing"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PortConfig)
	}{
		{"zero baud", func(c *PortConfig) { c.BaudRate = 0 }},
		{"low baud", func(c *PortConfig) { c.BaudRate = 110 }},
		{"data bits low", func(c *PortConfig) { c.DataBits = 4 }},
		{"data bits high", func(c *PortConfig) { c.DataBits = 9 }},
		{"stop bits", func(c *PortConfig) { c.StopBits = StopBits(7) }},
		{"parity", func(c *PortConfig) { c.Parity = Parity(-1) }},
		{"flow control", func(c *PortConfig) { c.FlowControl = FlowControl(3) }},
		{"negative timeout", func(c *PortConfig) { c.ReadTimeoutMs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, serialerr.InvalidInput, serialerr.KindOf(err))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestToSerialMode(t *testing.T) {
	cfg := PortConfig{BaudRate: 19200, DataBits: 7, StopBits: StopBits2, Parity: ParityOdd}

	mode := cfg.ToSerialMode()
	assert.Equal(t, &serial.Mode{
		BaudRate: 19200,
		DataBits: 7,
		StopBits: serial.TwoStopBits,
		Parity:   serial.OddParity,
	}, mode)
}

func TestParsers(t *testing.T) {
	p, err := ParseParity("EVEN")
	require.NoError(t, err)
	assert.Equal(t, ParityEven, p)

	fc, err := ParseFlowControl("rts/cts")
	require.NoError(t, err)
	assert.Equal(t, FlowControlHardware, fc)

	sb, err := ParseStopBits(15)
	require.NoError(t, err)
	assert.Equal(t, StopBits1Half, sb)

	sb, err = ParseStopBitsString("1.5")
	require.NoError(t, err)
	assert.Equal(t, StopBits1Half, sb)

	for _, err := range []error{
		func() error { _, err := ParseParity("sideways"); return err }(),
		func() error { _, err := ParseFlowControl("smoke"); return err }(),
		func() error { _, err := ParseStopBits(3); return err }(),
		func() error { _, err := ParseStopBitsString("3"); return err }(),
	} {
		assert.Equal(t, serialerr.InvalidInput, serialerr.KindOf(err))
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "mark", ParityMark.String())
	assert.Equal(t, "1.5", StopBits1Half.String())
	assert.Equal(t, "software", FlowControlSoftware.String())
	assert.Equal(t, "USB", PortTypeUSB.String())
}
