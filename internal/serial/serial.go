package serial

import (
	"strings"
	"time"

	"github.com/Shoaibashk/serialport/serialerr"
	"go.bug.st/serial"
)

// Parity represents the parity setting for serial communication
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

// String returns the string representation of Parity
func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityMark:
		return "mark"
	case ParitySpace:
		return "space"
	default:
		return "unknown"
	}
}

// StopBits represents the stop bits setting
type StopBits int

const (
	StopBits1 StopBits = iota
	StopBits1Half
	StopBits2
)

// String returns the string representation of StopBits
func (s StopBits) String() string {
	switch s {
	case StopBits1:
		return "1"
	case StopBits1Half:
		return "1.5"
	case StopBits2:
		return "2"
	default:
		return "unknown"
	}
}

// FlowControl represents the flow control setting
type FlowControl int

const (
	FlowControlNone     FlowControl = iota
	FlowControlHardware             // RTS/CTS
	FlowControlSoftware             // XON/XOFF
)

// String returns the string representation of FlowControl
func (f FlowControl) String() string {
	switch f {
	case FlowControlNone:
		return "none"
	case FlowControlHardware:
		return "hardware"
	case FlowControlSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// PortConfig represents serial port configuration
type PortConfig struct {
	BaudRate      int
	DataBits      int
	StopBits      StopBits
	Parity        Parity
	FlowControl   FlowControl
	ReadTimeoutMs int
}

// DefaultConfig returns a default port configuration
func DefaultConfig() PortConfig {
	return PortConfig{
		BaudRate:      9600,
		DataBits:      8,
		StopBits:      StopBits1,
		Parity:        ParityNone,
		FlowControl:   FlowControlNone,
		ReadTimeoutMs: 1000,
	}
}

// Validate checks if the configuration is valid
func (c PortConfig) Validate() error {
	if c.BaudRate < 1 {
		return invalidConfig("baud rate must be positive, got %d", c.BaudRate)
	}

	// Custom rates are accepted as long as they are not below the slowest standard one
	if c.BaudRate < 300 {
		return invalidConfig("baud rate %d is too low", c.BaudRate)
	}

	if c.DataBits < 5 || c.DataBits > 8 {
		return invalidConfig("data bits must be 5-8, got %d", c.DataBits)
	}

	if c.StopBits < StopBits1 || c.StopBits > StopBits2 {
		return invalidConfig("invalid stop bits value")
	}

	if c.Parity < ParityNone || c.Parity > ParitySpace {
		return invalidConfig("invalid parity value")
	}

	if c.FlowControl < FlowControlNone || c.FlowControl > FlowControlSoftware {
		return invalidConfig("invalid flow control value")
	}

	if c.ReadTimeoutMs < 0 {
		return invalidConfig("read timeout must not be negative, got %d", c.ReadTimeoutMs)
	}

	return nil
}

// ToSerialMode converts PortConfig to serial.Mode for the underlying library
func (c PortConfig) ToSerialMode() *serial.Mode {
	mode := &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
	}

	switch c.StopBits {
	case StopBits1:
		mode.StopBits = serial.OneStopBit
	case StopBits1Half:
		mode.StopBits = serial.OnePointFiveStopBits
	case StopBits2:
		mode.StopBits = serial.TwoStopBits
	}

	switch c.Parity {
	case ParityNone:
		mode.Parity = serial.NoParity
	case ParityOdd:
		mode.Parity = serial.OddParity
	case ParityEven:
		mode.Parity = serial.EvenParity
	case ParityMark:
		mode.Parity = serial.MarkParity
	case ParitySpace:
		mode.Parity = serial.SpaceParity
	}

	return mode
}

// PortStatistics contains statistics about port usage
type PortStatistics struct {
	BytesSent     uint64
	BytesReceived uint64
	Errors        uint64
	LastErrorKind serialerr.Kind
	OpenedAt      time.Time
	LastActivity  time.Time
}

// ParseParity converts a parity string into a Parity enum.
func ParseParity(value string) (Parity, error) {
	switch strings.ToLower(value) {
	case "", "none":
		return ParityNone, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	case "mark":
		return ParityMark, nil
	case "space":
		return ParitySpace, nil
	default:
		return ParityNone, invalidConfig("invalid parity %q", value)
	}
}

// ParseFlowControl converts a flow control string into a FlowControl enum.
func ParseFlowControl(value string) (FlowControl, error) {
	switch strings.ToLower(value) {
	case "", "none":
		return FlowControlNone, nil
	case "hardware", "hw", "rts/cts":
		return FlowControlHardware, nil
	case "software", "sw", "xon/xoff":
		return FlowControlSoftware, nil
	default:
		return FlowControlNone, invalidConfig("invalid flow control %q", value)
	}
}

// ParseStopBits converts a stop bits integer into a StopBits enum. 15 stands for 1.5.
func ParseStopBits(value int) (StopBits, error) {
	switch value {
	case 1:
		return StopBits1, nil
	case 15:
		return StopBits1Half, nil
	case 2:
		return StopBits2, nil
	default:
		return StopBits1, invalidConfig("invalid stop bits %d", value)
	}
}

// ParseStopBitsString converts "1", "1.5" or "2" into a StopBits enum.
func ParseStopBitsString(value string) (StopBits, error) {
	switch value {
	case "", "1":
		return StopBits1, nil
	case "1.5":
		return StopBits1Half, nil
	case "2":
		return StopBits2, nil
	default:
		return StopBits1, invalidConfig("invalid stop bits %q", value)
	}
}
