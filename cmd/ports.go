package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Shoaibashk/serialport/config"
	"github.com/Shoaibashk/serialport/internal/serial"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	bugserial "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Device access points. Tests replace them with fakes.
var (
	openPort  serial.Opener = bugserial.Open
	listPorts serial.Lister = enumerator.GetDetailedPortsList
)

func newManager(cfg *config.Config) (*serial.Manager, error) {
	defaults, err := cfg.Serial.Defaults.ToPortConfig()
	if err != nil {
		return nil, err
	}
	return serial.NewManagerWithOpener(cfg.Serial.AllowSharedAccess, defaults, openPort), nil
}

func newScanner(cfg *config.Config, manager *serial.Manager) (*serial.Scanner, error) {
	return serial.NewScannerWithLister(cfg.Serial.ExcludePatterns, manager, listPorts)
}

// addPortFlags registers the line settings shared by probe, read and write.
// Unset flags fall back to the configured serial defaults.
func addPortFlags(cmd *cobra.Command) {
	cmd.Flags().Int("baud", 0, "baud rate (default from config)")
	cmd.Flags().Int("data-bits", 0, "data bits (5, 6, 7, 8)")
	cmd.Flags().String("stop-bits", "", "stop bits (1, 1.5, 2)")
	cmd.Flags().String("parity", "", "parity (none, odd, even, mark, space)")
	cmd.Flags().String("flow-control", "", "flow control (none, hardware, software)")
	cmd.Flags().Duration("timeout", 0, "read timeout (e.g. 500ms)")
	cmd.Flags().String("client-id", "", "client ID for locking (auto-generated if not provided)")
}

func portConfigFromFlags(cmd *cobra.Command, defaults serial.PortConfig) (serial.PortConfig, error) {
	cfg := defaults
	flags := cmd.Flags()

	if flags.Changed("baud") {
		cfg.BaudRate, _ = flags.GetInt("baud")
	}
	if flags.Changed("data-bits") {
		cfg.DataBits, _ = flags.GetInt("data-bits")
	}
	if flags.Changed("stop-bits") {
		value, _ := flags.GetString("stop-bits")
		stopBits, err := serial.ParseStopBitsString(value)
		if err != nil {
			return cfg, err
		}
		cfg.StopBits = stopBits
	}
	if flags.Changed("parity") {
		value, _ := flags.GetString("parity")
		parity, err := serial.ParseParity(value)
		if err != nil {
			return cfg, err
		}
		cfg.Parity = parity
	}
	if flags.Changed("flow-control") {
		value, _ := flags.GetString("flow-control")
		flowControl, err := serial.ParseFlowControl(value)
		if err != nil {
			return cfg, err
		}
		cfg.FlowControl = flowControl
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		cfg.ReadTimeoutMs = int(timeout / time.Millisecond)
	}

	return cfg, cfg.Validate()
}

// openSession opens portName with the settings from flags and config. The
// caller closes the returned session through the manager.
func openSession(cmd *cobra.Command, portName string) (*serial.Manager, *serial.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	manager, err := newManager(cfg)
	if err != nil {
		return nil, nil, err
	}

	portConfig, err := portConfigFromFlags(cmd, manager.GetDefaultConfig())
	if err != nil {
		return nil, nil, err
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	if clientID == "" {
		clientID = "cli-" + uuid.NewString()
	}

	logger.Debug("opening port", "port", portName, "baud", portConfig.BaudRate, "client", clientID)

	session, err := manager.OpenPort(portName, portConfig, clientID, true)
	if err != nil {
		return nil, nil, err
	}
	return manager, session, nil
}

func closeSession(manager *serial.Manager, session *serial.Session) error {
	if err := manager.ClosePort(session.PortName, session.ID); err != nil {
		return reportError("closing port", err)
	}
	return nil
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func formatConfig(cfg serial.PortConfig) string {
	parity := strings.ToUpper(cfg.Parity.String()[:1])
	return fmt.Sprintf("%d %d%s%s flow=%s", cfg.BaudRate, cfg.DataBits, parity, cfg.StopBits, cfg.FlowControl)
}
