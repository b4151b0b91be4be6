/*
Copyright 2024 SerialPort Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RegisterProbeCommand adds the probe command to the root command
func RegisterProbeCommand(root *cobra.Command) {
	probeCmd := &cobra.Command{
		Use:   "probe PORT [flags]",
		Short: "Open and close a serial port to check it is usable",
		Long: `Open a serial port with the given configuration, report the session, and
close it again. A failure is reported with its normalized error kind.

Example:
  serialport probe COM1                           # Probe with config defaults
  serialport probe COM1 --baud 115200             # Probe with a specific baud rate
  serialport probe /dev/ttyUSB0 --baud 9600 --data-bits 8 --stop-bits 1 --parity none`,
		Args: cobra.ExactArgs(1),
		RunE: runProbe,
	}

	addPortFlags(probeCmd)
	root.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	portName := args[0]

	manager, session, err := openSession(cmd, portName)
	if err != nil {
		return reportError("opening port", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Port %s opened successfully\n", portName)
	fmt.Fprintf(out, "  Session ID: %s\n", session.ID)
	fmt.Fprintf(out, "  Client ID:  %s\n", session.ClientID)
	fmt.Fprintf(out, "  Config:     %s\n", formatConfig(session.Config))

	if err := closeSession(manager, session); err != nil {
		return err
	}
	fmt.Fprintf(out, "Port %s closed\n", portName)
	return nil
}
