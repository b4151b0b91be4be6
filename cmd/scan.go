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
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Shoaibashk/serialport/internal/serial"
	"github.com/spf13/cobra"
)

// RegisterScanCommand adds the scan command to the root command
func RegisterScanCommand(root *cobra.Command) {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan and list available serial ports",
		Long: `Scan the system for available serial ports and display their information.

This command discovers USB, native, Bluetooth and virtual serial ports.
Ports matching serial.exclude_patterns in the config are skipped.

Example:
  serialport scan              # List all ports
  serialport scan --json       # Output as JSON
  serialport scan --details    # Show detailed port information`,
		RunE: runScan,
	}

	scanCmd.Flags().Bool("json", false, "output in JSON format")
	scanCmd.Flags().BoolP("details", "d", false, "show detailed port information")
	root.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	details, _ := cmd.Flags().GetBool("details")

	cfg, err := loadConfig()
	if err != nil {
		return reportError("loading config", err)
	}

	scanner, err := newScanner(cfg, nil)
	if err != nil {
		return reportError("creating scanner", err)
	}

	ports, err := scanner.Scan()
	if err != nil {
		return reportError("scanning ports", err)
	}
	logger.Debug("scan complete", "ports", len(ports))

	out := cmd.OutOrStdout()
	if len(ports) == 0 {
		if jsonOutput {
			fmt.Fprintln(out, "[]")
		} else {
			fmt.Fprintln(out, "No serial ports found.")
		}
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ports)
	}

	return printPortsTable(out, ports, details)
}

func printPortsTable(out io.Writer, ports []serial.PortInfo, details bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if details {
		fmt.Fprintln(w, "PORT\tDESCRIPTION\tHARDWARE ID\tPRODUCT\tSERIAL\tTYPE")
		fmt.Fprintln(w, "----\t-----------\t-----------\t-------\t------\t----")
		for _, port := range ports {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				port.Name,
				truncate(port.Description, 20),
				truncate(port.HardwareID, 25),
				truncate(port.Product, 15),
				truncate(port.SerialNumber, 15),
				port.PortType,
			)
		}
	} else {
		fmt.Fprintln(w, "PORT\tDESCRIPTION\tTYPE")
		fmt.Fprintln(w, "----\t-----------\t----")
		for _, port := range ports {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				port.Name,
				truncate(port.Description, 40),
				port.PortType,
			)
		}
	}

	return w.Flush()
}
