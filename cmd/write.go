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
	"encoding/hex"
	"fmt"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/spf13/cobra"
)

// RegisterWriteCommand adds the write command to the root command
func RegisterWriteCommand(root *cobra.Command) {
	writeCmd := &cobra.Command{
		Use:   "write PORT DATA [flags]",
		Short: "Write data to a serial port",
		Long: `Open a serial port, write DATA and close it again.

Example:
  serialport write COM1 "Hello"            # Write text
  serialport write COM1 --hex 48656C6C6F   # Write hex data
  serialport write COM1 "AT" --drain       # Wait until the data is transmitted`,
		Args: cobra.ExactArgs(2),
		RunE: runWrite,
	}

	addPortFlags(writeCmd)
	writeCmd.Flags().Bool("hex", false, "interpret data as hex string")
	writeCmd.Flags().Bool("drain", false, "wait until all data is transmitted before closing")
	root.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	portName := args[0]
	hexMode, _ := cmd.Flags().GetBool("hex")
	drain, _ := cmd.Flags().GetBool("drain")

	data := []byte(args[1])
	if hexMode {
		decoded, err := hex.DecodeString(args[1])
		if err != nil {
			return serialerr.New(serialerr.InvalidInput, "invalid hex data: "+err.Error(), err)
		}
		data = decoded
	}

	manager, session, err := openSession(cmd, portName)
	if err != nil {
		return reportError("opening port", err)
	}

	n, writeErr := manager.Write(portName, session.ID, data)
	if writeErr == nil && drain {
		writeErr = manager.Drain(portName, session.ID)
	}
	closeErr := closeSession(manager, session)
	if writeErr != nil {
		return reportError("writing port", writeErr)
	}
	if closeErr != nil {
		return closeErr
	}

	logger.Debug("write complete", "port", portName, "bytes", n, "drained", drain)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, portName)
	return nil
}
