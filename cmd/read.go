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
	"encoding/json"
	"fmt"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/spf13/cobra"
)

// RegisterReadCommand adds the read command to the root command
func RegisterReadCommand(root *cobra.Command) {
	readCmd := &cobra.Command{
		Use:   "read PORT [flags]",
		Short: "Read data from a serial port",
		Long: `Open a serial port, perform one read and close it again.

A read that times out without data prints nothing and succeeds.

Example:
  serialport read COM1                     # Read available data
  serialport read COM1 --max-bytes 256     # Read up to 256 bytes
  serialport read COM1 --timeout 5s        # Read with 5 second timeout
  serialport read COM1 --format hex        # Print a hex dump`,
		Args: cobra.ExactArgs(1),
		RunE: runRead,
	}

	addPortFlags(readCmd)
	readCmd.Flags().Int("max-bytes", 1024, "maximum bytes to read")
	readCmd.Flags().String("format", "text", "output format (text, hex, json)")
	root.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	portName := args[0]
	maxBytes, _ := cmd.Flags().GetInt("max-bytes")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "text", "hex", "json":
	default:
		return serialerr.Newf(serialerr.InvalidInput, "unknown output format %q", format)
	}

	manager, session, err := openSession(cmd, portName)
	if err != nil {
		return reportError("opening port", err)
	}

	data, readErr := manager.Read(portName, session.ID, maxBytes)
	closeErr := closeSession(manager, session)
	if readErr != nil {
		return reportError("reading port", readErr)
	}
	if closeErr != nil {
		return closeErr
	}

	logger.Debug("read complete", "port", portName, "bytes", len(data))

	out := cmd.OutOrStdout()
	switch format {
	case "hex":
		if len(data) > 0 {
			fmt.Fprint(out, hex.Dump(data))
		}
	case "json":
		enc := json.NewEncoder(out)
		return enc.Encode(struct {
			Port      string `json:"port"`
			Data      string `json:"data"`
			BytesRead int    `json:"bytes_read"`
		}{portName, hex.EncodeToString(data), len(data)})
	default:
		fmt.Fprint(out, string(data))
	}

	return nil
}
