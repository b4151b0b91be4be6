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
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/spf13/cobra"
)

type errnoReport struct {
	Code    int64          `json:"code"`
	Name    string         `json:"name,omitempty"`
	Kind    serialerr.Kind `json:"kind"`
	Message string         `json:"message"`
}

// RegisterErrnoCommand adds the errno command to the root command
func RegisterErrnoCommand(root *cobra.Command) {
	errnoCmd := &cobra.Command{
		Use:   "errno CODE...",
		Short: "Show how OS error codes are classified",
		Long: `Classify one or more numeric OS error codes the same way failed port
operations are classified, and print the resulting kind and message.

Codes may be decimal, hex (0x..) or octal (0..).

Example:
  serialport errno 2 13 22
  serialport errno 0x5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runErrno,
	}

	errnoCmd.Flags().Bool("json", false, "output in JSON format")
	root.AddCommand(errnoCmd)
}

func runErrno(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	reports := make([]errnoReport, 0, len(args))
	for _, arg := range args {
		code, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return serialerr.New(serialerr.InvalidInput, fmt.Sprintf("invalid error code %q", arg), err)
		}

		classified := serialerr.FromErrno(syscall.Errno(code))
		reports = append(reports, errnoReport{
			Code:    code,
			Name:    classified.Name(),
			Kind:    classified.Kind,
			Message: classified.Message,
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tKIND\tMESSAGE")
	fmt.Fprintln(w, "----\t----\t----\t-------")
	for _, r := range reports {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Code, name, r.Kind, r.Message)
	}
	return w.Flush()
}
