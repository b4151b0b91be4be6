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
	"os"
	"strings"

	"github.com/Shoaibashk/serialport/config"
	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RegisterConfigCommand adds the config command and its subcommands to the root command
func RegisterConfigCommand(root *cobra.Command) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the serialport configuration file",
		Long: `Create, inspect and locate the serialport configuration file.

Example:
  serialport config init                 # Write defaults to the user config file
  serialport config show                 # Print the effective configuration
  serialport config show --file cfg.yaml --json
  serialport config path                 # Print config file locations`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().String("path", "", "file to write (default is the user config path)")
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().String("file", "", "read this file instead of the active configuration")
	showCmd.Flags().Bool("json", false, "output in JSON format")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file locations",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	configCmd.AddCommand(initCmd, showCmd, pathCmd)
	root.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		return serialerr.New(serialerr.InvalidInput, "no home directory; pass --path", nil)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return serialerr.Newf(serialerr.InvalidInput, "%s already exists; use --force to overwrite", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return reportError("writing config", serialerr.FromIOError(err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var (
		cfg *config.Config
		err error
	)
	if file != "" {
		cfg, err = config.LoadOrDefault(file)
		if err != nil {
			err = serialerr.New(serialerr.InvalidInput, err.Error(), err)
		}
	} else {
		cfg, err = loadConfig()
	}
	if err != nil {
		return reportError("loading config", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	printConfig(out, cfg)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	d := cfg.Serial.Defaults
	fmt.Fprintln(out, "Serial Defaults:")
	fmt.Fprintf(out, "  Baud Rate:      %d\n", d.BaudRate)
	fmt.Fprintf(out, "  Data Bits:      %d\n", d.DataBits)
	fmt.Fprintf(out, "  Stop Bits:      %d\n", d.StopBits)
	fmt.Fprintf(out, "  Parity:         %s\n", d.Parity)
	fmt.Fprintf(out, "  Flow Control:   %s\n", d.FlowControl)
	fmt.Fprintf(out, "  Read Timeout:   %d ms\n", d.ReadTimeoutMs)
	fmt.Fprintf(out, "Shared Access:    %t\n", cfg.Serial.AllowSharedAccess)
	if len(cfg.Serial.ExcludePatterns) > 0 {
		fmt.Fprintf(out, "Exclude Patterns: %s\n", strings.Join(cfg.Serial.ExcludePatterns, ", "))
	}
	fmt.Fprintf(out, "Log Level:        %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "Log Format:       %s\n", cfg.Logging.Format)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	active := viper.ConfigFileUsed()
	if active == "" {
		active = "(none, using defaults)"
	}
	fmt.Fprintf(out, "Active: %s\n", active)
	fmt.Fprintf(out, "User:   %s\n", config.UserConfigPath())
	fmt.Fprintf(out, "System: %s\n", config.DefaultConfigPath())
	return nil
}
