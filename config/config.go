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

// Package config provides configuration loading and management for serialport.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Shoaibashk/serialport/internal/serial"
	"github.com/spf13/viper"
)

// Config represents the complete tool configuration
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial" yaml:"serial" json:"serial"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// SerialConfig holds serial port settings
type SerialConfig struct {
	Defaults          SerialDefaults `mapstructure:"defaults" yaml:"defaults" json:"defaults"`
	ExcludePatterns   []string       `mapstructure:"exclude_patterns" yaml:"exclude_patterns" json:"exclude_patterns"`
	AllowSharedAccess bool           `mapstructure:"allow_shared_access" yaml:"allow_shared_access" json:"allow_shared_access"`
}

// SerialDefaults holds default serial port parameters
type SerialDefaults struct {
	BaudRate      int    `mapstructure:"baud_rate" yaml:"baud_rate" json:"baud_rate"`
	DataBits      int    `mapstructure:"data_bits" yaml:"data_bits" json:"data_bits"`
	StopBits      int    `mapstructure:"stop_bits" yaml:"stop_bits" json:"stop_bits"`
	Parity        string `mapstructure:"parity" yaml:"parity" json:"parity"`
	FlowControl   string `mapstructure:"flow_control" yaml:"flow_control" json:"flow_control"`
	ReadTimeoutMs int    `mapstructure:"read_timeout_ms" yaml:"read_timeout_ms" json:"read_timeout_ms"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Serial: SerialConfig{
			Defaults: SerialDefaults{
				BaudRate:      9600,
				DataBits:      8,
				StopBits:      1,
				Parity:        "none",
				FlowControl:   "none",
				ReadTimeoutMs: 1000,
			},
			AllowSharedAccess: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ToPortConfig converts SerialDefaults into a concrete serial.PortConfig.
func (d SerialDefaults) ToPortConfig() (serial.PortConfig, error) {
	parity, err := serial.ParseParity(d.Parity)
	if err != nil {
		return serial.PortConfig{}, err
	}

	flowControl, err := serial.ParseFlowControl(d.FlowControl)
	if err != nil {
		return serial.PortConfig{}, err
	}

	stopBits, err := serial.ParseStopBits(d.StopBits)
	if err != nil {
		return serial.PortConfig{}, err
	}

	return serial.PortConfig{
		BaudRate:      d.BaudRate,
		DataBits:      d.DataBits,
		StopBits:      stopBits,
		Parity:        parity,
		FlowControl:   flowControl,
		ReadTimeoutMs: d.ReadTimeoutMs,
	}, nil
}

// SetDefaults sets default values in viper
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("serial.defaults.baud_rate", defaults.Serial.Defaults.BaudRate)
	viper.SetDefault("serial.defaults.data_bits", defaults.Serial.Defaults.DataBits)
	viper.SetDefault("serial.defaults.stop_bits", defaults.Serial.Defaults.StopBits)
	viper.SetDefault("serial.defaults.parity", defaults.Serial.Defaults.Parity)
	viper.SetDefault("serial.defaults.flow_control", defaults.Serial.Defaults.FlowControl)
	viper.SetDefault("serial.defaults.read_timeout_ms", defaults.Serial.Defaults.ReadTimeoutMs)
	viper.SetDefault("serial.exclude_patterns", defaults.Serial.ExcludePatterns)
	viper.SetDefault("serial.allow_shared_access", defaults.Serial.AllowSharedAccess)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Load reads configuration from viper and returns a Config struct
func Load() (*Config, error) {
	cfg := &Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	SetDefaults()
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Load()
}

// LoadOrDefault loads configuration from file, or returns default if file doesn't exist
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadFromFile(path)
}

// Save writes configuration to a YAML file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range c.toMap() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// toMap flattens config into viper keys
func (c *Config) toMap() map[string]interface{} {
	d := c.Serial.Defaults
	return map[string]interface{}{
		"serial.defaults.baud_rate":       d.BaudRate,
		"serial.defaults.data_bits":       d.DataBits,
		"serial.defaults.stop_bits":       d.StopBits,
		"serial.defaults.parity":          d.Parity,
		"serial.defaults.flow_control":    d.FlowControl,
		"serial.defaults.read_timeout_ms": d.ReadTimeoutMs,
		"serial.exclude_patterns":         c.Serial.ExcludePatterns,
		"serial.allow_shared_access":      c.Serial.AllowSharedAccess,
		"logging.level":                   c.Logging.Level,
		"logging.format":                  c.Logging.Format,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Serial.Defaults.BaudRate < 1 {
		return fmt.Errorf("baud_rate must be positive")
	}

	if c.Serial.Defaults.DataBits < 5 || c.Serial.Defaults.DataBits > 8 {
		return fmt.Errorf("data_bits must be between 5 and 8")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true, "logfmt": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	portConfig, err := c.Serial.Defaults.ToPortConfig()
	if err != nil {
		return fmt.Errorf("invalid serial defaults: %w", err)
	}

	if err := portConfig.Validate(); err != nil {
		return fmt.Errorf("invalid serial defaults: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default configuration file path for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "serialport", "config.yaml")
	case "darwin":
		return "/usr/local/etc/serialport/config.yaml"
	default:
		return "/etc/serialport/config.yaml"
	}
}

// UserConfigPath returns the user-specific configuration file path
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, ".serialport", "config.yaml")
	default:
		return filepath.Join(home, ".config", "serialport", "config.yaml")
	}
}

// InitViper initializes viper with default configuration paths
func InitViper(configFile string) error {
	SetDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search in multiple locations
		home, _ := os.UserHomeDir()
		if home != "" {
			viper.AddConfigPath(filepath.Join(home, ".serialport"))
			viper.AddConfigPath(filepath.Join(home, ".config", "serialport"))
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/serialport")

		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SERIALPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	return nil
}
