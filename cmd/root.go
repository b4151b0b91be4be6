package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/Shoaibashk/serialport/config"
	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is the application version
	Version = "dev"
	// Commit is the VCS revision the binary was built from
	Commit = "none"
	// BuildDate is the build timestamp
	BuildDate = "unknown"

	// cfgFile is the path to the config file
	cfgFile string

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "serialport"})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "serialport",
		Short: "serialport - serial port access with normalized errors",
		Long: `serialport opens, enumerates and talks to serial ports and reports every
failure as one normalized error kind, whichever operating system facility failed.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.serialport/config.yaml)")
	root.PersistentFlags().Bool("verbose", false, "verbose output")

	if err := viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose")); err != nil {
		panic(err)
	}

	RegisterVersionCommand(root)
	RegisterErrnoCommand(root)
	RegisterScanCommand(root)
	RegisterProbeCommand(root)
	RegisterReadCommand(root)
	RegisterWriteCommand(root)
	RegisterConfigCommand(root)

	return root
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext executes the root command with a context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if err := config.InitViper(cfgFile); err != nil {
		logger.Error("reading config", "err", err)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config", "err", err)
		return
	}

	setupLogging(cfg.Logging)
}

// setupLogging applies the logging section of the configuration.
func setupLogging(cfg config.LoggingConfig) {
	if level, err := log.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(level)
	}
	if IsVerbose() {
		logger.SetLevel(log.DebugLevel)
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}
}

// IsVerbose reports whether --verbose was given
func IsVerbose() bool {
	return viper.GetBool("verbose")
}

// loadConfig returns the effective configuration. An unusable config is an
// InvalidInput error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, serialerr.New(serialerr.InvalidInput, err.Error(), err)
	}
	return cfg, nil
}

// reportError logs a normalized failure with its classification and returns
// it for cobra to print.
func reportError(msg string, err error) error {
	var normalized *serialerr.Error
	if errors.As(err, &normalized) {
		logger.Error(msg, "kind", normalized.Kind, "errno", normalized.Name(), "err", normalized.Message)
		return err
	}
	logger.Error(msg, "err", err)
	return err
}
