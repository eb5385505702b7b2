package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/trc/internal/config"
	"github.com/AnyUserName/trc/internal/logging"
)

var (
	version   = "0.1.0"
	verbose   bool
	envFile   string
	logFormat string

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "trc",
	Short: "Compile media transformation configs into CDN URLs",
	Long: `trc compiles structured image/video transformation configs (crop,
overlays, AI effects, enhancements) into the compact "tr" parameter of a
media CDN and splices it into delivery URLs.

Configs are read from JSON or YAML. A directory of job files can be compiled
in one go into a manifest of ready-to-use URLs.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (default from TRC_LOG_FORMAT)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"trc %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads configuration and the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	c, err := config.LoadConfig(envFile)
	if err != nil {
		return err
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	level := c.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logging.New(os.Stderr, level, c.LogFormat)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

// logVerbose logs a message at debug level, shown with --verbose.
func logVerbose(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}
