// Package cmd implements the bmlc subcommands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bml-lang/bml/internal/config"
	"github.com/bml-lang/bml/internal/diag"
	"github.com/bml-lang/bml/internal/logger"
)

// ErrDiagnostics is returned when input had lexical or syntax errors.
// The diagnostics have already been written to stderr.
var ErrDiagnostics = errors.New("input has errors")

var (
	cfgFile   string
	verbose   bool
	logFormat string
	noColor   bool

	// Set by loadConfig before any subcommand runs.
	appCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bmlc",
	Short: "BML front-end tool",
	Long: `bmlc tokenizes, parses, formats and checks BML scripts.

Configuration is read from bml.toml, .bml.toml, bml.yaml or .bml.yaml in
the working directory, or from the file given with --config.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	defer logger.Close()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: discovered in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// loadConfig reads the configuration, checks the version constraint and
// sets up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appCfg, err = config.Load(cfgFile)
	} else {
		appCfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	if err := appCfg.CheckVersion(Version); err != nil {
		return err
	}

	level, err := logger.ParseLevel(appCfg.Log.Level)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if verbose {
		level = logger.LevelDebug
	}
	format := appCfg.Log.Format
	if logFormat != "" {
		format = logFormat
	}
	if err := logger.Init(logger.Config{
		Level:     level,
		Format:    format,
		Output:    cmd.ErrOrStderr(),
		AddSource: appCfg.Log.AddSource,
		LogFile:   appCfg.Log.File,
	}); err != nil {
		return err
	}

	logger.L().Debug("configuration loaded", "path", appCfg.Path, "jobs", appCfg.Jobs, "extensions", appCfg.Extensions)
	return nil
}

func newRenderer() *diag.Renderer {
	return diag.NewRenderer(appCfg.ColorEnabled() && !noColor)
}

// readSource reads a source file, or standard input for "-".
func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(filename)
}

// sourceName labels positions for input read by readSource.
func sourceName(filename string) string {
	if filename == "-" {
		return "<stdin>"
	}
	return filename
}
