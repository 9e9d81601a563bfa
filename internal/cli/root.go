// Package cli implements the config-splitter command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"config-splitter/internal/config"
	"config-splitter/internal/logging"
	"config-splitter/internal/service"
)

var (
	cfgFile string
	verbose bool

	// appConfig is loaded before any subcommand runs.
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "config-splitter",
	Short: "Split a YAML configuration into section files and merge them back",
	Long: `config-splitter breaks one large YAML configuration into a file per
top-level section, optionally moving second-level blocks into files of their
own, and merges such files back into a single document with a table of
contents and section headers.

Settings are read from .config-splitter.yaml in the current or home
directory, and from CONFIG_SPLITTER_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.config-splitter.yaml or $HOME/.config-splitter.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads the configuration and attaches a logger to the command context.
func setup(cmd *cobra.Command, _ []string) error {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	cfg, err := config.NewLoader(cfgFile, dirs...).Load()
	if err != nil {
		return err
	}

	appConfig = cfg

	logCfg := cfg.LogConfig()
	if verbose {
		logCfg.Level = zerolog.DebugLevel
	}

	logger := logging.New(logCfg)
	cmd.SetContext(logging.WithContext(cmd.Context(), logger))

	logger.Debug().Str("config", cfgFile).Msg("configuration loaded")

	return nil
}

// newService builds a service from the loaded configuration.
func newService(cfg *config.Config) *service.Service {
	return service.New(
		service.WithNaming(cfg.Naming()),
		service.WithPolicy(cfg.Policy()),
	)
}
