// Package config loads the command line configuration: file naming, split
// and merge defaults, logging and watch settings.
//
// Priority, highest first: environment variables (CONFIG_SPLITTER_*), the
// config file (.config-splitter.yaml), defaults.
package config

import (
	"time"

	"config-splitter/internal/gen"
)

// Config is the complete configuration.
type Config struct {
	Files   FilesConfig   `mapstructure:"files" yaml:"files"`
	Split   SplitConfig   `mapstructure:"split" yaml:"split"`
	Merge   MergeConfig   `mapstructure:"merge" yaml:"merge"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
}

// FilesConfig is the output file naming convention.
type FilesConfig struct {
	BaseName       string `mapstructure:"base_name" yaml:"base_name"`
	Prefix         string `mapstructure:"prefix" yaml:"prefix"`
	Extension      string `mapstructure:"extension" yaml:"extension"`
	PrimarySection string `mapstructure:"primary_section" yaml:"primary_section"`
}

// SplitConfig holds split defaults.
type SplitConfig struct {
	// Policy is "keep-first" or "inline".
	Policy    string `mapstructure:"policy" yaml:"policy"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// MergeConfig holds merge defaults.
type MergeConfig struct {
	OutputPath   string `mapstructure:"output_path" yaml:"output_path"`
	CreateBackup bool   `mapstructure:"create_backup" yaml:"create_backup"`
	FillMissing  bool   `mapstructure:"fill_missing" yaml:"fill_missing"`
	Validate     bool   `mapstructure:"validate" yaml:"validate"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// WatchConfig tunes merge --watch.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Default returns the default configuration.
func Default() *Config {
	naming := gen.DefaultNaming()

	return &Config{
		Files: FilesConfig{
			BaseName:       naming.BaseName,
			Prefix:         naming.Prefix,
			Extension:      naming.Extension,
			PrimarySection: naming.PrimarySection,
		},
		Split: SplitConfig{
			Policy:    "keep-first",
			OutputDir: ".",
		},
		Merge: MergeConfig{
			OutputPath:   "config.yaml",
			CreateBackup: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Naming returns the file naming convention.
func (c *Config) Naming() gen.Naming {
	return gen.Naming{
		BaseName:       c.Files.BaseName,
		Prefix:         c.Files.Prefix,
		Extension:      c.Files.Extension,
		PrimarySection: c.Files.PrimarySection,
	}
}
