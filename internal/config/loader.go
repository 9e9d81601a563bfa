package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file name searched for, without extension.
const FileName = ".config-splitter"

// EnvPrefix prefixes environment overrides, e.g. CONFIG_SPLITTER_MERGE_FILL_MISSING.
const EnvPrefix = "CONFIG_SPLITTER"

// Loader loads configuration from an explicit file or from search paths.
type Loader struct {
	configFile string
	searchDirs []string
}

// NewLoader creates a loader. When configFile is empty, FileName is looked
// up in searchDirs and a missing file is not an error.
func NewLoader(configFile string, searchDirs ...string) *Loader {
	return &Loader{configFile: configFile, searchDirs: searchDirs}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CONFIG_SPLITTER_*)
// 2. Config file
// 3. Default values
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")

		for _, dir := range l.searchDirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CONFIG_SPLITTER_SPLIT_POLICY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("files.base_name", defaults.Files.BaseName)
	v.SetDefault("files.prefix", defaults.Files.Prefix)
	v.SetDefault("files.extension", defaults.Files.Extension)
	v.SetDefault("files.primary_section", defaults.Files.PrimarySection)

	v.SetDefault("split.policy", defaults.Split.Policy)
	v.SetDefault("split.output_dir", defaults.Split.OutputDir)

	v.SetDefault("merge.output_path", defaults.Merge.OutputPath)
	v.SetDefault("merge.create_backup", defaults.Merge.CreateBackup)
	v.SetDefault("merge.fill_missing", defaults.Merge.FillMissing)
	v.SetDefault("merge.validate", defaults.Merge.Validate)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
}
