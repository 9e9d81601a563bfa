package config

import (
	"errors"
	"fmt"
	"strings"

	"config-splitter/internal/logging"
	"config-splitter/internal/plan"
)

var (
	// ErrInvalidNaming indicates an unusable file naming convention.
	ErrInvalidNaming = errors.New("invalid file naming")

	// ErrInvalidPolicy indicates an unknown split policy.
	ErrInvalidPolicy = errors.New("invalid split policy")

	// ErrInvalidLogging indicates an unknown log level or format.
	ErrInvalidLogging = errors.New("invalid logging settings")

	// ErrInvalidDebounce indicates a negative watch debounce.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateFiles(&cfg.Files); err != nil {
		errs = append(errs, err)
	}

	if _, err := plan.ParsePolicy(cfg.Split.Policy); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidPolicy, err))
	}

	if _, err := logging.ParseConfig(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLogging, err))
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}

	return errors.Join(errs...)
}

func validateFiles(f *FilesConfig) error {
	switch {
	case f.BaseName == "":
		return fmt.Errorf("%w: base_name is required", ErrInvalidNaming)
	case f.Prefix == "":
		return fmt.Errorf("%w: prefix is required", ErrInvalidNaming)
	case !strings.HasPrefix(f.Extension, "."):
		return fmt.Errorf("%w: extension must start with a dot", ErrInvalidNaming)
	case strings.ContainsAny(f.BaseName+f.Prefix+f.Extension, `/\`):
		return fmt.Errorf("%w: names must not contain path separators", ErrInvalidNaming)
	}

	return nil
}

// Policy returns the parsed split policy.
func (c *Config) Policy() plan.Policy {
	p, err := plan.ParsePolicy(c.Split.Policy)
	if err != nil {
		return plan.PolicyKeepFirst
	}

	return p
}

// LogConfig returns the parsed logging configuration.
func (c *Config) LogConfig() logging.Config {
	cfg, err := logging.ParseConfig(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return logging.DefaultConfig()
	}

	return cfg
}
