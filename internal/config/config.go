// Package config loads the command line configuration from structfile.yaml,
// STRUCTFILE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Formats accepted by --format.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatCSV  = "csv"
)

// Config holds the settings shared by every command.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log-level"`
	// NoColor disables colored log output.
	NoColor bool `mapstructure:"no-color"`
	// Format selects the file format. It is never inferred from the path.
	Format string `mapstructure:"format"`
	// Lenient logs failures instead of returning them.
	Lenient bool `mapstructure:"lenient"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatJSON,
	}
}

// Validate checks that every field holds a known value.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log-level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	switch c.Format {
	case FormatJSON, FormatText, FormatCSV:
	default:
		errs = append(errs, fmt.Errorf("format must be json, text or csv, got %q", c.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Load reads the configuration into v and decodes it.
//
// When file is empty, structfile.yaml is searched in the working directory
// and in $HOME/.config/structfile; not finding it is not an error. An explicit
// file must exist.
func Load(v *viper.Viper, file string) (Config, error) {
	def := Default()
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("no-color", def.NoColor)
	v.SetDefault("format", def.Format)
	v.SetDefault("lenient", def.Lenient)

	v.SetEnvPrefix("structfile")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("structfile")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "structfile"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
