// Package config manages the application configuration: the single external
// mapping from logical path names to file-system locations, plus the
// recalculation-service and run-log settings. It is loaded once at process
// start and passed by parameter to every component.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// Paths maps logical names (templateExpenseReport, outputForecastTemplate,
	// salesDataStorage, ...) to file-system locations.
	Paths map[string]string `mapstructure:"paths"`

	Recalc struct {
		Command        string   `mapstructure:"command"`
		Args           []string `mapstructure:"args"`
		TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	} `mapstructure:"recalc"`

	RunLog struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"runlog"`

	// Rules maps a workflow name to an optional YAML rules-file override.
	Rules map[string]string `mapstructure:"rules"`
}

// Load reads the configuration. An explicit path wins; otherwise
// finrep.yaml is searched in the working directory and ~/.finrep.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("finrep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir())
	}

	v.SetDefault("recalc.timeout_seconds", 60)
	v.SetDefault("runlog.enabled", true)
	v.SetEnvPrefix("FINREP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read configuration: %w — run 'finrep config show' for the expected layout", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.RunLog.Enabled && cfg.RunLog.Path == "" {
		cfg.RunLog.Path = filepath.Join(configDir(), "runlog.jsonl")
	}
	return &cfg, nil
}

// Path resolves a required logical path. Absence is fatal to the run, so
// the error names the missing key.
func (c *Config) Path(key string) (string, error) {
	p, ok := c.Paths[key]
	if !ok || p == "" {
		return "", fmt.Errorf("required path %q is not configured — add it under 'paths:' in finrep.yaml", key)
	}
	return p, nil
}

// RulesFile returns the optional rules override for a workflow, or "".
func (c *Config) RulesFile(workflow string) string {
	if c.Rules == nil {
		return ""
	}
	return c.Rules[workflow]
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".finrep"
	}
	return filepath.Join(home, ".finrep")
}
