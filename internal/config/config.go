// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for archintake.
type Config struct {
	EndpointURL string        `mapstructure:"endpoint_url" yaml:"endpoint_url"`
	ProjectURL  string        `mapstructure:"project_url" yaml:"project_url"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ExportDir   string        `mapstructure:"export_dir" yaml:"export_dir"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string        `mapstructure:"log_file" yaml:"log_file"`
	Trace       bool          `mapstructure:"trace" yaml:"trace"`
}

// MarshalYAML writes the timeout as a duration string rather than
// nanoseconds.
func (c Config) MarshalYAML() (interface{}, error) {
	type plain struct {
		EndpointURL string `yaml:"endpoint_url"`
		ProjectURL  string `yaml:"project_url,omitempty"`
		Timeout     string `yaml:"timeout"`
		ExportDir   string `yaml:"export_dir,omitempty"`
		LogLevel    string `yaml:"log_level"`
		LogFile     string `yaml:"log_file,omitempty"`
		Trace       bool   `yaml:"trace,omitempty"`
	}
	return plain{
		EndpointURL: c.EndpointURL,
		ProjectURL:  c.ProjectURL,
		Timeout:     c.Timeout.String(),
		ExportDir:   c.ExportDir,
		LogLevel:    c.LogLevel,
		LogFile:     c.LogFile,
		Trace:       c.Trace,
	}, nil
}

// envKeys maps each config key to its environment variable.
var envKeys = map[string]string{
	"endpoint_url": "ARCHINTAKE_ENDPOINT_URL",
	"project_url":  "ARCHINTAKE_PROJECT_URL",
	"timeout":      "ARCHINTAKE_TIMEOUT",
	"export_dir":   "ARCHINTAKE_EXPORT_DIR",
	"log_level":    "ARCHINTAKE_LOG_LEVEL",
	"log_file":     "ARCHINTAKE_LOG_FILE",
	"trace":        "ARCHINTAKE_TRACE",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith loads configuration into v. Callers bind CLI flags on v before
// calling so flags take precedence.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.SetConfigType("yaml")
	v.SetConfigName("archintake")

	// endpoint_url has no default - it's required
	v.SetDefault("project_url", "")
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("export_dir", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("trace", false)

	v.SetEnvPrefix("ARCHINTAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EndpointURL) == "" {
		return fmt.Errorf("endpoint_url not configured\n\nSet it via:\n  - archintake setup --endpoint <url>\n  - ARCHINTAKE_ENDPOINT_URL environment variable")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/archintake/archintake.yml or $XDG_CONFIG_HOME/archintake/archintake.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "archintake", "archintake.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "archintake", "archintake.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "archintake.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	return write(GlobalPath(), cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
