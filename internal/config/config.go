// Package config provides configuration types, defaults, and loading for signup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

// LocalConfigPath is the project-local config file checked before the user config.
const LocalConfigPath = ".signup/config.yaml"

// Config holds all configuration options for signup.
type Config struct {
	Form    FormConfig     `mapstructure:"form"`
	UI      UIConfig       `mapstructure:"ui"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// FormConfig holds registration form behaviour.
type FormConfig struct {
	// SuccessDelay is how long the success card stays up before the form
	// returns. Default: 5s.
	SuccessDelay time.Duration `mapstructure:"success_delay"`

	// RevalidateOnChange re-checks the record on every edit after the first
	// failed submit. Default: true.
	RevalidateOnChange bool `mapstructure:"revalidate_on_change"`

	// Locale selects the message catalog: "en" (default) or "pt-BR".
	Locale string `mapstructure:"locale"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Width int  `mapstructure:"width"` // form width in cells
	Mouse bool `mapstructure:"mouse"` // enable click-to-focus
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()
	return Config{
		Form: FormConfig{
			SuccessDelay:       registration.DefaultSuccessDelay,
			RevalidateOnChange: true,
			Locale:             registration.DefaultLocale,
		},
		UI: UIConfig{
			Width: 56,
			Mouse: true,
		},
		Tracing: tc,
	}
}

// DefaultTracesFilePath returns ~/.config/signup/traces/traces.jsonl, or ""
// if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signup", "traces", "traces.jsonl")
}

// UserConfigDir returns ~/.config/signup, or "" if the home directory is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signup")
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	var errs []error
	if c.Form.SuccessDelay < 0 {
		errs = append(errs, fmt.Errorf("form.success_delay must not be negative, got %s", c.Form.SuccessDelay))
	}
	if _, err := registration.CatalogFor(c.Form.Locale); err != nil {
		errs = append(errs, fmt.Errorf("form.locale: %w", err))
	}
	if c.UI.Width != 0 && c.UI.Width < 30 {
		errs = append(errs, fmt.Errorf("ui.width must be at least 30, got %d", c.UI.Width))
	}
	if c.Tracing.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", c.Tracing.SampleRate))
	}
	if err := c.Tracing.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Catalog returns the message catalog for the configured locale.
func (c Config) Catalog() (registration.Catalog, error) {
	return registration.CatalogFor(c.Form.Locale)
}

// SetDefaults registers every default with v so unset keys still unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("form.success_delay", d.Form.SuccessDelay)
	v.SetDefault("form.revalidate_on_change", d.Form.RevalidateOnChange)
	v.SetDefault("form.locale", d.Form.Locale)
	v.SetDefault("ui.width", d.UI.Width)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Locate picks the config file. An explicit path wins, then
// LocalConfigPath, then ~/.config/signup/config.yaml. The second return is
// false when no candidate exists.
func Locate(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if _, err := os.Stat(LocalConfigPath); err == nil {
		return LocalConfigPath, true
	}
	if dir := UserConfigDir(); dir != "" {
		p := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Load reads path (if non-empty) into v and returns the validated config.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "Loaded config", "path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a fresh config from path. The watcher uses this on change.
func LoadFile(path string) (Config, error) {
	return Load(viper.New(), path)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Signup Configuration

# Registration form behaviour
form:
  success_delay: 5s           # How long the success card stays up
  revalidate_on_change: true  # Re-check fields on every edit after a failed submit
  locale: en                  # Message language: en or pt-BR

# UI settings
ui:
  width: 56    # Form width in cells (minimum 30)
  mouse: true  # Click a field to focus it

# Tracing of submit attempts
# tracing:
#   enabled: false       # Enable/disable tracing (default: false)
#   exporter: file       # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/signup/traces/traces.jsonl
#   sample_rate: 1.0     # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments, creating the parent directory if needed. An
// existing file is left alone unless force is set.
func WriteDefaultConfig(configPath string, force bool) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file %s already exists", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
