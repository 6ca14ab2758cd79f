// Package config resolves the configuration directory and loads settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"todo/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// FileName is the optional settings file inside the config directory.
	FileName = "config.env"

	// EnvPrefix prefixes every environment override, e.g. TODO_FILE.
	EnvPrefix = "TODO"
)

// ID assignment policies.
const (
	// IDPolicyCount assigns len(tasks)+1; ids can repeat after a delete.
	IDPolicyCount = "count"

	// IDPolicyMax assigns max(existing ids)+1.
	IDPolicyMax = "max"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// File is the task store path. Defaults depend on Backend.
	File string `mapstructure:"file" validate:"required"`

	// Backend selects the store implementation.
	Backend string `mapstructure:"backend" validate:"oneof=json bbolt"`

	// IDPolicy selects how new task ids are assigned.
	IDPolicy string `mapstructure:"id_policy" validate:"oneof=count max"`

	// Strict surfaces unreadable or corrupt task data instead of starting
	// from an empty list.
	Strict bool `mapstructure:"strict"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`
}

// New creates a Config with default settings and the default or specified
// config directory. It does not read the environment or any file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:      dir,
		Backend:  store.BackendJSON,
		IDPolicy: IDPolicyCount,
	}
	cfg.applyFileDefault()
	return cfg, nil
}

// Load reads settings from defaults, the optional config.env in the config
// directory and TODO_* environment variables, in increasing precedence.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("env")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("file", "")
	v.SetDefault("backend", store.BackendJSON)
	v.SetDefault("id_policy", IDPolicyCount)
	v.SetDefault("strict", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read %s: %w", filepath.Join(dir, FileName), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = dir
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.IDPolicy = strings.ToLower(strings.TrimSpace(cfg.IDPolicy))
	cfg.applyFileDefault()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks setting values.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %q", fe.Field(), fmt.Sprint(fe.Value()))
		}
		return err
	}
	return nil
}

// SetFile overrides the store path (from the --file flag).
func (c *Config) SetFile(path string) {
	if path != "" {
		c.File = path
	}
}

func (c *Config) applyFileDefault() {
	if strings.TrimSpace(c.File) != "" {
		return
	}
	switch c.Backend {
	case store.BackendBolt:
		c.File = store.DefaultBoltPath
	case store.BackendJSON:
		c.File = store.DefaultJSONPath
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the optional settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, FileName)
}
