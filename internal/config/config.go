// Package config handles configuration loading and validation for roster.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ROSTER_"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	LoadError       ConfigErrorType = "LOAD_ERROR"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case LoadError:
		return fmt.Sprintf("failed to load configuration: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// StoreConfig selects where the roster document lives.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"oneof=file sqlite"`
	Path   string `koanf:"path"   validate:"required"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// WatchConfig controls organize --watch.
type WatchConfig struct {
	DebounceMs int `koanf:"debounce_ms" validate:"gte=0"`
}

// ReleaseConfig controls the push command.
type ReleaseConfig struct {
	RepoDir     string `koanf:"repo_dir"`
	Remote      string `koanf:"remote"       validate:"required"`
	AuthorName  string `koanf:"author_name"`
	AuthorEmail string `koanf:"author_email" validate:"omitempty,email"`
}

// Configuration holds all settings for roster.
type Configuration struct {
	Store   StoreConfig   `koanf:"store"`
	Log     LogConfig     `koanf:"log"`
	Watch   WatchConfig   `koanf:"watch"`
	Release ReleaseConfig `koanf:"release"`
	Verbose bool          `koanf:"verbose"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Configuration {
	return &Configuration{
		Store: StoreConfig{
			Driver: "file",
			Path:   "igns.json",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		Release: ReleaseConfig{
			RepoDir: ".",
			Remote:  "origin",
		},
	}
}

// Validate checks field constraints.
func (c *Configuration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigError{Type: ValidationError, Message: err.Error()}
	}
	return nil
}

// Load builds the configuration from defaults, then ROSTER_* environment
// variables, then overrides (koanf paths such as "store.path"), in
// increasing precedence.
func Load(overrides map[string]any) (*Configuration, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, &ConfigError{Type: LoadError, Message: fmt.Sprintf("defaults: %v", err)}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key string, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, &ConfigError{Type: LoadError, Message: fmt.Sprintf("environment: %v", err)}
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, &ConfigError{Type: LoadError, Message: fmt.Sprintf("override %s: %v", key, err)}
		}
	}

	var cfg Configuration
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &ConfigError{Type: LoadError, Message: err.Error()}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// transformEnvKey converts environment variable names to koanf paths.
// For example: STORE_PATH -> store.path, WATCH_DEBOUNCE_MS -> watch.debounce_ms
func transformEnvKey(s string) string {
	s = strings.ToLower(s)

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_'
	})

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
}
