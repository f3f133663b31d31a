package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/cdh/internal/storage"
)

// Environment variables overriding file settings.
const (
	EnvHistoryFile = "CDH_HISTORY_FILE"
	EnvMaxHistory  = "CDH_MAX_HISTORY"
)

// DefaultMaxHistory is the default number of remembered directories.
const DefaultMaxHistory = 100

// historyFileName is the file inside ~/.cdh/ holding the history.
const historyFileName = "history"

// ThemeConfig holds listing/picker color settings
type ThemeConfig struct {
	Name string `toml:"name"` // preset: "default", "nord", "none"
	Mode string `toml:"mode"` // "auto", "light" or "dark"
}

// Config holds the cdh configuration
type Config struct {
	MaxHistory  int         `toml:"max_history"`
	HistoryFile string      `toml:"history_file"`
	Theme       ThemeConfig `toml:"theme"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		MaxHistory: DefaultMaxHistory,
	}
}

// HistoryPath returns the history file location.
// Falls back to ~/.cdh/history when history_file is not configured.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryFile != "" {
		return c.HistoryFile, nil
	}
	dir, err := storage.DataDir()
	if err != nil {
		return "", fmt.Errorf("locate history: %w", err)
	}
	return filepath.Join(dir, historyFileName), nil
}

type ctxKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the config from context, or defaults if none is set.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cdh", "config.toml"), nil
}

// Load reads config from ~/.config/cdh/config.toml and applies environment
// overrides.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file or environment holds invalid settings
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path, os.Getenv)
}

// LoadFrom reads config from path, then applies overrides looked up with
// getenv.
func LoadFrom(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Default(), fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Default(), err
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	// Expand ~ in history_file (shell doesn't expand in config files)
	expanded, err := expandPath(cfg.HistoryFile)
	if err != nil {
		return Default(), fmt.Errorf("expand history_file: %w", err)
	}
	cfg.HistoryFile = expanded

	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvHistoryFile); v != "" {
		cfg.HistoryFile = v
	}
	if v := getenv(EnvMaxHistory); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be a number", EnvMaxHistory, v)
		}
		cfg.MaxHistory = n
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxHistory < 2 {
		return fmt.Errorf("invalid max_history %d: must be at least 2", c.MaxHistory)
	}
	if err := ValidatePath(c.HistoryFile, "history_file"); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	return validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes)
}

const defaultConfig = `# cdh configuration

# Number of directories remembered. The oldest entry is dropped first.
# max_history = 100

# Where the history is stored. Must be absolute or start with ~.
# Overridden by CDH_HISTORY_FILE.
# history_file = "~/.cdh/history"

# Colors for 'cdh --list' and 'cdh -i'
# [theme]
# name = "default"   # default, nord, none
# mode = "auto"      # auto, light, dark
`

// Init creates a default config file at ~/.config/cdh/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, initAt(path, force)
}

func initAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
