package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPruneAfter is used when prune_after is not configured.
const DefaultPruneAfter = 7 * 24 * time.Hour

// Hook defines a command run after a tempdir lifecycle event
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"` // events this hook runs on (empty = only via --hook)
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook
}

// Duration is a time.Duration that also accepts a day suffix ("7d") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ParseDuration parses a Go duration ("36h") or a whole number of days ("7d").
// Negative durations are rejected.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	return d, nil
}

// Config holds the t configuration
type Config struct {
	TempRoot    string      `toml:"temp_root"`
	Tempdirs    string      `toml:"tempdirs"`
	DownloadDir string      `toml:"download_dir"`
	Shell       string      `toml:"shell"`
	PruneAfter  Duration    `toml:"prune_after"`
	HistoryPath string      `toml:"history_path"`
	Theme       string      `toml:"theme"`
	Hooks       HooksConfig `toml:"-"`
}

// rawConfig is the on-disk shape; hooks are decoded as a table of tables.
type rawConfig struct {
	Config
	Hooks map[string]Hook `toml:"hooks"`
}

// Default returns the default configuration with all paths resolved.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		TempRoot:    filepath.Join(os.TempDir(), "t"),
		Tempdirs:    filepath.Join(home, "tempdirs"),
		PruneAfter:  Duration(DefaultPruneAfter),
		HistoryPath: filepath.Join(home, ".t", "history.json"),
		Theme:       "default",
		Hooks:       HooksConfig{Hooks: map[string]Hook{}},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Path returns the config file location, honoring T_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("T_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "t", "config.toml"), nil
}

// Load reads the config file and applies environment overrides.
// Returns the defaults if the file doesn't exist (no error).
// Returns the defaults and an error if the file exists but is invalid.
// Environment overrides apply to the defaults in both cases.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return fallback(), nil
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit config file path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return fallback(), fmt.Errorf("failed to read config file: %w", err)
	default:
		raw := rawConfig{Config: cfg}
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fallback(), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		cfg = raw.Config
		if raw.Hooks != nil {
			cfg.Hooks = HooksConfig{Hooks: raw.Hooks}
		}
	}

	applyEnv(&cfg)

	if err := cfg.finalize(); err != nil {
		return fallback(), err
	}
	return cfg, nil
}

// fallback is the config used when the file is unusable: the defaults with
// environment overrides, or the bare defaults if the overrides are invalid.
func fallback() Config {
	cfg := Default()
	applyEnv(&cfg)
	if err := cfg.finalize(); err != nil {
		return Default()
	}
	return cfg
}

// applyEnv overrides directory settings from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("T_TEMP_ROOT"); v != "" {
		cfg.TempRoot = v
	}
	if v := os.Getenv("TEMPDIRS"); v != "" {
		cfg.Tempdirs = v
	}
}

// SetTempdirs overrides the links directory (used by the --tempdirs flag).
func (c *Config) SetTempdirs(dir string) error {
	if err := ValidatePath(dir, "--tempdirs"); err != nil {
		return err
	}
	expanded, err := ExpandPath(dir)
	if err != nil {
		return err
	}
	c.Tempdirs = filepath.Clean(expanded)
	return nil
}

// finalize validates and expands all path settings in place.
func (c *Config) finalize() error {
	paths := []struct {
		field string
		value *string
	}{
		{"temp_root", &c.TempRoot},
		{"tempdirs", &c.Tempdirs},
		{"download_dir", &c.DownloadDir},
		{"history_path", &c.HistoryPath},
	}
	for _, p := range paths {
		if err := ValidatePath(*p.value, p.field); err != nil {
			return err
		}
		expanded, err := ExpandPath(*p.value)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.field, err)
		}
		if expanded != "" {
			expanded = filepath.Clean(expanded)
		}
		*p.value = expanded
	}

	if c.TempRoot == "" || c.Tempdirs == "" {
		return fmt.Errorf("temp_root and tempdirs must not be empty")
	}
	if c.TempRoot == c.Tempdirs {
		return fmt.Errorf("temp_root and tempdirs must differ, both are %q", c.TempRoot)
	}
	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}
	if c.Hooks.Hooks == nil {
		c.Hooks.Hooks = map[string]Hook{}
	}
	return validateHooks(c.Hooks.Hooks)
}

type cfgKey struct{}
type workDirKey struct{}

// WithConfig attaches a config to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, cfgKey{}, cfg)
}

// FromContext returns the config attached to ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(cfgKey{}).(*Config)
	return cfg
}

// WithWorkDir attaches the invocation's working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory attached to ctx,
// falling back to os.Getwd.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
