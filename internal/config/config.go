// Package config loads tada settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultUserName  = "User"
	DefaultTheme     = "classic"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	FileName         = "tada.toml"
)

// Themes accepted by the theme key.
var Themes = []string{"classic", "neon", "mono"}

// Config holds every tunable setting.
type Config struct {
	UserName      string `toml:"user_name"`
	Theme         string `toml:"theme"`
	NoColor       bool   `toml:"no_color"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogFile       string `toml:"log_file"`

	// Path of the last file merged in, empty when only defaults apply.
	Source string `toml:"-"`
}

// Default returns a config with every default filled in.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.UserName = DefaultUserName
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// Load resolves the configuration:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/tada/tada.toml or ~/.config/tada/tada.toml)
// 3. Project config file (tada.toml or .tada.toml in the working directory)
// 4. Environment variables (TADA_*)
// 5. Flags registered by RegisterFlags and already parsed into fs
func Load(fs *flag.FlagSet) (*Config, error) {
	cfg := Default()

	if p := findUserConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := findProjectConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if fs != nil {
		applyFlags(cfg, fs)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a single TOML file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Source = path
	return nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	ok := false
	for _, t := range Themes {
		if strings.EqualFold(c.Theme, t) {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("invalid theme %q (want one of %s)", c.Theme, strings.Join(Themes, ", "))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (want text, json or logfmt)", c.LogFormat)
	}
	if strings.TrimSpace(c.UserName) == "" {
		c.UserName = DefaultUserName
	}
	return nil
}

func userConfigDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "tada")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tada")
}

func findUserConfigFile() string {
	dir := userConfigDir()
	if dir == "" {
		return ""
	}
	return firstExisting(filepath.Join(dir, FileName))
}

func findProjectConfigFile() string {
	return firstExisting(FileName, "."+FileName)
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_USER"); v != "" {
		cfg.UserName = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Join(fmt.Errorf("TADA_NO_COLOR=%q", v), err)
		}
		cfg.NoColor = b
	}
	return nil
}

// RegisterFlags binds the global flags on fs. Only flags the user actually
// set override lower layers.
func RegisterFlags(fs *flag.FlagSet) {
	fs.String("user", "", "name shown in the greeting")
	fs.String("theme", "", "color theme: classic, neon or mono")
	fs.Bool("no-color", false, "disable colors")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: text, json or logfmt")
	fs.String("log-file", "", "write logs to this file")
}

func applyFlags(cfg *Config, fs *flag.FlagSet) {
	fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "user":
			cfg.UserName = v
		case "theme":
			cfg.Theme = v
		case "no-color":
			cfg.NoColor = v == "true"
		case "log-level":
			cfg.LogLevel = v
		case "log-format":
			cfg.LogFormat = v
		case "log-file":
			cfg.LogFile = v
		}
	})
}
