// Package config loads the optional YAML config file and environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Permission policies for the reminder scheduler.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionPrompt  = "prompt"
)

// ValidPermissions lists the accepted notification permission policies.
var ValidPermissions = []string{PermissionGranted, PermissionDenied, PermissionPrompt}

// Config is the top-level configuration.
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Log           LogConfig           `yaml:"log"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Haptics       HapticsConfig       `yaml:"haptics"`
	Chat          ChatConfig          `yaml:"chat"`
	Share         ShareConfig         `yaml:"share"`
}

type DatabaseConfig struct {
	// Path to the SQLite file. Empty means the XDG data dir.
	Path string `yaml:"path"`
}

type LogConfig struct {
	// File is the log file. Empty means the XDG state dir.
	File        string `yaml:"file"`
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type NotificationsConfig struct {
	// Permission is one of granted, denied, prompt.
	Permission string `yaml:"permission"`
}

type HapticsConfig struct {
	Bell bool `yaml:"bell"`
}

type ChatConfig struct {
	ReplyDelayMin string `yaml:"reply_delay_min"`
	ReplyDelayMax string `yaml:"reply_delay_max"`
}

type ShareConfig struct {
	// OutputDir receives rendered share cards. Empty means the data dir.
	OutputDir string `yaml:"output_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Notifications: NotificationsConfig{
			Permission: PermissionPrompt,
		},
		Haptics: HapticsConfig{
			Bell: true,
		},
		Chat: ChatConfig{
			ReplyDelayMin: "1.5s",
			ReplyDelayMax: "3s",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// LoadEnv loads KEY=VALUE pairs from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("CHALLENGELY_DB"); p != "" {
		c.Database.Path = p
	}
	if lvl := os.Getenv("CHALLENGELY_LOG_LEVEL"); lvl != "" {
		c.Log.Level = lvl
	}
	if perm := os.Getenv("CHALLENGELY_NOTIFICATIONS"); perm != "" {
		c.Notifications.Permission = perm
	}
}

// Validate checks enumerations and duration bounds.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(ValidPermissions, c.Notifications.Permission) {
		errs = append(errs, fmt.Errorf("invalid notifications.permission %q (valid: %v)", c.Notifications.Permission, ValidPermissions))
	}
	lo, hi, err := c.ReplyDelay()
	if err != nil {
		errs = append(errs, err)
	} else if lo <= 0 || hi < lo {
		errs = append(errs, fmt.Errorf("chat reply delay bounds [%s, %s] are invalid", lo, hi))
	}
	return errors.Join(errs...)
}

// ReplyDelay parses the chat reply delay bounds.
func (c *Config) ReplyDelay() (lo, hi time.Duration, err error) {
	lo, err = time.ParseDuration(c.Chat.ReplyDelayMin)
	if err != nil {
		return 0, 0, fmt.Errorf("parse chat.reply_delay_min: %w", err)
	}
	hi, err = time.ParseDuration(c.Chat.ReplyDelayMax)
	if err != nil {
		return 0, 0, fmt.Errorf("parse chat.reply_delay_max: %w", err)
	}
	return lo, hi, nil
}

// DefaultPath resolves the config file:
// 1. $XDG_CONFIG_HOME/challengely/config.yaml
// 2. ~/.config/challengely/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "challengely", "config.yaml"), nil
}
