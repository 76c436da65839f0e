// Package config loads user preferences from a TOML file and UNUSEDIMG_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"unused-image-finder/internal/folder"
)

// Config holds application configuration.
type Config struct {
	Log  LogConfig
	Scan ScanConfig
	UI   UIConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// ScanConfig holds folder listing settings.
type ScanConfig struct {
	PrefixSource string `mapstructure:"prefix_source"`
	SkipHidden   bool   `mapstructure:"skip_hidden"`
}

// UIConfig holds window settings.
type UIConfig struct {
	WindowWidth   float32 `mapstructure:"window_width"`
	WindowHeight  float32 `mapstructure:"window_height"`
	ConfirmExit   bool    `mapstructure:"confirm_exit"`
	Preview       bool
	ThumbnailSize int `mapstructure:"thumbnail_size"`
}

// Path returns the config file location, honouring UNUSEDIMG_CONFIG.
func Path() string {
	if p := os.Getenv("UNUSEDIMG_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "unused-image-finder", "config.toml")
}

// Load reads configuration from file and env. A missing file is not an error.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("scan.prefix_source", string(folder.PrefixParent))
	v.SetDefault("scan.skip_hidden", false)
	v.SetDefault("ui.window_width", 760)
	v.SetDefault("ui.window_height", 640)
	v.SetDefault("ui.confirm_exit", true)
	v.SetDefault("ui.preview", true)
	v.SetDefault("ui.thumbnail_size", 320)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("UNUSEDIMG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the application cannot work with.
func (c Config) Validate() error {
	if _, err := folder.ParsePrefixSource(c.Scan.PrefixSource); err != nil {
		return fmt.Errorf("scan.prefix_source: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.UI.WindowWidth <= 0 || c.UI.WindowHeight <= 0 {
		return fmt.Errorf("ui window size must be positive, got %vx%v", c.UI.WindowWidth, c.UI.WindowHeight)
	}
	if c.UI.ThumbnailSize <= 0 {
		return fmt.Errorf("ui.thumbnail_size must be positive, got %d", c.UI.ThumbnailSize)
	}
	return nil
}

// ListOptions converts the scan settings into folder listing options.
func (c Config) ListOptions() folder.Options {
	src, err := folder.ParsePrefixSource(c.Scan.PrefixSource)
	if err != nil {
		src = folder.PrefixParent
	}
	return folder.Options{PrefixSource: src, SkipHidden: c.Scan.SkipHidden}
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
