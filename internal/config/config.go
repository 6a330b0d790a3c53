package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Field      FieldConfig      `mapstructure:"field"`
	Tanks      TanksConfig      `mapstructure:"tanks"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Render     RenderConfig     `mapstructure:"render"`
}

// FieldConfig holds the grid settings
type FieldConfig struct {
	Size              int `mapstructure:"size"`
	PlacementAttempts int `mapstructure:"placement_attempts"`
	RotationAttempts  int `mapstructure:"rotation_attempts"`
}

// TanksConfig lists the tanks, one glyph each
type TanksConfig struct {
	Glyphs []string `mapstructure:"glyphs"`
}

// SimulationConfig holds driver loop settings
type SimulationConfig struct {
	Turns        int           `mapstructure:"turns"`
	TurnInterval time.Duration `mapstructure:"turn_interval"`
	// Seed for the random source; 0 means seed from the clock
	Seed int64 `mapstructure:"seed"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RenderConfig holds snapshot rendering settings
type RenderConfig struct {
	Color bool `mapstructure:"color"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// overlayPath is the environment overlay merged by LoadEnvironmentConfig
	overlayPath string
	mu          sync.Mutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("field.size", 10)
	v.SetDefault("field.placement_attempts", 1000)
	v.SetDefault("field.rotation_attempts", 64)

	v.SetDefault("tanks.glyphs", []string{"H", "O"})

	v.SetDefault("simulation.turns", 100)
	v.SetDefault("simulation.turn_interval", time.Second)
	v.SetDefault("simulation.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("render.color", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	overlayPath = ""

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tanks")
	}

	v.SetEnvPrefix("TANKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && errors.Is(err, os.ErrNotExist):
			// Specific file requested but not found - use defaults
		case configPath == "" && errors.As(err, &notFound):
			// No config in the default locations - use defaults
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := decode()
	if err != nil {
		return err
	}
	cfg = c

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml from the directory of the
// loaded config file (or the working directory) over the current settings.
// A missing overlay is not an error. The base file stays the one that is
// watched and reloaded; the overlay is re-applied on every reload.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	dir := "."
	if used := v.ConfigFileUsed(); used != "" {
		dir = filepath.Dir(used)
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if err := mergeOverlay(envFile); err != nil {
		return err
	}
	merged, err := decode()
	if err != nil {
		return err
	}
	overlayPath = envFile
	*cfg = *merged

	return nil
}

// mergeOverlay reads path with its own viper instance so the base config
// file registered on v is left alone
func mergeOverlay(path string) error {
	overlay := viper.New()
	overlay.SetConfigFile(path)
	if err := overlay.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading environment config %s: %w", path, err)
	}
	if err := v.MergeConfigMap(overlay.AllSettings()); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", path, err)
	}
	return nil
}

func decode() (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// readBase replaces the file layer of v with the base config file. Without a
// base file only defaults and environment variables remain.
func readBase() error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound) {
		return v.ReadConfig(strings.NewReader(""))
	}
	return fmt.Errorf("error reading config file: %w", err)
}

// reload re-reads the base file, re-applies the overlay and swaps the result
// into the global config. A rejected result leaves the config untouched.
func reload() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	current := *cfg
	if err := readBase(); err != nil {
		return &current, err
	}
	if overlayPath != "" {
		if err := mergeOverlay(overlayPath); err != nil {
			return &current, err
		}
	}
	reloaded, err := decode()
	if err != nil {
		return &current, err
	}
	*cfg = *reloaded

	out := *cfg
	return &out, nil
}

// watchedFiles lists the base file and the overlay, when they exist
func watchedFiles() []string {
	var files []string
	for _, f := range []string{v.ConfigFileUsed(), overlayPath} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err == nil {
			files = append(files, filepath.Clean(f))
		}
	}
	return files
}

// WatchConfig reloads the config whenever the base file or the environment
// overlay is written. onChange receives the reloaded config, or the current
// one together with the error when the change was rejected. The returned
// function stops watching.
func WatchConfig(onChange func(*Config, error)) (func() error, error) {
	files := watchedFiles()
	if len(files) == 0 {
		return nil, errors.New("no config file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating config watcher: %w", err)
	}

	// Watch the directories: editors often replace a file instead of writing it
	dirs := map[string]bool{}
	for _, f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("error watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if !slices.Contains(files, filepath.Clean(event.Name)) {
					continue
				}
				c, err := reload()
				if onChange != nil {
					onChange(c, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onChange != nil {
					onChange(Get(), fmt.Errorf("config watcher: %w", err))
				}
			}
		}
	}()

	return watcher.Close, nil
}

// GlyphRunes returns the tank glyphs as runes
func (c *Config) GlyphRunes() ([]rune, error) {
	runes := make([]rune, 0, len(c.Tanks.Glyphs))
	for i, g := range c.Tanks.Glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return nil, fmt.Errorf("tanks.glyphs[%d] %q must be a single character", i, g)
		}
		r, _ := utf8.DecodeRuneInString(g)
		runes = append(runes, r)
	}
	return runes, nil
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"console": true, "json": true}
)

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Field.Size < 2 {
		return fmt.Errorf("field.size must be at least 2")
	}
	if c.Field.PlacementAttempts <= 0 {
		return fmt.Errorf("field.placement_attempts must be positive")
	}
	if c.Field.RotationAttempts <= 0 {
		return fmt.Errorf("field.rotation_attempts must be positive")
	}

	if len(c.Tanks.Glyphs) == 0 {
		return fmt.Errorf("tanks.glyphs must list at least one tank")
	}
	if len(c.Tanks.Glyphs) > c.Field.Size*c.Field.Size {
		return fmt.Errorf("tanks.glyphs lists %d tanks, more than the %d cells of the field",
			len(c.Tanks.Glyphs), c.Field.Size*c.Field.Size)
	}
	glyphs, err := c.GlyphRunes()
	if err != nil {
		return err
	}
	seen := make(map[rune]bool, len(glyphs))
	for _, g := range glyphs {
		if g == '.' || g == '\n' {
			return fmt.Errorf("tanks.glyphs may not contain %q", g)
		}
		if seen[g] {
			return fmt.Errorf("tanks.glyphs contains %q twice", g)
		}
		seen[g] = true
	}

	if c.Simulation.Turns < 0 {
		return fmt.Errorf("simulation.turns must be non-negative")
	}
	if c.Simulation.TurnInterval < 0 {
		return fmt.Errorf("simulation.turn_interval must be non-negative")
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
