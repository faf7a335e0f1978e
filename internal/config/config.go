// Package config loads ls-zodiac settings from defaults, a TOML config file,
// LSZODIAC_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// EnvPrefix is the environment variable prefix for config keys.
const EnvPrefix = "LSZODIAC"

// FileName is the default config file name in the user's home directory.
const FileName = ".ls-zodiac.toml"

// ErrConfigExists is returned by WriteDefault when the file is present.
var ErrConfigExists = errors.New("config file already exists")

// Config holds all runtime configuration.
type Config struct {
	Convention   string   `mapstructure:"convention" toml:"convention"`
	TransitionMS int      `mapstructure:"transition_ms" toml:"transition_ms"`
	LogLevel     string   `mapstructure:"log_level" toml:"log_level"`
	LogFile      string   `mapstructure:"log_file" toml:"log_file"`
	Ephemeris    string   `mapstructure:"ephemeris" toml:"ephemeris"`
	VSOP87Dir    string   `mapstructure:"vsop87_dir" toml:"vsop87_dir"`
	FixedStars   []string `mapstructure:"fixed_stars" toml:"fixed_stars"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Convention:   zodiac.ConventionTrue.String(),
		TransitionMS: int(zodiac.DefaultTransitionDuration / time.Millisecond),
		LogLevel:     "info",
		LogFile:      "",
		Ephemeris:    "auto",
		VSOP87Dir:    "",
		FixedStars:   append([]string(nil), astro.RoyalStars...),
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("convention", d.Convention)
	v.SetDefault("transition_ms", d.TransitionMS)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("ephemeris", d.Ephemeris)
	v.SetDefault("vsop87_dir", d.VSOP87Dir)
	v.SetDefault("fixed_stars", d.FixedStars)
}

// Load reads configuration from the global viper instance, applying
// built-in defaults for any values not set by config file, environment, or
// flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads and validates configuration from v.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a single config file on a fresh viper instance, with
// environment overrides applied.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return LoadFrom(v)
}

var validEphemeris = []string{"auto", "precise", "approximate"}
var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	if _, err := zodiac.ParseConvention(c.Convention); err != nil {
		return fmt.Errorf("convention: %w", err)
	}
	if c.TransitionMS < 0 || c.TransitionMS > 60000 {
		return fmt.Errorf("transition_ms: %d out of range 0..60000", c.TransitionMS)
	}
	if !oneOf(c.Ephemeris, validEphemeris) {
		return fmt.Errorf("ephemeris: %q must be one of %s", c.Ephemeris, strings.Join(validEphemeris, ", "))
	}
	if !oneOf(c.LogLevel, validLogLevels) {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if _, err := astro.DefaultStarCatalog().Select(c.FixedStars); err != nil {
		return fmt.Errorf("fixed_stars: %w", err)
	}
	return nil
}

func oneOf(s string, options []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// ZodiacConvention returns the parsed convention. Call after Validate.
func (c Config) ZodiacConvention() zodiac.Convention {
	conv, _ := zodiac.ParseConvention(c.Convention)
	return conv
}

// TransitionDuration returns the animation length.
func (c Config) TransitionDuration() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

// DefaultPath returns ~/.ls-zodiac.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

const fileHeader = `# ls-zodiac configuration
# convention: true | traditional
# ephemeris:  auto | precise | approximate
# vsop87_dir: directory holding VSOP87B.* files for precise planets

`

// WriteDefault writes the built-in configuration as TOML to path. An
// existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshaling config to TOML: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, append([]byte(fileHeader), data...), 0o644)
}
