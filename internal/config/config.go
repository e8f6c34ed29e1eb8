// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// DungeonConfig holds floor generation settings.
type DungeonConfig struct {
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	MaxRooms    int `mapstructure:"max_rooms"`
	MinRoomSize int `mapstructure:"min_room_size"`
	MaxRoomSize int `mapstructure:"max_room_size"`
}

// TimingConfig holds the real-time pacing of the game.
type TimingConfig struct {
	// PlayerMoveCooldown is the minimum gap between accepted player moves.
	PlayerMoveCooldown time.Duration `mapstructure:"player_move_cooldown"`
	// EnemyMoveCooldown is the minimum gap between moves of a single enemy.
	EnemyMoveCooldown time.Duration `mapstructure:"enemy_move_cooldown"`
	// EnemyTurnDelay is the pause before an enemy strikes back in combat.
	EnemyTurnDelay time.Duration `mapstructure:"enemy_turn_delay"`
	// TickInterval is how often the frontend advances time-driven logic.
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where log lines go. The terminal belongs to the game, so this
	// defaults to a file.
	Output string `mapstructure:"output"`
}

// TelemetryConfig holds tracing settings.
type TelemetryConfig struct {
	// Enabled turns on the OTLP exporter. The endpoint comes from OTEL_* env vars.
	Enabled bool `mapstructure:"enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Seed      int64           `mapstructure:"seed"`
	Dungeon   DungeonConfig   `mapstructure:"dungeon"`
	Timing    TimingConfig    `mapstructure:"timing"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Game converts the configuration into session settings.
func (c Config) Game() game.Config {
	return game.Config{
		Seed: c.Seed,
		Dungeon: world.Params{
			Width:       c.Dungeon.Width,
			Height:      c.Dungeon.Height,
			MaxRooms:    c.Dungeon.MaxRooms,
			MinRoomSize: c.Dungeon.MinRoomSize,
			MaxRoomSize: c.Dungeon.MaxRoomSize,
		},
		PlayerMoveCooldown: c.Timing.PlayerMoveCooldown,
		EnemyMoveCooldown:  c.Timing.EnemyMoveCooldown,
		EnemyTurnDelay:     c.Timing.EnemyTurnDelay,
	}
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDungeon(c.Dungeon); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTiming(c.Timing); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDungeon(d DungeonConfig) error {
	var errs []string
	if d.Width < 10 {
		errs = append(errs, fmt.Sprintf("dungeon.width must be >= 10, got %d", d.Width))
	}
	if d.Height < 10 {
		errs = append(errs, fmt.Sprintf("dungeon.height must be >= 10, got %d", d.Height))
	}
	if d.MaxRooms < 1 {
		errs = append(errs, fmt.Sprintf("dungeon.max_rooms must be >= 1, got %d", d.MaxRooms))
	}
	if d.MinRoomSize < 1 {
		errs = append(errs, fmt.Sprintf("dungeon.min_room_size must be >= 1, got %d", d.MinRoomSize))
	}
	if d.MaxRoomSize < d.MinRoomSize {
		errs = append(errs, "dungeon.max_room_size must not be less than dungeon.min_room_size")
	}
	if d.MinRoomSize+2 >= d.Width || d.MinRoomSize+2 >= d.Height {
		errs = append(errs, "dungeon.min_room_size must leave room for the outer wall")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTiming(t TimingConfig) error {
	var errs []string
	if t.PlayerMoveCooldown < 0 {
		errs = append(errs, "timing.player_move_cooldown must not be negative")
	}
	if t.EnemyMoveCooldown < 0 {
		errs = append(errs, "timing.enemy_move_cooldown must not be negative")
	}
	if t.EnemyTurnDelay < 0 {
		errs = append(errs, "timing.enemy_turn_delay must not be negative")
	}
	if t.TickInterval <= 0 {
		errs = append(errs, "timing.tick_interval must be positive")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (Config, error) {
	return Load("")
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with DUNGEONCRAWL_ prefix
	v.SetEnvPrefix("DUNGEONCRAWL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 0)

	v.SetDefault("dungeon.width", 80)
	v.SetDefault("dungeon.height", 60)
	v.SetDefault("dungeon.max_rooms", 15)
	v.SetDefault("dungeon.min_room_size", 6)
	v.SetDefault("dungeon.max_room_size", 12)

	v.SetDefault("timing.player_move_cooldown", "200ms")
	v.SetDefault("timing.enemy_move_cooldown", "1s")
	v.SetDefault("timing.enemy_turn_delay", "1s")
	v.SetDefault("timing.tick_interval", "50ms")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "dungeoncrawl.log")

	v.SetDefault("telemetry.enabled", false)
}
