package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samdwyer/dungeoncrawl/internal/game"
)

func validConfig() Config {
	return Config{
		Dungeon: DungeonConfig{
			Width:       80,
			Height:      60,
			MaxRooms:    15,
			MinRoomSize: 6,
			MaxRoomSize: 12,
		},
		Timing: TimingConfig{
			PlayerMoveCooldown: 200 * time.Millisecond,
			EnemyMoveCooldown:  time.Second,
			EnemyTurnDelay:     time.Second,
			TickInterval:       50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "dungeoncrawl.log",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, validConfig(), cfg)
}

func TestDefaultMatchesGameDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg.Game())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
seed: 1234
dungeon:
  width: 100
  max_rooms: 20
timing:
  enemy_turn_delay: 500ms
logging:
  level: debug
  format: console
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 100, cfg.Dungeon.Width)
	assert.Equal(t, 60, cfg.Dungeon.Height, "unset keys keep defaults")
	assert.Equal(t, 20, cfg.Dungeon.MaxRooms)
	assert.Equal(t, 500*time.Millisecond, cfg.Timing.EnemyTurnDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Enabled)

	gc := cfg.Game()
	assert.Equal(t, int64(1234), gc.Seed)
	assert.Equal(t, 100, gc.Dungeon.Width)
	assert.Equal(t, 500*time.Millisecond, gc.EnemyTurnDelay)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DUNGEONCRAWL_DUNGEON_WIDTH", "120")
	t.Setenv("DUNGEONCRAWL_TIMING_PLAYER_MOVE_COOLDOWN", "100ms")
	t.Setenv("DUNGEONCRAWL_SEED", "99")

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Dungeon.Width)
	assert.Equal(t, 100*time.Millisecond, cfg.Timing.PlayerMoveCooldown)
	assert.Equal(t, int64(99), cfg.Seed)
}

func TestValidateReportsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"narrow dungeon", func(c *Config) { c.Dungeon.Width = 5 }, "dungeon.width"},
		{"no rooms", func(c *Config) { c.Dungeon.MaxRooms = 0 }, "dungeon.max_rooms"},
		{"inverted room sizes", func(c *Config) { c.Dungeon.MaxRoomSize = 3 }, "dungeon.max_room_size"},
		{"negative cooldown", func(c *Config) { c.Timing.PlayerMoveCooldown = -time.Second }, "timing.player_move_cooldown"},
		{"zero tick", func(c *Config) { c.Timing.TickInterval = 0 }, "timing.tick_interval"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no output", func(c *Config) { c.Logging.Output = "" }, "logging.output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Dungeon.Width = 1
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dungeon.width")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidDungeonSizes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := validConfig()
		cfg.Dungeon.MinRoomSize = rapid.IntRange(1, 10).Draw(rt, "min")
		cfg.Dungeon.MaxRoomSize = cfg.Dungeon.MinRoomSize + rapid.IntRange(0, 10).Draw(rt, "spread")
		cfg.Dungeon.Width = rapid.IntRange(cfg.Dungeon.MinRoomSize+3, 200).Draw(rt, "width")
		cfg.Dungeon.Height = rapid.IntRange(cfg.Dungeon.MinRoomSize+3, 200).Draw(rt, "height")
		cfg.Dungeon.Width = max(cfg.Dungeon.Width, 10)
		cfg.Dungeon.Height = max(cfg.Dungeon.Height, 10)
		assert.NoError(rt, cfg.Validate())
	})
}
