// Package config loads runtime settings from an optional config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tomz197/skyfighter/internal/tuning"
)

// FileName is the config file looked up in the config directory.
const FileName = "skyfighter"

// LevelOverride replaces completion settings for a single level.
type LevelOverride struct {
	Completion string        `mapstructure:"completion"`
	Kills      int           `mapstructure:"kills"`
	Waves      int           `mapstructure:"waves"`
	Duration   time.Duration `mapstructure:"duration"`
}

// Settings holds all runtime settings.
type Settings struct {
	Log struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
		Dir   string `mapstructure:"dir"` // Per-run files when File is empty
	} `mapstructure:"log"`

	Playfield struct {
		Width  float64 `mapstructure:"width"`
		Height float64 `mapstructure:"height"`
	} `mapstructure:"playfield"`

	Spawn struct {
		Mode      string `mapstructure:"mode"`      // waves | timer
		Placement string `mapstructure:"placement"` // uniform | centered
	} `mapstructure:"spawn"`

	Game struct {
		Completion string                   `mapstructure:"completion"` // waves | kills | timed
		Levels     map[string]LevelOverride `mapstructure:"levels"`
	} `mapstructure:"game"`

	Combat struct {
		HitPolicy   string   `mapstructure:"hit_policy"`  // all | first
		DropChance  *float64 `mapstructure:"drop_chance"` // nil keeps each level's own chance
		HealthShare float64  `mapstructure:"health_share"`
	} `mapstructure:"combat"`

	Leaderboard struct {
		Path string `mapstructure:"path"`
		Size int    `mapstructure:"size"`
	} `mapstructure:"leaderboard"`

	SSH struct {
		Host        string `mapstructure:"host"`
		Port        string `mapstructure:"port"`
		HostKeyPath string `mapstructure:"host_key"`
		DisplayHost string `mapstructure:"display_host"`
	} `mapstructure:"ssh"`

	Web struct {
		Host string `mapstructure:"host"`
		Port string `mapstructure:"port"`
	} `mapstructure:"web"`
}

// envAliases keeps the short variable names used by the deployment scripts.
var envAliases = map[string]string{
	"ssh.host":         "SSH_HOST",
	"ssh.port":         "SSH_PORT",
	"ssh.host_key":     "SSH_HOST_KEY",
	"ssh.display_host": "SSH_DISPLAY_HOST",
	"web.host":         "WEB_HOST",
	"web.port":         "WEB_PORT",
}

// Load registers defaults, reads the optional config file from configDir and
// binds environment variables. A missing config file is not an error.
func Load(configDir string) error {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.dir", "")

	viper.SetDefault("playfield.width", tuning.PlayfieldWidth)
	viper.SetDefault("playfield.height", tuning.PlayfieldHeight)

	viper.SetDefault("spawn.mode", "waves")
	viper.SetDefault("spawn.placement", "centered")

	viper.SetDefault("game.completion", "waves")

	viper.SetDefault("combat.hit_policy", "all")
	viper.SetDefault("combat.health_share", tuning.HealthShare)

	viper.SetDefault("leaderboard.path", "skyfighter.db")
	viper.SetDefault("leaderboard.size", tuning.LeaderboardSize)

	viper.SetDefault("ssh.host", "::")
	viper.SetDefault("ssh.port", "2222")
	viper.SetDefault("ssh.host_key", "/app/keys/host_key")
	viper.SetDefault("ssh.display_host", "your-server.com")

	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", "8080")

	viper.SetEnvPrefix("SKYFIGHTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, env := range envAliases {
		if err := viper.BindEnv(key, "SKYFIGHTER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	// No default: an unset drop chance leaves the per-level values in charge.
	if err := viper.BindEnv("combat.drop_chance", "SKYFIGHTER_COMBAT_DROP_CHANCE"); err != nil {
		return fmt.Errorf("binding combat.drop_chance: %w", err)
	}

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Current decodes the loaded configuration into Settings and validates it.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ErrInvalidSetting is returned by Validate for out-of-range values.
var ErrInvalidSetting = errors.New("invalid setting")

// Validate checks enumerated values and ranges. It also switches wave-count
// completion to kill-count when enemies come from the timer spawner, since
// that spawner never produces waves.
func (s *Settings) Validate() error {
	switch s.Spawn.Mode {
	case "waves", "timer":
	default:
		return fmt.Errorf("%w: spawn.mode %q", ErrInvalidSetting, s.Spawn.Mode)
	}
	switch s.Spawn.Placement {
	case "uniform", "centered":
	default:
		return fmt.Errorf("%w: spawn.placement %q", ErrInvalidSetting, s.Spawn.Placement)
	}
	switch s.Game.Completion {
	case "waves", "kills", "timed":
	default:
		return fmt.Errorf("%w: game.completion %q", ErrInvalidSetting, s.Game.Completion)
	}
	switch s.Combat.HitPolicy {
	case "all", "first":
	default:
		return fmt.Errorf("%w: combat.hit_policy %q", ErrInvalidSetting, s.Combat.HitPolicy)
	}
	if c := s.Combat.DropChance; c != nil && (*c < 0 || *c > 1) {
		return fmt.Errorf("%w: combat.drop_chance %v", ErrInvalidSetting, *c)
	}
	if s.Combat.HealthShare < 0 || s.Combat.HealthShare > 1 {
		return fmt.Errorf("%w: combat.health_share %v", ErrInvalidSetting, s.Combat.HealthShare)
	}
	if s.Playfield.Width <= 0 || s.Playfield.Height <= 0 {
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalidSetting, s.Playfield.Width, s.Playfield.Height)
	}
	if s.Leaderboard.Size <= 0 {
		s.Leaderboard.Size = tuning.LeaderboardSize
	}
	if s.Spawn.Mode == "timer" && s.Game.Completion == "waves" {
		s.Game.Completion = "kills"
	}
	return nil
}
