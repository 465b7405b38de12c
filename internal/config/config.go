package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// BotConfig is the full process configuration, loaded from the environment
type BotConfig struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	StartingBalance int64 `env:"STARTING_BALANCE" envDefault:"5000"`

	BlackjackTurnTimeout time.Duration `env:"BLACKJACK_TURN_TIMEOUT" envDefault:"60s"`
	DuelChallengeTimeout time.Duration `env:"DUEL_CHALLENGE_TIMEOUT" envDefault:"45s"`
	DuelIdleTimeout      time.Duration `env:"DUEL_IDLE_TIMEOUT" envDefault:"30m"`

	DraftCapacity      int           `env:"DRAFT_CAPACITY" envDefault:"10"`
	DraftIdleTimeout   time.Duration `env:"DRAFT_IDLE_TIMEOUT" envDefault:"30m"`
	DraftSyntheticFill bool          `env:"DRAFT_SYNTHETIC_FILL" envDefault:"true"`

	RotationCandidateIDs []string     `env:"ROTATION_CANDIDATE_IDS" envSeparator:","`
	RotationRoleID       string       `env:"ROTATION_ROLE_ID"`
	RotationWeekday      time.Weekday `env:"ROTATION_WEEKDAY" envDefault:"0"`
}

// RotationEnabled reports whether the weekly rotation has enough
// configuration to run
func (c BotConfig) RotationEnabled() bool {
	return len(c.RotationCandidateIDs) > 0 && c.RotationRoleID != "" && c.GuildID != ""
}

// LoadBot parses the bot configuration from the environment
func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}

// LogConfig controls logger initialization
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// LoadLog parses the logging configuration from the environment
func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
