// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`

	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	ChallengeURL     string        `env:"CHALLENGE_URL"`
	ChallengeTimeout time.Duration `env:"CHALLENGE_TIMEOUT" envDefault:"8s"`

	LeaderboardDB string `env:"LEADERBOARD_DB" envDefault:"leaderboard.db"`

	FogDuration time.Duration `env:"FOG_DURATION" envDefault:"30s"`
	BotDelay    time.Duration `env:"BOT_DELAY" envDefault:"1500ms"`
}

// Load parses the environment into a Config
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
