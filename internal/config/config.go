// internal/config/config.go
//
// Process configuration, read from the environment (and a .env file loaded
// by main). Empty path fields mean "use the embedded default data".

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	Port      string        `env:"PORT" envDefault:"5175"`
	LogLevel  zerolog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool          `env:"LOG_PRETTY" envDefault:"false"`
	DBPath    string        `env:"DB_PATH" envDefault:"./data/pokedle.db"`

	ResetHourUTC         int     `env:"RESET_HOUR_UTC" envDefault:"23"`
	SaturdayFullArtRatio float64 `env:"SATURDAY_FULL_ART_RATIO" envDefault:"0.5"`

	RosterFile       string `env:"ROSTER_FILE"`
	CardManifestFile string `env:"CARD_MANIFEST_FILE"`
	OverridesFile    string `env:"OVERRIDES_FILE"`
	AssetBaseURL     string `env:"ASSET_BASE_URL" envDefault:"/assets"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"pokedle_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Production     bool   `env:"PRODUCTION" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values env cannot express as types.
func (c *Config) Validate() error {
	if c.ResetHourUTC < 0 || c.ResetHourUTC > 23 {
		return fmt.Errorf("RESET_HOUR_UTC must be 0..23, got %d", c.ResetHourUTC)
	}
	if c.SaturdayFullArtRatio < 0 || c.SaturdayFullArtRatio > 1 {
		return fmt.Errorf("SATURDAY_FULL_ART_RATIO must be within [0,1], got %v", c.SaturdayFullArtRatio)
	}
	if c.JWTExpiresDays <= 0 {
		return fmt.Errorf("JWT_EXPIRES_DAYS must be positive, got %d", c.JWTExpiresDays)
	}
	return nil
}
