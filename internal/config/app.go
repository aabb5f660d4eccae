package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/skycast/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SKYCAST_RUNTIME_PATH" envDefault:".skycast"`

	// Default location and units used before the user searches.
	DefaultCity string `env:"SKYCAST_DEFAULT_CITY" envDefault:"London"`
	Units       string `env:"SKYCAST_UNITS" envDefault:"metric"`

	// Transport flags
	EnableTelegram bool `env:"SKYCAST_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"SKYCAST_ENABLE_CLI" envDefault:"true"`

	// Background refresh of the active city's weather.
	RefreshInterval time.Duration `env:"SKYCAST_REFRESH_INTERVAL" envDefault:"10m"`

	// Number of non-system messages a session retains.
	HistoryLimit int `env:"SKYCAST_HISTORY_LIMIT" envDefault:"20"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "skycast.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
