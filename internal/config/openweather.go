package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/skycast/pkg/log"
)

type OpenWeatherConfig struct {
	APIKey  string `env:"OPENWEATHER_API_KEY,required,notEmpty"`
	BaseURL string `env:"OPENWEATHER_BASE_URL" envDefault:"https://api.openweathermap.org"`
}

func NewOpenWeatherConfig(ctx context.Context) *OpenWeatherConfig {
	c := &OpenWeatherConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenWeather config")
	}
	return c
}
