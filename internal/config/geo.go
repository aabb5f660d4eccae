package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/skycast/pkg/log"
)

// GeoConfig holds the Google Geocoding key used to resolve coordinates
// to a city name. Optional: without it the --coords flow is unavailable.
type GeoConfig struct {
	GoogleAPIKey string `env:"GOOGLE_GEOCODING_API_KEY"`
}

func NewGeoConfig(ctx context.Context) *GeoConfig {
	c := &GeoConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Geo config")
	}
	return c
}
