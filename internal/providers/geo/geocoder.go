package geo

import (
	"fmt"

	"github.com/kelvins/geocoder"
)

// Resolver turns device coordinates into a city name so the weather
// lookup can run against a human-readable location.
type Resolver struct {
	configured bool
}

func NewResolver(googleAPIKey string) *Resolver {
	if googleAPIKey == "" {
		return &Resolver{}
	}
	geocoder.ApiKey = googleAPIKey
	return &Resolver{configured: true}
}

// ReverseCity resolves lat/lon to the nearest city name. A missing API
// key is a configuration error reported to the caller, never a crash.
func (r *Resolver) ReverseCity(lat, lon float64) (string, error) {
	if !r.configured {
		return "", fmt.Errorf("geocoding is not configured: set GOOGLE_GEOCODING_API_KEY")
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	for _, addr := range addresses {
		if addr.City != "" {
			return addr.City, nil
		}
	}
	return "", fmt.Errorf("no city found for %.4f,%.4f", lat, lon)
}
