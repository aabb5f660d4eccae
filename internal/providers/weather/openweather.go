package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sony/gobreaker"
)

// Client fetches current conditions from OpenWeatherMap and maps them
// into core.WeatherRecord. It implements core.WeatherProvider.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: httpClient,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

func (c *Client) FetchByCity(ctx context.Context, city string, units core.Units) (core.WeatherRecord, error) {
	values := url.Values{}
	values.Set("q", city)
	return c.fetch(ctx, values, units)
}

func (c *Client) FetchByCoords(ctx context.Context, lat, lon float64, units core.Units) (core.WeatherRecord, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetch(ctx, values, units)
}

func (c *Client) fetch(ctx context.Context, values url.Values, units core.Units) (core.WeatherRecord, error) {
	if c.apiKey == "" {
		return core.WeatherRecord{}, fmt.Errorf("openweather api key is not configured")
	}
	if units == "" {
		units = core.UnitsMetric
	}

	buildRequest := func() (*http.Request, error) {
		v := url.Values{}
		for k, vs := range values {
			v[k] = vs
		}
		v.Set("appid", c.apiKey)
		v.Set("units", string(units))

		u := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, v.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", core.AppUserAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return core.WeatherRecord{}, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Visibility int `json:"visibility"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return core.WeatherRecord{}, fmt.Errorf("decode weather response: %w", err)
	}

	rec := core.WeatherRecord{
		Temp:          payload.Main.Temp,
		FeelsLike:     payload.Main.FeelsLike,
		City:          payload.Name,
		Country:       payload.Sys.Country,
		Humidity:      payload.Main.Humidity,
		WindSpeed:     payload.Wind.Speed,
		WindDirection: payload.Wind.Deg,
		Pressure:      payload.Main.Pressure,
		Visibility:    payload.Visibility,
		Units:         units,
	}
	if len(payload.Weather) > 0 {
		rec.Description = payload.Weather[0].Description
		rec.Icon = payload.Weather[0].Icon
	}
	return rec, nil
}
