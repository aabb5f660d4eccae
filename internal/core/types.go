package core

import "time"

const (
	AppName       = "SkyCast"
	AppUserAgent  = "SkyCast-Agent/0.1"
	AppRepository = "https://github.com/sandevgo/skycast"
	AppVersion    = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Units selects the measurement system used for weather requests.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// WeatherRecord is an immutable snapshot of conditions for one place at
// one moment. It is produced by the weather provider and replaced
// wholesale when a new location loads; fields are never updated in place.
type WeatherRecord struct {
	Temp          float64 `json:"temp"`
	FeelsLike     float64 `json:"feelsLike"`
	Description   string  `json:"description"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection int     `json:"windDirection"`
	Pressure      int     `json:"pressure"`
	Visibility    int     `json:"visibility"`
	Icon          string  `json:"icon,omitempty"`
	Units         Units   `json:"units"`
}

// Message is a single chat turn in provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatMessage is one entry of a conversation history as the session
// keeps it. Messages are never mutated after creation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SamplingConfig bounds a single model completion.
type SamplingConfig struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}
