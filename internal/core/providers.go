package core

import "context"

type AIProvider interface {
	Complete(ctx context.Context, messages []Message, sampling SamplingConfig) (string, error)
}

type WeatherProvider interface {
	FetchByCity(ctx context.Context, city string, units Units) (WeatherRecord, error)
	FetchByCoords(ctx context.Context, lat, lon float64, units Units) (WeatherRecord, error)
}

type ImageProvider interface {
	Resolve(ctx context.Context, city string) (LocationImage, error)
}

// LocationImage is a background image resolved for a city.
type LocationImage struct {
	URL         string
	Description string
}

// TranscriptSink receives every message appended to a session. It is
// write-through observability; session history is never read back from it.
type TranscriptSink interface {
	AddMessage(ctx context.Context, sessionID string, msg ChatMessage) error
}
