// Package describe turns a weather record into a short reporter-style
// narrative, using the model when one is configured and a deterministic
// template otherwise.
package describe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/pkg/log"
)

const reporterSystemPrompt = "You are a professional weather reporter who creates engaging, descriptive weather updates. Keep responses concise but vivid, around 2-3 sentences."

type Describer struct {
	ai       core.AIProvider
	sampling core.SamplingConfig
	now      func() time.Time
}

type Option func(*Describer)

// WithClock replaces the wall clock used for the time-of-day phrasing.
func WithClock(now func() time.Time) Option {
	return func(d *Describer) {
		d.now = now
	}
}

// New builds a describer. A nil provider means every call takes the
// template path.
func New(ai core.AIProvider, sampling core.SamplingConfig, opts ...Option) *Describer {
	d := &Describer{
		ai:       ai,
		sampling: sampling,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Describe produces the narrative. Model failures degrade to the
// template; the result is never empty and never an error message.
func (d *Describer) Describe(ctx context.Context, rec core.WeatherRecord) string {
	if d.ai != nil {
		text, err := d.ai.Complete(ctx, []core.Message{
			{Role: core.RoleSystem, Content: reporterSystemPrompt},
			{Role: core.RoleUser, Content: reporterPrompt(rec)},
		}, d.sampling)
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Msg("model description failed, using template")
		} else if strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return d.template(rec)
}

func reporterPrompt(rec core.WeatherRecord) string {
	unit := "°C"
	if rec.Units == core.UnitsImperial {
		unit = "°F"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Write a vivid, engaging paragraph describing the current weather conditions in %s, %s.\n\n", rec.City, rec.Country)
	b.WriteString("Current conditions:\n")
	fmt.Fprintf(&b, "- Temperature: %.0f%s (feels like %.0f%s)\n", rec.Temp, unit, rec.FeelsLike, unit)
	fmt.Fprintf(&b, "- Weather: %s\n", rec.Description)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", rec.Humidity)
	fmt.Fprintf(&b, "- Wind: %.0f m/s\n", rec.WindSpeed)
	fmt.Fprintf(&b, "- Visibility: %.1f km\n\n", float64(rec.Visibility)/1000)
	b.WriteString("Write this as if you're a local weather reporter giving a colorful, descriptive update. Make it engaging and paint a picture of what it's like to be there right now. Keep it to 2-3 sentences and make it conversational and informative.")
	return b.String()
}

// template composes the deterministic narrative from banded phrasings
// of each field plus a time-of-day opener.
func (d *Describer) template(rec core.WeatherRecord) string {
	wc := conditionContext(strings.ToLower(rec.Description))

	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s, %s, the weather presents %s. ", timeContext(d.now()), rec.City, rec.Country, wc.main)
	fmt.Fprintf(&b, "With temperatures at %.0f°C (feeling like %.0f°C), it's %s. ", rec.Temp, rec.FeelsLike, tempFeeling(rec.Temp))
	fmt.Fprintf(&b, "The air %s with %d%% humidity, while %s at %.0f m/s. ", humidityFeeling(rec.Humidity), rec.Humidity, windFeeling(rec.WindSpeed), rec.WindSpeed)
	fmt.Fprintf(&b, "%s with %.1f km visibility, %s", visibilityFeeling(rec.Visibility), float64(rec.Visibility)/1000, wc.advice)
	return strings.TrimSpace(b.String())
}

func tempFeeling(temp float64) string {
	switch {
	case temp < 0:
		return "quite cold and you'll want to bundle up"
	case temp < 10:
		return "chilly and a jacket would be wise"
	case temp < 20:
		return "pleasantly cool and comfortable"
	case temp < 25:
		return "warm and pleasant"
	case temp < 30:
		return "quite warm and summery"
	default:
		return "hot and you'll want to stay hydrated"
	}
}

func humidityFeeling(humidity int) string {
	switch {
	case humidity < 30:
		return "feels dry and crisp"
	case humidity < 60:
		return "feels comfortable"
	case humidity < 80:
		return "feels a bit humid"
	default:
		return "feels quite muggy and sticky"
	}
}

func windFeeling(speed float64) string {
	switch {
	case speed < 2:
		return "the air is calm and still"
	case speed < 5:
		return "there's a gentle breeze"
	case speed < 10:
		return "a moderate breeze is blowing"
	case speed < 15:
		return "it's quite breezy"
	default:
		return "strong winds are present"
	}
}

func visibilityFeeling(visibility int) string {
	km := float64(visibility) / 1000
	switch {
	case km < 1:
		return "Visibility is quite poor"
	case km < 5:
		return "Visibility is limited"
	case km < 10:
		return "Visibility is moderate"
	default:
		return "Visibility is excellent"
	}
}

type weatherContext struct {
	main   string
	advice string
}

func conditionContext(desc string) weatherContext {
	switch {
	case strings.Contains(desc, "clear"):
		return weatherContext{
			main:   "beautifully clear skies with abundant sunshine",
			advice: "making it perfect for outdoor activities and enjoying the day.",
		}
	case strings.Contains(desc, "cloud"):
		return weatherContext{
			main:   "a cloudy atmosphere with overcast skies",
			advice: "creating a soft, diffused light throughout the area.",
		}
	case strings.Contains(desc, "rain"):
		return weatherContext{
			main:   "active rainfall creating a fresh, wet environment",
			advice: "so an umbrella would be essential for any outdoor plans.",
		}
	case strings.Contains(desc, "snow"):
		return weatherContext{
			main:   "snowy conditions blanketing the landscape",
			advice: "creating a winter wonderland but requiring warm clothing.",
		}
	case strings.Contains(desc, "mist"), strings.Contains(desc, "fog"):
		return weatherContext{
			main:   "misty conditions creating an atmospheric, ethereal environment",
			advice: "adding a mysterious quality to the surroundings.",
		}
	case strings.Contains(desc, "thunder"), strings.Contains(desc, "storm"):
		return weatherContext{
			main:   "dramatic stormy weather with electrical activity",
			advice: "so it's best to stay indoors and enjoy the natural spectacle safely.",
		}
	default:
		return weatherContext{
			main:   desc + " conditions dominating the local weather",
			advice: "creating the current atmospheric conditions you're experiencing.",
		}
	}
}

func timeContext(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 6:
		return "In the early morning hours"
	case hour < 12:
		return "This morning"
	case hour < 17:
		return "This afternoon"
	case hour < 21:
		return "This evening"
	default:
		return "Tonight"
	}
}
