package chatbot

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	reply    string
	err      error
	messages []core.Message
	sampling core.SamplingConfig
	calls    int
}

func (s *stubAI) Complete(_ context.Context, messages []core.Message, sampling core.SamplingConfig) (string, error) {
	s.calls++
	s.messages = messages
	s.sampling = sampling
	return s.reply, s.err
}

type stubWeather struct {
	records map[string]core.WeatherRecord
	err     error
	asked   []string
}

func (s *stubWeather) FetchByCity(_ context.Context, city string, _ core.Units) (core.WeatherRecord, error) {
	s.asked = append(s.asked, city)
	if s.err != nil {
		return core.WeatherRecord{}, s.err
	}
	rec, ok := s.records[city]
	if !ok {
		return core.WeatherRecord{}, errors.New("city not found")
	}
	return rec, nil
}

func (s *stubWeather) FetchByCoords(context.Context, float64, float64, core.Units) (core.WeatherRecord, error) {
	return core.WeatherRecord{}, errors.New("not implemented")
}

func seededResponder() *Responder {
	return NewResponder(WithRand(rand.New(rand.NewSource(1))))
}

func TestAskUsesModelReply(t *testing.T) {
	ai := &stubAI{reply: "Pack a raincoat!"}
	o := NewOrchestrator(ai, nil, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{
		Text:   "should I bring an umbrella?",
		Record: osloRecord(),
	})

	assert.Equal(t, "Pack a raincoat!", got)
	assert.Equal(t, 1, ai.calls)
}

func TestAskPromptLayout(t *testing.T) {
	ai := &stubAI{reply: "ok"}
	o := NewOrchestrator(ai, nil, core.UnitsMetric, seededResponder())

	history := []core.ChatMessage{
		{Role: core.RoleUser, Text: "hi"},
		{Role: core.RoleAssistant, Text: "hello!"},
	}
	o.Ask(context.Background(), Request{
		Text:     "is it cold?",
		Record:   osloRecord(),
		History:  history,
		Sampling: core.SamplingConfig{Model: "gpt-3.5-turbo", MaxTokens: 150, Temperature: 0.7},
	})

	require.Len(t, ai.messages, 2)

	sys := ai.messages[0]
	assert.Equal(t, core.RoleSystem, sys.Role)
	assert.Contains(t, sys.Content, "virtual weather assistant")
	assert.Contains(t, sys.Content, "Current weather context:")
	assert.Contains(t, sys.Content, "Current weather in Oslo, NO:")

	user := ai.messages[1]
	assert.Equal(t, core.RoleUser, user.Role)
	assert.Contains(t, user.Content, "Recent conversation:\nUser: hi\nAssistant: hello!")
	assert.True(t, strings.HasSuffix(user.Content, "User question: is it cold?"))

	assert.Equal(t, "gpt-3.5-turbo", ai.sampling.Model)
	assert.Equal(t, 150, ai.sampling.MaxTokens)
}

func TestAskCustomSystemPrompt(t *testing.T) {
	ai := &stubAI{reply: "ok"}
	o := NewOrchestrator(ai, nil, core.UnitsMetric, seededResponder())

	o.Ask(context.Background(), Request{
		Text:         "hello",
		Record:       osloRecord(),
		SystemPrompt: "You are a terse forecaster.",
	})

	require.Len(t, ai.messages, 2)
	assert.True(t, strings.HasPrefix(ai.messages[0].Content, "You are a terse forecaster."))
	assert.NotContains(t, ai.messages[0].Content, "virtual weather assistant")
}

func TestAskModelFailureFallsBack(t *testing.T) {
	ai := &stubAI{err: errors.New("upstream timeout")}
	o := NewOrchestrator(ai, nil, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{
		Text:   "should I bring an umbrella?",
		Record: osloRecord(),
	})

	assert.Contains(t, got, "Yes, definitely bring an umbrella")
	assert.Contains(t, got, "Oslo")
}

func TestAskNoModelConfigured(t *testing.T) {
	o := NewOrchestrator(nil, nil, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{
		Text:   "what should I wear?",
		Record: osloRecord(),
	})

	assert.Contains(t, got, "Dress warmly")
}

func TestAskFetchesMentionedLocation(t *testing.T) {
	tokyo := core.WeatherRecord{
		Temp:        28,
		FeelsLike:   31,
		Description: "clear sky",
		City:        "Tokyo",
		Country:     "JP",
		Humidity:    60,
		WindSpeed:   3,
		Units:       core.UnitsMetric,
	}
	weather := &stubWeather{records: map[string]core.WeatherRecord{"Tokyo": tokyo}}
	ai := &stubAI{reply: "ok"}
	o := NewOrchestrator(ai, weather, core.UnitsMetric, seededResponder())

	o.Ask(context.Background(), Request{
		Text:   "what's the weather in Tokyo?",
		Record: osloRecord(),
	})

	assert.Equal(t, []string{"Tokyo"}, weather.asked)
	require.Len(t, ai.messages, 2)
	// The fetched record replaces the session's record in the prompt.
	assert.Contains(t, ai.messages[0].Content, "Current weather in Tokyo, JP:")
	assert.NotContains(t, ai.messages[0].Content, "Oslo")
	assert.Contains(t, ai.messages[0].Content, "The user is asking about weather in: Tokyo.")
}

func TestAskFetchFailureTolerated(t *testing.T) {
	weather := &stubWeather{err: errors.New("service unavailable")}
	o := NewOrchestrator(nil, weather, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{
		Text:   "weather in Tokyo",
		Record: nil,
	})

	// Fallback acknowledges the asked city even though the fetch failed.
	assert.Contains(t, got, "Tokyo")
	assert.Contains(t, got, "couldn't fetch")
}

func TestAskLocationSwitchWithoutModel(t *testing.T) {
	paris := core.WeatherRecord{
		Temp:        18,
		FeelsLike:   17,
		Description: "few clouds",
		City:        "Paris",
		Country:     "FR",
		Units:       core.UnitsMetric,
	}
	weather := &stubWeather{records: map[string]core.WeatherRecord{"Paris": paris}}
	o := NewOrchestrator(nil, weather, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{
		Text:   "what's the weather in Paris?",
		Record: osloRecord(),
	})

	// The fallback answers from the freshly fetched Paris record.
	assert.Contains(t, got, "Paris")
	assert.Contains(t, got, "few clouds")
}

func TestAskNoWeatherAtAll(t *testing.T) {
	o := NewOrchestrator(nil, nil, core.UnitsMetric, seededResponder())

	got := o.Ask(context.Background(), Request{Text: "hello"})
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "search for a location")
}
