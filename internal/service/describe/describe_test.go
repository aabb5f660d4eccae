package describe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAI struct {
	reply    string
	err      error
	messages []core.Message
}

func (s *stubAI) Complete(_ context.Context, messages []core.Message, _ core.SamplingConfig) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func osloRecord() core.WeatherRecord {
	return core.WeatherRecord{
		Temp:        5,
		FeelsLike:   2,
		Description: "light rain",
		City:        "Oslo",
		Country:     "NO",
		Humidity:    80,
		WindSpeed:   6,
		Visibility:  9000,
		Units:       core.UnitsMetric,
	}
}

func noonClock() Option {
	return WithClock(func() time.Time {
		return time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)
	})
}

func TestDescribeUsesModel(t *testing.T) {
	ai := &stubAI{reply: "A grey, drizzly afternoon settles over Oslo."}
	d := New(ai, core.SamplingConfig{Model: "gpt-3.5-turbo", MaxTokens: 150, Temperature: 0.7}, noonClock())

	got := d.Describe(context.Background(), osloRecord())
	assert.Equal(t, "A grey, drizzly afternoon settles over Oslo.", got)

	require.Len(t, ai.messages, 2)
	assert.Equal(t, core.RoleSystem, ai.messages[0].Role)
	assert.Contains(t, ai.messages[0].Content, "weather reporter")
	assert.Contains(t, ai.messages[1].Content, "Oslo, NO")
	assert.Contains(t, ai.messages[1].Content, "- Temperature: 5°C (feels like 2°C)")
	assert.Contains(t, ai.messages[1].Content, "- Visibility: 9.0 km")
}

func TestDescribeModelFailureUsesTemplate(t *testing.T) {
	ai := &stubAI{err: errors.New("upstream timeout")}
	d := New(ai, core.SamplingConfig{}, noonClock())

	got := d.Describe(context.Background(), osloRecord())
	assert.Contains(t, got, "This afternoon in Oslo, NO")
	assert.Contains(t, got, "active rainfall")
}

func TestDescribeBlankModelReplyUsesTemplate(t *testing.T) {
	ai := &stubAI{reply: "   "}
	d := New(ai, core.SamplingConfig{}, noonClock())

	got := d.Describe(context.Background(), osloRecord())
	assert.Contains(t, got, "This afternoon in Oslo, NO")
}

func TestTemplateComposition(t *testing.T) {
	d := New(nil, core.SamplingConfig{}, noonClock())

	got := d.Describe(context.Background(), osloRecord())
	assert.Contains(t, got, "This afternoon in Oslo, NO, the weather presents active rainfall creating a fresh, wet environment.")
	assert.Contains(t, got, "With temperatures at 5°C (feeling like 2°C), it's chilly and a jacket would be wise.")
	assert.Contains(t, got, "The air feels quite muggy and sticky with 80% humidity, while a moderate breeze is blowing at 6 m/s.")
	assert.Contains(t, got, "Visibility is moderate with 9.0 km visibility, so an umbrella would be essential for any outdoor plans.")
}

func TestTempFeelingBands(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{-3, "quite cold"},
		{5, "chilly"},
		{15, "pleasantly cool"},
		{22, "warm and pleasant"},
		{27, "quite warm and summery"},
		{33, "hot"},
	}
	for _, tt := range tests {
		assert.Contains(t, tempFeeling(tt.temp), tt.want, "temp %v", tt.temp)
	}
}

func TestTimeContext(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{3, "In the early morning hours"},
		{9, "This morning"},
		{14, "This afternoon"},
		{19, "This evening"},
		{23, "Tonight"},
	}
	for _, tt := range tests {
		got := timeContext(time.Date(2024, time.January, 15, tt.hour, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got, "hour %d", tt.hour)
	}
}

func TestConditionContextFallsBackToDescription(t *testing.T) {
	wc := conditionContext("dust haze")
	assert.Equal(t, "dust haze conditions dominating the local weather", wc.main)
}
