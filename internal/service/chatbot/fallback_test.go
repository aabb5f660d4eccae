package chatbot

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/stretchr/testify/assert"
)

func osloRecord() *core.WeatherRecord {
	return &core.WeatherRecord{
		Temp:          5,
		FeelsLike:     2,
		Description:   "light rain",
		City:          "Oslo",
		Country:       "NO",
		Humidity:      80,
		WindSpeed:     6,
		WindDirection: 270,
		Pressure:      1005,
		Visibility:    9000,
		Units:         core.UnitsMetric,
	}
}

func testResponder() *Responder {
	return NewResponder(
		WithClock(func() time.Time { return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC) }),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func TestRespondUmbrella(t *testing.T) {
	r := testResponder()

	got := r.Respond("should I bring an umbrella?", osloRecord(), "")
	assert.Contains(t, got, "Yes, definitely bring an umbrella")
	assert.Contains(t, got, "Oslo")
	assert.Contains(t, got, "light rain")

	clear := osloRecord()
	clear.Description = "clear sky"
	got = r.Respond("should I bring an umbrella?", clear, "")
	assert.Contains(t, got, "No umbrella needed")
}

func TestRespondClothing(t *testing.T) {
	r := testResponder()

	got := r.Respond("what should I wear?", osloRecord(), "")
	// 5°C lands in the 0-10 band, not the warm-weather template.
	assert.Contains(t, got, "Dress warmly")
	assert.Contains(t, got, "5°C")
	assert.Contains(t, got, "light rain")
	assert.NotContains(t, got, "Stay cool")

	hot := osloRecord()
	hot.Temp = 30
	got = r.Respond("what should I wear?", hot, "")
	assert.Contains(t, got, "Stay cool")
}

func TestRespondClothingBands(t *testing.T) {
	r := testResponder()

	tests := []struct {
		temp float64
		want string
	}{
		{-5, "Bundle up"},
		{5, "Dress warmly"},
		{15, "Light layers"},
		{22, "comfortable clothes"},
		{27, "Stay cool"},
	}

	for _, tt := range tests {
		rec := osloRecord()
		rec.Temp = tt.temp
		got := r.Respond("what should I wear?", rec, "")
		assert.Contains(t, got, tt.want, "temp %v", tt.temp)
	}
}

func TestRespondNoRecord(t *testing.T) {
	r := testResponder()

	got := r.Respond("weather in Tokyo", nil, "Tokyo")
	assert.Contains(t, got, "Tokyo")
	assert.Contains(t, got, "search")

	got = r.Respond("hello", nil, "")
	assert.Contains(t, got, "search for a location")
}

func TestRespondLocationSwitch(t *testing.T) {
	r := testResponder()

	got := r.Respond("what about Paris?", osloRecord(), "Paris")
	assert.Contains(t, got, "Paris")
	assert.Contains(t, got, "Oslo")
	assert.Contains(t, got, "light rain")
}

func TestRespondLocationMatchesRecordCity(t *testing.T) {
	r := testResponder()

	// Same city (case-insensitive) is not a switch; the umbrella rule
	// should answer instead.
	got := r.Respond("umbrella in oslo?", osloRecord(), "oslo")
	assert.Contains(t, got, "umbrella")
}

func TestRespondFuture(t *testing.T) {
	r := testResponder()

	got := r.Respond("will it rain tomorrow?", osloRecord(), "")
	assert.Contains(t, got, "tomorrow")
	// Never a confident forecast claim.
	assert.NotContains(t, got, "it will rain")

	got = r.Respond("what about next month?", osloRecord(), "")
	assert.Contains(t, got, "winter")
}

func TestRespondFuturePrecedesClothing(t *testing.T) {
	r := testResponder()

	// Future keyword outranks the clothing keyword.
	got := r.Respond("what should I wear tomorrow?", osloRecord(), "")
	assert.Contains(t, got, "tomorrow")
	assert.NotContains(t, got, "Dress warmly")
}

func TestRespondActivity(t *testing.T) {
	r := testResponder()

	got := r.Respond("can I do anything outside?", osloRecord(), "")
	assert.Contains(t, got, "Indoor activities")

	mild := osloRecord()
	mild.Description = "few clouds"
	mild.Temp = 20
	got = r.Respond("can I do anything outside?", mild, "")
	assert.Contains(t, got, "Perfect weather for outdoor activities")

	freezing := osloRecord()
	freezing.Description = "clear sky"
	freezing.Temp = 2
	got = r.Respond("can I do anything outside?", freezing, "")
	assert.Contains(t, got, "dress very warmly")
}

func TestRespondTemperature(t *testing.T) {
	r := testResponder()

	got := r.Respond("is it cold?", osloRecord(), "")
	assert.Contains(t, got, "5°C")
	assert.Contains(t, got, "2°C")
}

func TestRespondEngagingDeterministicWithSeed(t *testing.T) {
	a := NewResponder(WithRand(rand.New(rand.NewSource(7))))
	b := NewResponder(WithRand(rand.New(rand.NewSource(7))))

	got1 := a.Respond("what do you think about this weather?", osloRecord(), "")
	got2 := b.Respond("what do you think about this weather?", osloRecord(), "")
	assert.Equal(t, got1, got2)
	assert.Contains(t, got1, "light rain")
}

func TestRespondDefault(t *testing.T) {
	r := testResponder()

	got := r.Respond("blah blah", osloRecord(), "")
	assert.Contains(t, got, "Oslo")
	assert.Contains(t, got, "light rain")
}

func TestSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "autumn"},
		{time.November, "autumn"},
		{time.December, "winter"},
	}

	for _, tt := range tests {
		got := season(time.Date(2024, tt.month, 10, 0, 0, 0, 0, time.UTC))
		if got != tt.want {
			t.Errorf("season(%v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestRespondNeverEmpty(t *testing.T) {
	r := testResponder()

	messages := []string{
		"", "?", "umbrella", "wear", "outside", "hot", "tomorrow",
		"what do you think", "tell me about the weather in Madrid",
	}
	for _, msg := range messages {
		if strings.TrimSpace(r.Respond(msg, osloRecord(), "")) == "" {
			t.Errorf("Respond(%q) returned empty reply", msg)
		}
		if strings.TrimSpace(r.Respond(msg, nil, "")) == "" {
			t.Errorf("Respond(%q) with no record returned empty reply", msg)
		}
	}
}
