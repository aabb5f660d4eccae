package chatbot

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/skycast/internal/core"
)

// Responder generates deterministic replies without any external call.
// It is the offline path used when no model is configured or the model
// call fails. Classification is priority-ordered and first-match wins;
// the order matters, since the keyword sets overlap: a message like
// "what to wear tomorrow" is a future question, not a clothing one.
type Responder struct {
	now  func() time.Time
	rand *rand.Rand
}

type ResponderOption func(*Responder)

// WithClock replaces the wall clock, used by tests to pin the season.
func WithClock(now func() time.Time) ResponderOption {
	return func(r *Responder) {
		r.now = now
	}
}

// WithRand replaces the randomness source used for template pools.
func WithRand(rnd *rand.Rand) ResponderOption {
	return func(r *Responder) {
		r.rand = rnd
	}
}

func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond classifies the message and produces a templated reply from
// the live weather record. Category precedence mirrors the product's
// established behavior: missing record, location switch, future
// timeframe, clothing, umbrella, activity, temperature, engaging,
// default.
func (r *Responder) Respond(message string, rec *core.WeatherRecord, extractedLocation string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	if rec == nil {
		if extractedLocation != "" {
			return fmt.Sprintf("I'd love to help you with weather information for %s! Unfortunately, I couldn't fetch the current weather data for that location. Please try searching for it in the main app, or ask me about a different location. 🌤️", extractedLocation)
		}
		return "I'd love to help with weather questions! Please search for a location first so I can give you specific advice. 🌤️"
	}

	if extractedLocation != "" && !strings.EqualFold(rec.City, extractedLocation) {
		return fmt.Sprintf("Great question about %s! I found weather data for %s, %s. Right now it's %s%s with %s. %s What would you like to know about the weather there? 🌍",
			extractedLocation, rec.City, rec.Country, fnum(rec.Temp), unitSymbol(rec.Units), strings.ToLower(rec.Description), locationAdvice(rec))
	}

	switch {
	case containsAny(msg, "tomorrow", "tmrw", "future", "next week", "next month", "next year"):
		return r.futureOutlook(msg, rec)
	case containsAny(msg, "wear", "clothes", "dress"):
		return clothingAdvice(rec)
	case containsAny(msg, "umbrella", "rain"):
		return umbrellaAdvice(rec)
	case containsAny(msg, "outside", "outdoor", "activity"):
		return activityAdvice(rec)
	case containsAny(msg, "hot", "cold", "temperature"):
		return temperatureAdvice(rec)
	case containsAny(msg, "weather", "how", "what", "think", "opinion"):
		return r.engagingReply(msg, rec)
	}

	return fmt.Sprintf("Hey! I love talking about weather! 🌤️ Right now in %s, we've got %s at %s%s. What's on your mind about the weather? I'm curious about your thoughts! 😊",
		rec.City, strings.ToLower(rec.Description), fnum(rec.Temp), unitSymbol(rec.Units))
}

func containsAny(msg string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func unitSymbol(u core.Units) string {
	if u == core.UnitsImperial {
		return "°F"
	}
	return "°C"
}

// season derives the current season from the calendar month using the
// Northern-hemisphere convention (Dec-Feb winter, Mar-May spring,
// Jun-Aug summer, Sep-Nov autumn), matching the original product.
func season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	case time.September, time.October, time.November:
		return "autumn"
	default:
		return "winter"
	}
}

func clothingAdvice(rec *core.WeatherRecord) string {
	temp := rec.Temp
	desc := strings.ToLower(rec.Description)
	unit := unitSymbol(rec.Units)

	switch {
	case temp < 0:
		return fmt.Sprintf("Bundle up! At %s%s with %s, you'll want heavy winter clothes, coat, gloves, and warm boots. 🧥❄️", fnum(temp), unit, desc)
	case temp < 10:
		return fmt.Sprintf("Dress warmly! At %s%s with %s, wear a jacket or coat with layers underneath. 🧥", fnum(temp), unit, desc)
	case temp < 20:
		return fmt.Sprintf("Light layers work well! At %s%s with %s, try a sweater or light jacket you can remove if needed. 👕", fnum(temp), unit, desc)
	case temp < 25:
		return fmt.Sprintf("Perfect weather for comfortable clothes! At %s%s with %s, a t-shirt and light pants should be great. 👕", fnum(temp), unit, desc)
	default:
		return fmt.Sprintf("Stay cool! At %s%s with %s, light, breathable clothing and don't forget sunscreen! ☀️👕", fnum(temp), unit, desc)
	}
}

func umbrellaAdvice(rec *core.WeatherRecord) string {
	desc := strings.ToLower(rec.Description)
	needsUmbrella := strings.Contains(desc, "rain") ||
		strings.Contains(desc, "drizzle") ||
		strings.Contains(desc, "shower")

	if needsUmbrella {
		return fmt.Sprintf("Yes, definitely bring an umbrella! It's %s in %s right now. ☔", desc, rec.City)
	}
	return fmt.Sprintf("No umbrella needed right now! The weather is %s in %s. ☀️", desc, rec.City)
}

func activityAdvice(rec *core.WeatherRecord) string {
	temp := rec.Temp
	desc := strings.ToLower(rec.Description)
	unit := unitSymbol(rec.Units)

	switch {
	case strings.Contains(desc, "rain") || strings.Contains(desc, "storm"):
		return fmt.Sprintf("Indoor activities might be better today with %s in %s. Great time for museums, shopping, or cozy indoor plans! 🏠", desc, rec.City)
	case temp > 15 && temp < 28:
		return fmt.Sprintf("Perfect weather for outdoor activities! At %s%s with %s, it's great for walks, sports, or outdoor dining. 🌞", fnum(temp), unit, desc)
	case temp < 5:
		return fmt.Sprintf("Bundle up if going outside! At %s%s, outdoor activities are possible but dress very warmly. ❄️", fnum(temp), unit)
	default:
		return fmt.Sprintf("The weather is %s at %s%s - outdoor activities are definitely possible with the right preparation! 🌤️", desc, fnum(temp), unit)
	}
}

func temperatureAdvice(rec *core.WeatherRecord) string {
	temp, feels := rec.Temp, rec.FeelsLike
	unit := unitSymbol(rec.Units)

	switch {
	case temp < 0:
		return fmt.Sprintf("It's quite cold at %s%s (feels like %s%s) in %s. Stay warm and limit time outdoors! ❄️", fnum(temp), unit, fnum(feels), unit, rec.City)
	case temp < 10:
		return fmt.Sprintf("It's chilly at %s%s (feels like %s%s) in %s. A good day for warm drinks and cozy clothes! ☕", fnum(temp), unit, fnum(feels), unit, rec.City)
	case temp < 25:
		return fmt.Sprintf("Nice temperature at %s%s (feels like %s%s) in %s. Very comfortable for most activities! 😊", fnum(temp), unit, fnum(feels), unit, rec.City)
	default:
		return fmt.Sprintf("It's warm at %s%s (feels like %s%s) in %s. Stay hydrated and seek shade when possible! ☀️", fnum(temp), unit, fnum(feels), unit, rec.City)
	}
}

func locationAdvice(rec *core.WeatherRecord) string {
	desc := strings.ToLower(rec.Description)
	switch {
	case strings.Contains(desc, "rain"):
		return "You might want to bring an umbrella if you're planning to visit!"
	case rec.Temp < 10:
		return "It's quite chilly there, so pack some warm clothes!"
	case rec.Temp > 25:
		return "It's nice and warm there - perfect weather to enjoy!"
	default:
		return "The weather looks quite pleasant there!"
	}
}
