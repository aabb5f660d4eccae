package chatbot

import (
	"fmt"
	"strings"

	"github.com/sandevgo/skycast/internal/core"
)

// futureOutlook produces a speculative, explicitly-uncertain reply for
// questions about tomorrow, next week, next month or next year. It
// never claims a confident forecast: only patterns, possibilities and a
// question back to the user.
func (r *Responder) futureOutlook(msg string, rec *core.WeatherRecord) string {
	desc := strings.ToLower(rec.Description)
	temp := fnum(rec.Temp)
	unit := unitSymbol(rec.Units)
	szn := season(r.now())
	city := rec.City

	switch {
	case strings.Contains(msg, "tomorrow") || strings.Contains(msg, "tmrw"):
		return fmt.Sprintf("Interesting question about tomorrow in %s! 🤔 Looking at today's %s at %s%s, I'm thinking tomorrow could go a few ways. Weather patterns here suggest %s. What's your gut feeling about it? 🌤️",
			city, desc, temp, unit, tomorrowOutlook(desc))

	case strings.Contains(msg, "next week"):
		return fmt.Sprintf("Ooh, next week is fascinating to think about! 📅 Based on current %s conditions and typical %s patterns in %s, I'm imagining we might see %s. Weather can be so unpredictable though - what do you think will happen? 🌦️",
			desc, szn, city, r.pick(weeklyOutlooks))

	case strings.Contains(msg, "next month"):
		return fmt.Sprintf("Next month is exciting to speculate about! 🗓️ We're in %s now, so I'm thinking %s could be on the horizon. Climate patterns suggest %s. What's your prediction? 🍂❄️🌸☀️",
			szn, monthlyOutlook(szn), r.pick(seasonalTrends))

	case strings.Contains(msg, "next year"):
		return fmt.Sprintf("Wow, next year! That's some long-term thinking! 🌍 Climate-wise, I'm curious about how %s will evolve. With current global patterns, we might see %s. What do you think - will next year be warmer, cooler, or more unpredictable? 🌡️📊",
			city, r.pick(yearlyOutlooks))
	}

	return fmt.Sprintf("That's such a thoughtful question about the future! 🔮 Weather is endlessly fascinating to predict. Based on what I see in %s right now (%s, %s%s), I'm thinking weather will keep doing what it does best - surprising us with its complexity. What's your take on where the weather is heading? 🌈",
		city, desc, temp, unit)
}

func tomorrowOutlook(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "we might get another beautiful clear day, though atmospheric pressure could shift things"
	case strings.Contains(desc, "cloud"):
		return "clouds might persist or break up - depends on the pressure systems moving through"
	case strings.Contains(desc, "rain"):
		return "the rain could continue or clear up - weather fronts are always shifting"
	default:
		return "conditions could evolve in interesting ways - weather is so dynamic!"
	}
}

var weeklyOutlooks = []string{
	"some interesting temperature swings as pressure systems move through",
	"typical seasonal patterns with maybe a surprise or two",
	"the usual dance between high and low pressure systems",
	"some fascinating atmospheric changes - weather never stays the same!",
}

func monthlyOutlook(szn string) string {
	switch szn {
	case "winter":
		return "deeper winter patterns, maybe some interesting cold snaps or warm spells"
	case "spring":
		return "beautiful spring transitions with warming trends and fresh growth energy"
	case "summer":
		return "peak summer vibes with heat waves and maybe some dramatic thunderstorms"
	default:
		return "autumn's gorgeous color-changing weather with crisp, dynamic conditions"
	}
}

var seasonalTrends = []string{
	"natural seasonal progression with some delightful surprises",
	"the usual seasonal rhythm with nature's beautiful timing",
	"interesting climate patterns that make each season unique",
	"the wonderful unpredictability that makes weather so fascinating",
}

var yearlyOutlooks = []string{
	"more extreme weather events as climate patterns evolve",
	"interesting seasonal shifts and maybe some record-breaking moments",
	"the ongoing dance between traditional patterns and climate change",
	"fascinating new weather phenomena as our atmosphere continues changing",
}

func (r *Responder) pick(pool []string) string {
	return pool[r.rand.Intn(len(pool))]
}
