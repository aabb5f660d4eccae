package chatbot

import (
	"fmt"
	"strings"

	"github.com/sandevgo/skycast/internal/core"
)

// engagingReply handles opinion-seeking and general weather curiosity.
// Replies come from fixed template pools so conversations don't repeat
// the same line back to back; selection uses the injected rand source.
func (r *Responder) engagingReply(msg string, rec *core.WeatherRecord) string {
	desc := strings.ToLower(rec.Description)
	temp := fnum(rec.Temp)
	unit := unitSymbol(rec.Units)
	city := rec.City

	if containsAny(msg, "think", "opinion") {
		thoughts := []string{
			fmt.Sprintf("Honestly, I think this %s weather in %s is pretty fascinating! At %s%s, it's got that %s vibe. What's your take on it?", desc, city, temp, unit, weatherPersonality(desc)),
			fmt.Sprintf("You know what I think about this %s at %s%s? It's got character! %s What do you think - does this weather match your mood today?", desc, temp, unit, weatherMood(desc)),
			fmt.Sprintf("My thoughts on %s's %s weather? It's telling a story! %s What story do you think this weather is telling?", city, desc, weatherStory(desc)),
			fmt.Sprintf("I find this %s weather really interesting! %s What's your philosophy on weather like this?", desc, r.pick(weatherPhilosophies)),
		}
		return r.pick(thoughts) + " 🤔💭"
	}

	responses := []string{
		fmt.Sprintf("Right now in %s, we've got %s at %s%s - and I'm genuinely curious what you think about it! %s 🌤️", city, desc, temp, unit, weatherQuestion(desc)),
		fmt.Sprintf("This %s weather in %s (%s%s) has me thinking... %s What's your weather intuition telling you? 🤨", desc, city, temp, unit, r.pick(weatherWonders)),
		fmt.Sprintf("%s's showing us %s at %s%s today! %s What catches your attention about this weather? 🌈", city, desc, temp, unit, weatherExcitement(desc)),
		fmt.Sprintf("I love how %s is giving us %s weather at %s%s! %s What do you appreciate about conditions like this? ✨", city, desc, temp, unit, r.pick(weatherAppreciations)),
	}
	return r.pick(responses)
}

func weatherPersonality(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "confident and bright"
	case strings.Contains(desc, "cloud"):
		return "mysterious and contemplative"
	case strings.Contains(desc, "rain"):
		return "dramatic and refreshing"
	case strings.Contains(desc, "snow"):
		return "magical and serene"
	default:
		return "unique and intriguing"
	}
}

func weatherMood(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "It feels optimistic and energizing!"
	case strings.Contains(desc, "cloud"):
		return "There's something cozy and introspective about it."
	case strings.Contains(desc, "rain"):
		return "It's got that cleansing, renewal energy."
	default:
		return "It has its own special atmosphere!"
	}
}

func weatherStory(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "It's like nature is showing off, putting on a perfect display!"
	case strings.Contains(desc, "cloud"):
		return "The clouds are painting abstract art across the sky."
	case strings.Contains(desc, "rain"):
		return "It's nature's way of washing the world clean and fresh."
	default:
		return "Every weather pattern has its own narrative unfolding."
	}
}

func weatherQuestion(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "Do you feel that energy boost that clear skies bring?"
	case strings.Contains(desc, "cloud"):
		return "Do you find cloudy weather peaceful or gloomy?"
	case strings.Contains(desc, "rain"):
		return "Are you a rain lover or do you prefer sunshine?"
	default:
		return "How does this weather make you feel?"
	}
}

func weatherExcitement(desc string) string {
	switch {
	case strings.Contains(desc, "clear"):
		return "Those clear skies are absolutely gorgeous!"
	case strings.Contains(desc, "cloud"):
		return "I love how clouds create such dynamic skyscapes!"
	case strings.Contains(desc, "rain"):
		return "Rain has such a refreshing, life-giving energy!"
	default:
		return "Every type of weather has its own special beauty!"
	}
}

var weatherPhilosophies = []string{
	"I believe every weather pattern teaches us something about change and adaptation.",
	"Weather reminds us that beauty comes in so many different forms.",
	"There's something profound about how weather connects us all to the same atmosphere.",
	"Weather is like nature's mood ring - always shifting, always expressing something new.",
}

var weatherWonders = []string{
	"isn't it amazing how weather can completely change our day's energy?",
	"I wonder what atmospheric forces are dancing together to create this!",
	"it's fascinating how weather patterns travel across continents to reach us.",
	"weather is like nature's daily surprise - never quite the same twice!",
}

var weatherAppreciations = []string{
	"There's something wonderful about experiencing all of nature's moods.",
	"Weather keeps life interesting - imagine if it was the same every day!",
	"Each weather pattern brings its own gifts and lessons.",
	"Weather connects us to the bigger rhythms of our planet.",
}
