package chatbot

import (
	"regexp"
	"strings"
)

// locationPatterns recognize common phrasings that mention another
// location ("weather in X", "how is X", "X weather"). Ordered: the
// first pattern whose capture survives the stopword filter wins.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:weather in|weather at|how is|how's|what's.*weather.*in|what about|tell me about.*weather.*in)\s+([a-zA-Z\s,]+?)(?:\?|$|,|\s+weather|\s+like|\s+today|\s+now)`),
	// Anchored so word-final "in"/"at" ("what", "rain") never match.
	regexp.MustCompile(`(?i)\b(?:in|at)\s+([a-zA-Z\s,]+?)(?:\s+weather|\s+today|\s+now|\?|$)`),
	regexp.MustCompile(`(?i)([a-zA-Z\s,]+?)(?:\s+weather|\s+temperature|\s+climate)(?:\?|$)`),
}

// locationStopwords are words the patterns tend to capture that are
// never locations: temporal, demonstrative and generic-adjective noise.
var locationStopwords = map[string]struct{}{
	"the": {}, "weather": {}, "today": {}, "now": {}, "like": {},
	"there": {}, "here": {}, "it": {}, "this": {}, "that": {},
	"good": {}, "bad": {}, "nice": {}, "hot": {}, "cold": {},
}

// ExtractLocation heuristically pulls a location name out of free user
// text. It is best-effort: usually right for common phrasings, with
// false negatives and positives accepted. The second return value is
// false when no pattern matches or every candidate is rejected.
func ExtractLocation(message string) (string, bool) {
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}

		candidate := strings.TrimSpace(m[1])
		if len(candidate) <= 2 {
			continue
		}
		if _, stop := locationStopwords[strings.ToLower(candidate)]; stop {
			continue
		}
		return candidate, true
	}
	return "", false
}
