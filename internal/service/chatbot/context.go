package chatbot

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/skycast/internal/core"
)

const (
	// historyWindow is the number of recent messages rendered into the
	// prompt context (3 exchanges).
	historyWindow = 6

	// defaultTokenBudget bounds the assembled context block. History
	// lines are dropped oldest first when the block would exceed it.
	defaultTokenBudget = 1200
)

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			tk = enc
		}
	})
	return tk
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	if enc := getTokenizer(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	// Rough approximation when the encoding is unavailable offline.
	return len([]rune(text))/4 + 1
}

// Assembler builds the opaque textual context handed to the model:
// a weather block, a bounded history block, and a location note when
// the user asked about somewhere other than the active city.
type Assembler struct {
	tokenBudget int
}

func NewAssembler() *Assembler {
	return &Assembler{tokenBudget: defaultTokenBudget}
}

// Context is the assembled prompt material. WeatherBlock and
// LocationNote extend the system prompt; HistoryBlock prefixes the
// user message, matching the wire layout the model was tuned against.
type Context struct {
	WeatherBlock string
	HistoryBlock string
	LocationNote string
}

// Build assembles the context. The freshly fetched record wins over the
// session's current record when both are present.
func (a *Assembler) Build(current, fetched *core.WeatherRecord, extractedLocation string, history []core.ChatMessage) Context {
	active := current
	if fetched != nil {
		active = fetched
	}

	ctx := Context{
		WeatherBlock: weatherBlock(active),
		HistoryBlock: a.historyBlock(history),
	}

	if extractedLocation != "" && (current == nil || !strings.EqualFold(current.City, extractedLocation)) {
		ctx.LocationNote = fmt.Sprintf("The user is asking about weather in: %s. The weather data provided above is for this location.", extractedLocation)
	}

	return ctx
}

func weatherBlock(rec *core.WeatherRecord) string {
	if rec == nil {
		return "No current weather data available."
	}

	unit := unitSymbol(rec.Units)
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather in %s, %s:\n", rec.City, rec.Country)
	fmt.Fprintf(&b, "- Temperature: %s%s (feels like %s%s)\n", fnum(rec.Temp), unit, fnum(rec.FeelsLike), unit)
	fmt.Fprintf(&b, "- Conditions: %s\n", rec.Description)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", rec.Humidity)
	fmt.Fprintf(&b, "- Wind: %s m/s\n", fnum(rec.WindSpeed))
	fmt.Fprintf(&b, "- Visibility: %.1f km", float64(rec.Visibility)/1000)
	return b.String()
}

// historyBlock renders the last historyWindow messages as role-labeled
// lines, dropping oldest lines first if the block would blow the token
// budget. An empty history yields an empty block.
func (a *Assembler) historyBlock(history []core.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	lines := make([]string, 0, len(recent))
	for _, msg := range recent {
		label := "User"
		if msg.Role == core.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Text))
	}

	for len(lines) > 0 {
		block := "Recent conversation:\n" + strings.Join(lines, "\n") + "\n\n"
		if countTokens(block) <= a.tokenBudget {
			return block
		}
		lines = lines[1:]
	}
	return ""
}
