package chatbot

import (
	"context"
	"strings"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/pkg/log"
)

// DefaultSystemPrompt frames the assistant for the model path.
const DefaultSystemPrompt = `You are a professional and engaging virtual weather assistant with deep expertise in meteorology, climate science, and atmospheric patterns. Your role is to provide accurate, practical, and thoughtful weather insights in a friendly, conversational tone.

You have access to real-time weather data and can answer questions about weather in ANY location worldwide. When users ask about different countries, cities, or regions, provide specific weather information for those locations.

Key responsibilities:
- Answer everyday weather questions like: "Should I bring an umbrella?", "Will it rain tomorrow?", "What's the forecast this weekend?"
- Handle location-specific queries like: "What's the weather like in Paris?", "How's the climate in Japan?"
- Use provided weather context when available, and supplement with meteorological knowledge
- Offer practical advice based on conditions (clothing, activities, travel)
- Explain weather phenomena in accessible language
- Ask engaging follow-up questions to create meaningful conversations
- Use emojis and casual language appropriately while maintaining professionalism

Always respond helpfully by combining meteorological expertise, real-time weather data, and thoughtful human-like conversation.`

// Request carries everything one Ask turn needs. The orchestrator owns
// no mutable state; session state lives with the caller.
type Request struct {
	Text         string
	Record       *core.WeatherRecord
	History      []core.ChatMessage
	SystemPrompt string
	Sampling     core.SamplingConfig
	Units        core.Units
}

// Orchestrator composes the extraction, fetch, assembly, model and
// fallback steps into a single ask operation. Both providers may be
// nil: with no AI provider every turn takes the fallback path, with no
// weather provider location switches reuse the caller's record.
type Orchestrator struct {
	ai        core.AIProvider
	weather   core.WeatherProvider
	units     core.Units
	assembler *Assembler
	fallback  *Responder
}

func NewOrchestrator(ai core.AIProvider, weather core.WeatherProvider, units core.Units, fallback *Responder) *Orchestrator {
	if fallback == nil {
		fallback = NewResponder()
	}
	return &Orchestrator{
		ai:        ai,
		weather:   weather,
		units:     units,
		assembler: NewAssembler(),
		fallback:  fallback,
	}
}

// Ask answers one user turn. Every failure below this boundary is
// absorbed: the reply is always a same-shaped chat message, produced by
// the model when possible and by the rule-based fallback otherwise.
func (o *Orchestrator) Ask(ctx context.Context, req Request) string {
	logger := log.FromCtx(ctx)

	extracted, _ := ExtractLocation(req.Text)

	// A mentioned location gets its own lookup; a failed fetch is
	// "no data for that location", never an error shown to the user.
	units := o.units
	if req.Units != "" {
		units = req.Units
	}

	var fetched *core.WeatherRecord
	if extracted != "" && o.weather != nil {
		rec, err := o.weather.FetchByCity(ctx, extracted, units)
		if err != nil {
			logger.Debug().Err(err).Str("location", extracted).Msg("weather lookup for mentioned location failed")
		} else {
			fetched = &rec
		}
	}

	contextRecord := req.Record
	if fetched != nil {
		contextRecord = fetched
	}

	if o.ai != nil {
		reply, err := o.complete(ctx, req, fetched, extracted)
		if err != nil {
			logger.Debug().Err(err).Msg("model completion failed, using fallback")
		} else {
			return reply
		}
	}

	return o.fallback.Respond(req.Text, contextRecord, extracted)
}

func (o *Orchestrator) complete(ctx context.Context, req Request, fetched *core.WeatherRecord, extracted string) (string, error) {
	pc := o.assembler.Build(req.Record, fetched, extracted, req.History)

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	var sys strings.Builder
	sys.WriteString(systemPrompt)
	sys.WriteString("\n\nCurrent weather context:\n")
	sys.WriteString(pc.WeatherBlock)
	if pc.LocationNote != "" {
		sys.WriteString("\n\n")
		sys.WriteString(pc.LocationNote)
	}

	messages := []core.Message{
		{Role: core.RoleSystem, Content: sys.String()},
		{Role: core.RoleUser, Content: pc.HistoryBlock + "User question: " + req.Text},
	}

	return o.ai.Complete(ctx, messages, req.Sampling)
}
