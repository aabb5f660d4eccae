// Package session owns the stateful conversational wrapper around the
// chatbot orchestrator: ordered history, a system prompt, and sampling
// configuration, with send/clear/reconfigure operations.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/service/chatbot"
	"github.com/sandevgo/skycast/pkg/log"
)

// historyBound is the number of non-system messages retained. Oldest
// messages are pruned first; the system prompt is configuration, not a
// history entry, so it always survives pruning and Clear.
const historyBound = 20

var ErrEmptyMessage = errors.New("message is empty")

// Config is the session's mutable configuration. SystemPrompt frames
// every model call; the sampling fields are passed through per turn.
type Config struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

// ConfigPatch is a partial Config update. Nil fields keep their prior
// value.
type ConfigPatch struct {
	Model        *string
	MaxTokens    *int
	Temperature  *float64
	SystemPrompt *string
}

// Session holds one conversation. Turns are not safe for concurrent
// use: callers run one turn at a time, the way the transports gate
// input while a turn is in flight. The weather record is the exception,
// since the refresher replaces it from its own goroutine.
type Session struct {
	id      string
	cfg     Config
	orch    *chatbot.Orchestrator
	units   core.Units
	history []core.ChatMessage
	sink    core.TranscriptSink
	now     func() time.Time
	newID   func() string

	recMu  sync.RWMutex
	record *core.WeatherRecord
}

type Option func(*Session)

// WithSink attaches a write-through transcript sink. Sink failures are
// logged and never fail a turn.
func WithSink(sink core.TranscriptSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithWeather seeds the session's current weather record.
func WithWeather(rec *core.WeatherRecord) Option {
	return func(s *Session) {
		s.record = rec
	}
}

// WithUnits sets the measurement system used for weather lookups.
func WithUnits(units core.Units) Option {
	return func(s *Session) {
		s.units = units
	}
}

// WithClock replaces the wall clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithIDFunc replaces the message ID generator.
func WithIDFunc(newID func() string) Option {
	return func(s *Session) {
		s.newID = newID
	}
}

func New(orch *chatbot.Orchestrator, cfg Config, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		cfg:   cfg,
		orch:  orch,
		units: core.UnitsMetric,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Send runs one conversation turn: append the user message, produce a
// reply through the orchestrator, append and return it. The reply is
// always produced; only blank input is rejected.
func (s *Session) Send(ctx context.Context, text string) (core.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return core.ChatMessage{}, ErrEmptyMessage
	}

	// Snapshot before appending so the current question isn't rendered
	// into its own history block.
	prior := s.History()

	s.append(ctx, s.newMessage(core.RoleUser, text))

	reply := s.orch.Ask(ctx, chatbot.Request{
		Text:         text,
		Record:       s.Weather(),
		History:      prior,
		SystemPrompt: s.cfg.SystemPrompt,
		Sampling: core.SamplingConfig{
			Model:       s.cfg.Model,
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: s.cfg.Temperature,
		},
		Units: s.units,
	})

	msg := s.newMessage(core.RoleAssistant, reply)
	s.append(ctx, msg)
	return msg, nil
}

// History returns the non-system messages in insertion order. The
// returned slice is a copy.
func (s *Session) History() []core.ChatMessage {
	out := make([]core.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Clear drops the conversation history. The system prompt and the rest
// of the configuration are untouched.
func (s *Session) Clear() {
	s.history = nil
}

func (s *Session) SetSystemPrompt(prompt string) {
	s.cfg.SystemPrompt = prompt
}

// UpdateConfig merges the patch into the current configuration. Fields
// left nil keep their prior value. History is not altered.
func (s *Session) UpdateConfig(patch ConfigPatch) {
	if patch.Model != nil {
		s.cfg.Model = *patch.Model
	}
	if patch.MaxTokens != nil {
		s.cfg.MaxTokens = *patch.MaxTokens
	}
	if patch.Temperature != nil {
		s.cfg.Temperature = *patch.Temperature
	}
	if patch.SystemPrompt != nil {
		s.cfg.SystemPrompt = *patch.SystemPrompt
	}
}

func (s *Session) Config() Config {
	return s.cfg
}

// SetWeather replaces the current weather record wholesale. The old
// record is fully discarded so two locations' data are never mixed.
// Safe to call while a turn is in flight.
func (s *Session) SetWeather(rec *core.WeatherRecord) {
	s.recMu.Lock()
	s.record = rec
	s.recMu.Unlock()
}

func (s *Session) Weather() *core.WeatherRecord {
	s.recMu.RLock()
	defer s.recMu.RUnlock()
	return s.record
}

func (s *Session) SetUnits(units core.Units) {
	s.units = units
}

func (s *Session) Units() core.Units {
	return s.units
}

func (s *Session) newMessage(role string, text string) core.ChatMessage {
	return core.ChatMessage{
		ID:        s.newID(),
		Role:      role,
		Text:      text,
		Timestamp: s.now(),
	}
}

func (s *Session) append(ctx context.Context, msg core.ChatMessage) {
	s.history = append(s.history, msg)
	if len(s.history) > historyBound {
		s.history = s.history[len(s.history)-historyBound:]
	}

	if s.sink != nil {
		if err := s.sink.AddMessage(ctx, s.id, msg); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("session", s.id).Msg("failed to persist message")
		}
	}
}
