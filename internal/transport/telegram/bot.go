package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/skycast/internal/config"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/service/describe"
	"github.com/sandevgo/skycast/internal/service/session"
	"github.com/sandevgo/skycast/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// SessionFactory builds the per-chat session. Each chat gets its own
// conversation; telebot serializes updates per chat for us.
type SessionFactory func() *session.Session

// transcriptStore lets /clear drop the persisted transcript together
// with the in-memory session.
type transcriptStore interface {
	ClearSession(ctx context.Context, sessionID string) error
}

type Bot struct {
	bot       *tele.Bot
	cfg       *config.TelegramConfig
	app       *config.AppConfig
	weather   core.WeatherProvider
	describer *describe.Describer
	newSess   SessionFactory
	store     transcriptStore
	sessions  map[int64]*session.Session
	sender    *sender
	ownerID   int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	app *config.AppConfig,
	weather core.WeatherProvider,
	describer *describe.Describer,
	newSess SessionFactory,
	store transcriptStore,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:       b,
		cfg:       cfg,
		app:       app,
		weather:   weather,
		describer: describer,
		newSess:   newSess,
		store:     store,
		sessions:  make(map[int64]*session.Session),
		sender:    newSender(b),
		ownerID:   cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/city", bot.handleCity)
	b.Handle("/now", bot.handleNow)
	b.Handle("/clear", bot.handleClear)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// chatSession returns the chat's session, creating and seeding it with
// the default city's weather on first contact.
func (b *Bot) chatSession(ctx context.Context, c tele.Context) *session.Session {
	chatID := c.Chat().ID
	if sess, ok := b.sessions[chatID]; ok {
		return sess
	}

	sess := b.newSess()
	if rec, err := b.weather.FetchByCity(ctx, b.app.DefaultCity, sess.Units()); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("city", b.app.DefaultCity).Msg("initial weather fetch failed")
	} else {
		sess.SetWeather(&rec)
	}

	b.sessions[chatID] = sess
	return sess
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sess := b.chatSession(ctx, c)

	greeting := fmt.Sprintf("Hi! I'm %s, your weather assistant. Ask me anything about the weather, or use /city <name> to switch locations. ⛅", core.AppName)
	if rec := sess.Weather(); rec != nil {
		greeting += fmt.Sprintf("\n\nCurrently tracking *%s, %s*.", rec.City, rec.Country)
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), greeting, false)
}

func (b *Bot) handleCity(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sess := b.chatSession(ctx, c)

	city := strings.TrimSpace(c.Message().Payload)
	if city == "" {
		return c.Send("Usage: /city <name>")
	}

	rec, err := b.weather.FetchByCity(ctx, city, sess.Units())
	if err != nil {
		logger.Warn().Err(err).Str("city", city).Msg("weather fetch failed")
		return c.Send(fmt.Sprintf("Couldn't fetch weather for %s right now.", city))
	}

	sess.SetWeather(&rec)
	return b.sender.sendMarkdown(ctx, c.Chat(), b.weatherSummary(ctx, &rec), false)
}

func (b *Bot) handleNow(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sess := b.chatSession(ctx, c)

	rec := sess.Weather()
	if rec == nil {
		return c.Send("No weather loaded yet. Try /city <name>.")
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), b.weatherSummary(ctx, rec), false)
}

func (b *Bot) handleClear(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	sess := b.chatSession(ctx, c)
	sess.Clear()
	if b.store != nil {
		if err := b.store.ClearSession(ctx, sess.ID()); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to clear transcript")
		}
	}
	return c.Send("Conversation cleared.")
}

func (b *Bot) handleMessage(c tele.Context) error {
	// Create a context for this request
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sess := b.chatSession(ctx, c)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply, err := sess.Send(ctx, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("session send failed")
		return nil
	}

	if err := b.sender.sendMarkdown(ctx, c.Chat(), reply.Text, false); err != nil {
		logger.Error().Err(err).Msg("failed to send telegram message")
	}
	return nil
}

func (b *Bot) weatherSummary(ctx context.Context, rec *core.WeatherRecord) string {
	unit := "°C"
	if rec.Units == core.UnitsImperial {
		unit = "°F"
	}

	var md strings.Builder
	fmt.Fprintf(&md, "*%s, %s*\n", rec.City, rec.Country)
	fmt.Fprintf(&md, "%.0f%s (feels like %.0f%s), %s\n", rec.Temp, unit, rec.FeelsLike, unit, rec.Description)
	fmt.Fprintf(&md, "humidity %d%%, wind %.0f m/s, visibility %.1f km\n", rec.Humidity, rec.WindSpeed, float64(rec.Visibility)/1000)

	if b.describer != nil {
		fmt.Fprintf(&md, "\n%s", b.describer.Describe(ctx, *rec))
	}
	return md.String()
}
