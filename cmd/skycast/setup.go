package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/skycast/internal/config"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/providers/llm"
	"github.com/sandevgo/skycast/internal/providers/weather"
	"github.com/sandevgo/skycast/internal/service/chatbot"
	"github.com/sandevgo/skycast/internal/service/describe"
	"github.com/sandevgo/skycast/internal/service/refresher"
	"github.com/sandevgo/skycast/internal/service/session"
	"github.com/sandevgo/skycast/internal/storage/sqlite"
	"github.com/sandevgo/skycast/internal/transport/cli"
	"github.com/sandevgo/skycast/internal/transport/telegram"
	"github.com/sandevgo/skycast/pkg/log"
	"github.com/sandevgo/skycast/pkg/srv"
)

// deps is the assembled application core shared by the commands.
type deps struct {
	app       *config.AppConfig
	aiCfg     *config.OpenAIConfig
	db        *sql.DB
	history   *sqlite.History
	weather   *weather.Client
	ai        core.AIProvider
	describer *describe.Describer
	units     core.Units
	orch      *chatbot.Orchestrator
}

func initDeps(ctx context.Context) (*deps, error) {
	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	owCfg := config.NewOpenWeatherConfig(ctx)
	aiCfg := config.NewOpenAIConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	// 3. Providers
	weatherClient := weather.NewClient(nil, owCfg.BaseURL, owCfg.APIKey)

	var ai core.AIProvider
	if aiCfg.HasKey() {
		ai = llm.NewOpenAI(aiCfg.BaseURL, aiCfg.APIKey)
	} else {
		log.FromCtx(ctx).Info().Msg("no OpenAI key configured, chat runs on the rule-based responder")
	}

	sampling := core.SamplingConfig{
		Model:       aiCfg.Model,
		MaxTokens:   aiCfg.MaxTokens,
		Temperature: aiCfg.Temperature,
	}

	units := core.Units(appCfg.Units)

	return &deps{
		app:       appCfg,
		aiCfg:     aiCfg,
		db:        db,
		history:   sqlite.NewHistory(db),
		weather:   weatherClient,
		ai:        ai,
		describer: describe.New(ai, sampling),
		units:     units,
		orch:      chatbot.NewOrchestrator(ai, weatherClient, units, nil),
	}, nil
}

// newSession builds a transcript-backed conversation.
func (d *deps) newSession() *session.Session {
	return session.New(d.orch, session.Config{
		Model:        d.aiCfg.Model,
		MaxTokens:    d.aiCfg.MaxTokens,
		Temperature:  d.aiCfg.Temperature,
		SystemPrompt: chatbot.DefaultSystemPrompt,
	},
		session.WithUnits(d.units),
		session.WithSink(d.history),
	)
}

// newRefresher keeps the session's record current, following whatever
// city the session is tracking at each tick.
func (d *deps) newRefresher(sess *session.Session) *refresher.Refresher {
	return refresher.New(d.weather, refresher.Target{
		City: func() string {
			if rec := sess.Weather(); rec != nil {
				return rec.City
			}
			return d.app.DefaultCity
		},
		Units: d.units,
		Apply: sess.SetWeather,
	}, d.app.RefreshInterval)
}

// NewServices assembles the long-running services for `skycast start`.
func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	d, err := initDeps(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	services := []srv.Service{srv.NewCleanup(d.db.Close)}

	// Telegram Bot
	if d.app.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, d.app, d.weather, d.describer, d.newSession, d.history)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	if d.app.EnableCLI {
		sess := d.newSession()
		rl, err := cli.NewReadLine(d.app, sess, d.weather, d.describer, d.history)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize cli transport")
		}
		services = append(services, rl, d.newRefresher(sess))
	}

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
