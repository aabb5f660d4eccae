package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/skycast/internal/config"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/internal/service/describe"
	"github.com/sandevgo/skycast/internal/service/session"
	"github.com/sandevgo/skycast/internal/service/ui"
	"github.com/sandevgo/skycast/pkg/log"
)

// transcriptStore serves /history from the persisted transcript, which
// outlives the session's in-memory window, and lets /clear drop both
// together.
type transcriptStore interface {
	GetMessages(ctx context.Context, sessionID string, limit int) ([]core.ChatMessage, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type ReadLine struct {
	cfg       *config.AppConfig
	session   *session.Session
	weather   core.WeatherProvider
	describer *describe.Describer
	store     transcriptStore
	rl        *readline.Instance
}

func NewReadLine(
	cfg *config.AppConfig,
	sess *session.Session,
	weather core.WeatherProvider,
	describer *describe.Describer,
	store transcriptStore,
) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		session:   sess,
		weather:   weather,
		describer: describer,
		store:     store,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started. Type 'exit' to quit, '/help' for commands.")

	r.loadCity(ctx, r.cfg.DefaultCity)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			r.handleCommand(ctx, r.rl.Stdout(), line)
			continue
		}

		reply, err := r.session.Send(ctx, line)
		if err != nil {
			logger.Error().Err(err).Msg("send failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(r.rl.Stdout(), "%s\n", reply.Text)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func (r *ReadLine) handleCommand(ctx context.Context, out io.Writer, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		fmt.Fprint(out, ui.TitleStyle.Render("Commands")+"\n")
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("/city <name>"), ui.DescStyle.Render("switch the active city"))
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("/units <metric|imperial>"), ui.DescStyle.Render("change the unit system"))
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("/now"), ui.DescStyle.Render("show the current conditions"))
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("/history"), ui.DescStyle.Render("show the conversation transcript"))
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("/clear"), ui.DescStyle.Render("forget the conversation"))
		fmt.Fprintf(out, "  %s %s\n", ui.UsageStyle.Render("exit"), ui.DescStyle.Render("quit"))

	case "/city":
		if arg == "" {
			fmt.Fprintln(out, "Usage: /city <name>")
			return
		}
		r.loadCity(ctx, arg)

	case "/units":
		units := core.Units(arg)
		if units != core.UnitsMetric && units != core.UnitsImperial {
			fmt.Fprintln(out, "Usage: /units <metric|imperial>")
			return
		}
		r.session.SetUnits(units)
		// Refetch so the displayed record matches the new system.
		if rec := r.session.Weather(); rec != nil {
			r.loadCity(ctx, rec.City)
		}

	case "/now":
		rec := r.session.Weather()
		if rec == nil {
			fmt.Fprintln(out, "No weather loaded yet. Try /city <name>.")
			return
		}
		r.printWeather(ctx, rec)

	case "/history":
		r.printHistory(ctx)

	case "/clear":
		r.session.Clear()
		if r.store != nil {
			if err := r.store.ClearSession(ctx, r.session.ID()); err != nil {
				log.FromCtx(ctx).Warn().Err(err).Msg("failed to clear transcript")
			}
		}
		fmt.Fprintln(out, "Conversation cleared.")

	default:
		fmt.Fprintf(out, "Unknown command %s. Try /help.\n", cmd)
	}
}

// loadCity fetches the city's weather, swaps it into the session and
// prints the summary. Failures leave the previous record in place.
func (r *ReadLine) loadCity(ctx context.Context, city string) {
	out := r.rl.Stdout()

	rec, err := r.weather.FetchByCity(ctx, city, r.session.Units())
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("city", city).Msg("weather fetch failed")
		fmt.Fprintf(out, "Couldn't fetch weather for %s right now.\n", city)
		return
	}

	r.session.SetWeather(&rec)
	r.printWeather(ctx, &rec)
}

func (r *ReadLine) printWeather(ctx context.Context, rec *core.WeatherRecord) {
	out := r.rl.Stdout()
	unit := "°C"
	if rec.Units == core.UnitsImperial {
		unit = "°F"
	}

	fmt.Fprintf(out, "%s\n", ui.TitleStyle.Render(fmt.Sprintf("%s, %s", rec.City, rec.Country)))
	fmt.Fprintf(out, "  %s (feels like %.0f%s), %s\n",
		ui.ValueStyle.Render(fmt.Sprintf("%.0f%s", rec.Temp, unit)), rec.FeelsLike, unit, rec.Description)
	fmt.Fprintf(out, "  humidity %d%%, wind %.0f m/s, visibility %.1f km\n",
		rec.Humidity, rec.WindSpeed, float64(rec.Visibility)/1000)

	if r.describer != nil {
		fmt.Fprintf(out, "\n%s\n", ui.DescStyle.Render(r.describer.Describe(ctx, *rec)))
	}
}

func (r *ReadLine) printHistory(ctx context.Context) {
	out := r.rl.Stdout()

	var messages []core.ChatMessage
	if r.store != nil {
		stored, err := r.store.GetMessages(ctx, r.session.ID(), r.cfg.HistoryLimit)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to load transcript")
		} else {
			messages = stored
		}
	}
	if messages == nil {
		messages = r.session.History()
	}

	if len(messages) == 0 {
		fmt.Fprintln(out, "No conversation yet.")
		return
	}
	for _, msg := range messages {
		label := "You"
		if msg.Role == core.RoleAssistant {
			label = "SkyCast"
		}
		fmt.Fprintf(out, "%s %s\n", ui.UsageStyle.Render(label+":"), msg.Text)
	}
}
