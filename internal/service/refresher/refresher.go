// Package refresher keeps the active weather record fresh by refetching
// it on a fixed interval.
package refresher

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sandevgo/skycast/internal/core"
	"github.com/sandevgo/skycast/pkg/log"
)

const fetchTimeout = 30 * time.Second

// Target tells the refresher what to fetch and where to deliver it.
// City is read per tick so location switches take effect on the next
// refresh; Apply must swap the record wholesale.
type Target struct {
	City  func() string
	Units core.Units
	Apply func(*core.WeatherRecord)
}

// Refresher is a background service that periodically refetches the
// current city's weather and hands the fresh record to its target.
type Refresher struct {
	scheduler *gocron.Scheduler
	weather   core.WeatherProvider
	target    Target
	interval  time.Duration
}

func New(weather core.WeatherProvider, target Target, interval time.Duration) *Refresher {
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		weather:   weather,
		target:    target,
		interval:  interval,
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	minutes := int(r.interval.Minutes())
	if minutes <= 0 {
		minutes = 10
	}

	_, err := r.scheduler.Every(minutes).Minutes().Do(func() {
		r.refresh(ctx)
	})
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()
	log.FromCtx(ctx).Info().Int("minutes", minutes).Msg("weather refresher started")
	return nil
}

func (r *Refresher) Shutdown(ctx context.Context) error {
	r.scheduler.Stop()
	log.FromCtx(ctx).Info().Msg("weather refresher stopped")
	return nil
}

// refresh fetches once. A failed fetch keeps the previous record in
// place rather than clearing it.
func (r *Refresher) refresh(ctx context.Context) {
	city := r.target.City()
	if city == "" {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	rec, err := r.weather.FetchByCity(fetchCtx, city, r.target.Units)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("city", city).Msg("weather refresh failed")
		return
	}

	r.target.Apply(&rec)
	log.FromCtx(ctx).Debug().Str("city", city).Msg("weather record refreshed")
}
