// Package scheduler periodically precomputes the almanac caches
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// DefaultSchedule runs shortly after midnight UTC
const DefaultSchedule = "5 0 * * *"

// Almanac is the part of the almanac service the warmer drives
type Almanac interface {
	Warm(year int, month time.Month, loc *models.Location)
}

// LocationSource returns the location whose tides are warmed
type LocationSource interface {
	Current(ctx context.Context) (models.Location, error)
}

type Warmer struct {
	almanac   Almanac
	locations LocationSource
	now       func() time.Time
	scheduler *gocron.Scheduler
}

type Option func(*Warmer)

func WithClock(now func() time.Time) Option {
	return func(w *Warmer) {
		w.now = now
	}
}

func NewWarmer(alm Almanac, locations LocationSource, opts ...Option) *Warmer {
	w := &Warmer{
		almanac:   alm,
		locations: locations,
		now:       time.Now,
		scheduler: gocron.NewScheduler(time.UTC),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run warms this month and next month. Tides are warmed for the current
// location; when it cannot be read only the phases are warmed.
func (w *Warmer) Run(ctx context.Context) {
	now := w.now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	var loc *models.Location
	if w.locations != nil {
		current, err := w.locations.Current(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read current location, warming phases only")
		} else {
			loc = &current
		}
	}

	start := time.Now()
	for _, month := range []time.Time{thisMonth, nextMonth} {
		w.almanac.Warm(month.Year(), month.Month(), loc)
	}

	event := log.Info().
		Str("from", thisMonth.Format("2006-01")).
		Str("to", nextMonth.Format("2006-01")).
		Dur("duration", time.Since(start))
	if loc != nil {
		event = event.Str("location", loc.Name)
	}
	event.Msg("Warmed almanac caches")
}

// Start schedules Run on the cron expression and returns immediately
func (w *Warmer) Start(ctx context.Context, cronExpression string) error {
	if cronExpression == "" {
		cronExpression = DefaultSchedule
	}

	_, err := w.scheduler.Cron(cronExpression).Do(func() {
		log.Debug().Msg("Starting cache warm job")
		w.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling cache warm job %q: %w", cronExpression, err)
	}

	w.scheduler.StartAsync()
	log.Info().Str("schedule", cronExpression).Msg("Cache warmer started")
	return nil
}

// NextRun reports when the warm job fires next
func (w *Warmer) NextRun() time.Time {
	_, next := w.scheduler.NextRun()
	return next
}

func (w *Warmer) Stop() {
	w.scheduler.Stop()
}
