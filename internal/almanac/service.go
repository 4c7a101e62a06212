package almanac

import (
	"fmt"
	"time"

	"github.com/bbernstein/lunartide/internal/cache"
	"github.com/bbernstein/lunartide/internal/calendar"
	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/lunar"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/bbernstein/lunartide/internal/tide"
	"github.com/rs/zerolog/log"
)

type monthKey struct {
	year  int
	month time.Month
}

type tideKey struct {
	year      int
	month     time.Month
	latitude  float64
	longitude float64
}

// Service composes the moon and tide calculators into calendar and day views.
// Month results are pure functions of their inputs and are memoized.
type Service struct {
	calculator *lunar.Calculator
	predictor  tide.Predictor
	phases     *cache.LRUCache[monthKey, map[int]models.MoonPhase]
	tides      *cache.LRUCache[tideKey, map[int][]models.TidePoint]
}

type Option func(*Service)

// WithCalculator sets the calculator used for rise and set estimates
func WithCalculator(c *lunar.Calculator) Option {
	return func(s *Service) {
		s.calculator = c
	}
}

func WithPredictor(p tide.Predictor) Option {
	return func(s *Service) {
		s.predictor = p
	}
}

// NewService creates the almanac. Caching is skipped when cfg disables it.
func NewService(cfg *config.CacheConfig, opts ...Option) (*Service, error) {
	s := &Service{
		calculator: lunar.NewCalculator(),
		predictor:  tide.SyntheticPredictor{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg == nil || !cfg.EnableAlmanacCache {
		log.Debug().Msg("Almanac cache disabled")
		return s, nil
	}

	phases, err := cache.NewLRUCache[monthKey, map[int]models.MoonPhase](cfg.PhaseLRUSize, cfg.GetAlmanacTTL())
	if err != nil {
		return nil, fmt.Errorf("creating phase cache: %w", err)
	}
	tides, err := cache.NewLRUCache[tideKey, map[int][]models.TidePoint](cfg.TideLRUSize, cfg.GetAlmanacTTL())
	if err != nil {
		return nil, fmt.Errorf("creating tide cache: %w", err)
	}
	s.phases = phases
	s.tides = tides

	return s, nil
}

// MoonPhases returns the phase of every day of the month, keyed by day
func (s *Service) MoonPhases(year int, month time.Month) map[int]models.MoonPhase {
	compute := func() map[int]models.MoonPhase {
		return lunar.GetMoonPhases(month, year)
	}
	if s.phases == nil {
		return compute()
	}

	phases := s.phases.GetOrCompute(monthKey{year: year, month: month}, compute)
	out := make(map[int]models.MoonPhase, len(phases))
	for day, phase := range phases {
		out[day] = phase
	}
	return out
}

// MonthTides returns the predicted tides of every day of the month at loc, keyed by day
func (s *Service) MonthTides(year int, month time.Month, loc models.Location) map[int][]models.TidePoint {
	compute := func() map[int][]models.TidePoint {
		return s.predictor.GetMonthTidePredictions(month, year, loc)
	}
	if s.tides == nil {
		return compute()
	}

	key := tideKey{year: year, month: month, latitude: loc.Latitude, longitude: loc.Longitude}
	tides := s.tides.GetOrCompute(key, compute)
	out := make(map[int][]models.TidePoint, len(tides))
	for day, points := range tides {
		out[day] = append([]models.TidePoint(nil), points...)
	}
	return out
}

// Phase returns the moon phase on the calendar day of date
func (s *Service) Phase(date time.Time) models.MoonPhase {
	year, month, day := date.Date()
	return s.MoonPhases(year, month)[day]
}

// Tides returns the four tide extrema on the calendar day of date at loc
func (s *Service) Tides(date time.Time, loc models.Location) []models.TidePoint {
	year, month, day := date.Date()
	return s.MonthTides(year, month, loc)[day]
}

// RiseSet estimates moonrise and moonset. The minutes are random, so results are never cached.
func (s *Service) RiseSet(date time.Time, loc models.Location) models.RiseSet {
	return s.calculator.GetMoonRiseSet(date, loc.Latitude, loc.Longitude)
}

// Calendar builds the month grid. Tides are omitted when loc is nil.
func (s *Service) Calendar(year int, month time.Month, loc *models.Location) []models.CalendarDay {
	var tides map[int][]models.TidePoint
	if loc != nil {
		tides = s.MonthTides(year, month, *loc)
	}
	return calendar.BuildMonth(year, month, s.MoonPhases(year, month), tides)
}

// Day gathers everything shown for a single day at loc
func (s *Service) Day(date time.Time, loc models.Location) models.DayReport {
	year, month, day := date.Date()
	date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	phase := s.Phase(date)
	tides := s.Tides(date, loc)
	highs, lows := tide.Split(tides)

	return models.DayReport{
		Date:         date.Format(calendar.DateLayout),
		PreviousDate: date.AddDate(0, 0, -1).Format(calendar.DateLayout),
		NextDate:     date.AddDate(0, 0, 1).Format(calendar.DateLayout),
		Location:     loc,
		MoonPhase:    phase,
		RiseSet:      s.RiseSet(date, loc),
		MoonAdvice:   lunar.Advise(phase),
		Tides:        tides,
		HighTides:    highs,
		LowTides:     lows,
		TideAdvice:   tide.Advise(tides),
	}
}

// Warm precomputes the month's phases, and its tides when loc is not nil
func (s *Service) Warm(year int, month time.Month, loc *models.Location) {
	s.MoonPhases(year, month)
	if loc != nil {
		s.MonthTides(year, month, *loc)
	}
}

// CacheStats returns statistics about cache hits and misses
func (s *Service) CacheStats() map[string]uint64 {
	stats := map[string]uint64{}
	if s.phases != nil {
		for k, v := range s.phases.GetCacheStats() {
			stats["phase_"+k] = v
		}
		stats["phase_entries"] = uint64(s.phases.Len())
	}
	if s.tides != nil {
		for k, v := range s.tides.GetCacheStats() {
			stats["tide_"+k] = v
		}
		stats["tide_entries"] = uint64(s.tides.Len())
	}
	return stats
}
