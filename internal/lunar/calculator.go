package lunar

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
)

const (
	// SynodicPeriod is the mean length of a lunar cycle in days
	SynodicPeriod = 29.53
	// ReferenceNewMoon is the Julian date of the new moon on 2000-01-06 18:14 UTC
	ReferenceNewMoon = 2451549.5
)

// RandomSource supplies the minute jitter for rise and set estimates.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

type Calculator struct {
	random RandomSource
}

type Option func(*Calculator)

// WithRandomSource replaces the default process-wide random generator
func WithRandomSource(src RandomSource) Option {
	return func(c *Calculator) {
		c.random = src
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{random: globalSource{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// CalculateMoonPhase approximates the moon phase on the calendar day of date
func CalculateMoonPhase(date time.Time) models.MoonPhase {
	year, month, day := date.Date()
	phase := phaseForDays(float64(JulianDayNumber(year, int(month), day)) - ReferenceNewMoon)
	return newMoonPhase(phase)
}

// GetMoonPhases returns the moon phase for every day of the month, keyed by day of month
func GetMoonPhases(month time.Month, year int) map[int]models.MoonPhase {
	days := daysIn(year, month)
	result := make(map[int]models.MoonPhase, days)
	for day := 1; day <= days; day++ {
		result[day] = CalculateMoonPhase(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	}
	return result
}

// GetMoonRiseSet estimates moonrise and moonset using the default random source
func GetMoonRiseSet(date time.Time, latitude, longitude float64) models.RiseSet {
	return defaultCalculator.GetMoonRiseSet(date, latitude, longitude)
}

// GetMoonRiseSet derives rise and set hours from the phase, offset by 18h and 6h.
// latitude and longitude are accepted but have no effect on the estimate yet.
func (c *Calculator) GetMoonRiseSet(date time.Time, latitude, longitude float64) models.RiseSet {
	phase := CalculateMoonPhase(date).Phase

	riseHour := int(math.Floor(math.Mod(phase*24+18, 24)))
	setHour := int(math.Floor(math.Mod(phase*24+6, 24)))

	return models.RiseSet{
		Rise: formatClock(riseHour, c.random.IntN(60)),
		Set:  formatClock(setHour, c.random.IntN(60)),
	}
}

// phaseForDays maps days since the reference new moon onto [0,1)
func phaseForDays(days float64) float64 {
	phase := math.Mod(days, SynodicPeriod) / SynodicPeriod
	if phase < 0 {
		phase += 1
	}
	// a tiny negative remainder rounds up to exactly 1 after the shift
	if phase >= 1 {
		phase = 0
	}
	return phase
}

func newMoonPhase(phase float64) models.MoonPhase {
	category := CategoryFor(phase)
	return models.MoonPhase{
		Name:         category.Name,
		Label:        category.Label,
		LocalName:    category.LocalName,
		Symbol:       category.Symbol,
		Phase:        phase,
		Illumination: illuminationFor(phase),
	}
}

// illuminationFor is |cos(2π·phase)|. It peaks at both new and full moon and is 0 at the quarters.
func illuminationFor(phase float64) float64 {
	return math.Abs(math.Cos(phase * 2 * math.Pi))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
