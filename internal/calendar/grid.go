package calendar

import (
	"time"

	"github.com/bbernstein/lunartide/internal/lunar"
	"github.com/bbernstein/lunartide/internal/models"
)

const (
	// DateLayout is the format of CalendarDay.Date
	DateLayout = "2006-01-02"

	shortGrid = 35
	longGrid  = 42
)

// DaysInMonth returns the number of days in month, accounting for leap years
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonth lays out a Sunday-first month grid. Days before the first of the
// month and after the last are borrowed from the neighbouring months so the
// grid fills five weeks, or six when the month needs it.
//
// phases and tides are keyed by day of month. Days missing from phases are
// calculated on demand. A nil tides map yields empty tide lists for the month's days.
func BuildMonth(year int, month time.Month, phases map[int]models.MoonPhase, tides map[int][]models.TidePoint) []models.CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday())
	days := DaysInMonth(year, month)

	grid := make([]models.CalendarDay, 0, longGrid)

	for i := leading; i > 0; i-- {
		grid = append(grid, outOfMonthDay(first.AddDate(0, 0, -i)))
	}

	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		phase, ok := phases[day]
		if !ok {
			phase = lunar.CalculateMoonPhase(date)
		}
		dayTides := tides[day]
		if dayTides == nil {
			dayTides = []models.TidePoint{}
		}
		grid = append(grid, models.CalendarDay{
			Date:           date.Format(DateLayout),
			Day:            day,
			MoonPhase:      phase,
			IsCurrentMonth: true,
			Tides:          dayTides,
		})
	}

	trailing := shortGrid - len(grid)
	if len(grid) > shortGrid {
		trailing = longGrid - len(grid)
	}
	next := first.AddDate(0, 1, 0)
	for i := 0; i < trailing; i++ {
		grid = append(grid, outOfMonthDay(next.AddDate(0, 0, i)))
	}

	return grid
}

func outOfMonthDay(date time.Time) models.CalendarDay {
	return models.CalendarDay{
		Date:      date.Format(DateLayout),
		Day:       date.Day(),
		MoonPhase: lunar.CalculateMoonPhase(date),
	}
}
