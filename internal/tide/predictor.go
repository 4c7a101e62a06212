package tide

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
)

// PointsPerDay is the number of extrema predicted for every day: two lows and two highs
const PointsPerDay = 4

// seededRandom is a sine-hash generator. Every draw advances the counter so
// repeated draws within one prediction diverge.
type seededRandom struct {
	seed  float64
	calls int
}

func newSeededRandom(date time.Time, loc models.Location) *seededRandom {
	return &seededRandom{seed: loc.Latitude + loc.Longitude + float64(dateKey(date))}
}

// between returns a value in [min,max)
func (r *seededRandom) between(min, max float64) float64 {
	x := math.Sin(r.seed+float64(r.calls)) * 10000
	r.calls++
	return min + (x-math.Floor(x))*(max-min)
}

// extremum draws hour, minute and height in that order
func (r *seededRandom) extremum(minHour, maxHour, minHeight, maxHeight float64, high bool) (int, models.TidePoint) {
	hour := int(math.Floor(r.between(minHour, maxHour)))
	minute := int(math.Floor(r.between(0, 60)))
	height := r.between(minHeight, maxHeight)

	return hour, models.TidePoint{
		Time:       fmt.Sprintf("%02d:%02d", hour%24, minute),
		Height:     height,
		IsHighTide: high,
	}
}

// PredictTides synthesizes the day's four tide extrema for a location.
// The result depends only on the calendar date of date and the coordinates.
func PredictTides(date time.Time, loc models.Location) []models.TidePoint {
	r := newSeededRandom(date, loc)
	points := make([]models.TidePoint, 0, PointsPerDay)

	// early morning low, then roughly six hours between each extremum
	firstLowHour, firstLow := r.extremum(2, 6, 0.1, 0.5, false)
	firstHighHour, firstHigh := r.extremum(float64(firstLowHour+5), float64(firstLowHour+7), 1.2, 2.2, true)
	secondLowHour, secondLow := r.extremum(float64(firstHighHour+5), float64(firstHighHour+7), 0.1, 0.5, false)
	_, secondHigh := r.extremum(float64(secondLowHour+5), float64(secondLowHour+7), 1.0, 2.0, true)

	points = append(points, firstLow, firstHigh, secondLow, secondHigh)
	sortByClock(points)
	return points
}

// GetMonthTidePredictions predicts tides for every day of the month, keyed by day of month
func GetMonthTidePredictions(month time.Month, year int, loc models.Location) map[int][]models.TidePoint {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	result := make(map[int][]models.TidePoint, days)
	for day := 1; day <= days; day++ {
		result[day] = PredictTides(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), loc)
	}
	return result
}

func sortByClock(points []models.TidePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ClockValue() < points[j].ClockValue()
	})
}

// dateKey encodes the calendar date as YYYYMMDD
func dateKey(date time.Time) int {
	year, month, day := date.Date()
	return year*10000 + int(month)*100 + day
}
