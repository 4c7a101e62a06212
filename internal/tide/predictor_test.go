package tide

import (
	"math"
	"testing"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	beijing = models.Location{Name: "北京", Latitude: 39.9042, Longitude: 116.4074}
	qingdao = models.Location{Name: "青岛", Latitude: 36.0671, Longitude: 120.3826}
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSeededRandom_Draws(t *testing.T) {
	t.Parallel()

	r := &seededRandom{seed: 42}
	for k := 0; k < 5; k++ {
		x := math.Sin(42+float64(k)) * 10000
		want := 10 + (x-math.Floor(x))*5
		assert.InDelta(t, want, r.between(10, 15), 1e-9, "draw %d", k)
	}
	assert.Equal(t, 5, r.calls)
}

func TestSeededRandom_StaysInRange(t *testing.T) {
	t.Parallel()

	r := &seededRandom{seed: -123.456}
	for i := 0; i < 1000; i++ {
		v := r.between(0.1, 0.5)
		require.GreaterOrEqual(t, v, 0.1)
		require.Less(t, v, 0.5)
	}
}

func TestDateKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 20240315, dateKey(date(2024, time.March, 15)))
	assert.Equal(t, 19991231, dateKey(date(1999, time.December, 31)))

	// calendar components of the value's own zone, not UTC
	late := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.FixedZone("CST", 8*3600))
	assert.Equal(t, 20240315, dateKey(late))
}

func TestPredictTides_Shape(t *testing.T) {
	t.Parallel()

	locations := []models.Location{
		beijing,
		qingdao,
		{Name: "Origin", Latitude: 0, Longitude: 0},
		{Name: "Southern", Latitude: -33.8688, Longitude: -151.2093},
	}

	start := date(2023, time.January, 1)
	for _, loc := range locations {
		for i := 0; i < 400; i++ {
			d := start.AddDate(0, 0, i)
			points := PredictTides(d, loc)

			require.Len(t, points, PointsPerDay)

			highs, lows := Split(points)
			require.Len(t, highs, 2)
			require.Len(t, lows, 2)

			for j, p := range points {
				require.NoError(t, p.Validate(), "%s %s point %d", loc.Name, d.Format("2006-01-02"), j)
				if j > 0 {
					require.LessOrEqual(t, points[j-1].ClockValue(), p.ClockValue())
				}
			}
			for _, p := range lows {
				require.GreaterOrEqual(t, p.Height, 0.1)
				require.Less(t, p.Height, 0.5)
			}
			for _, p := range highs {
				require.GreaterOrEqual(t, p.Height, 1.0)
				require.Less(t, p.Height, 2.2)
			}

			// the early morning low is always first
			assert.False(t, points[0].IsHighTide)
			assert.GreaterOrEqual(t, points[0].ClockValue(), 200)
			assert.Less(t, points[0].ClockValue(), 600)
		}
	}
}

func TestPredictTides_Deterministic(t *testing.T) {
	t.Parallel()

	d := date(2024, time.July, 4)
	first := PredictTides(d, beijing)
	second := PredictTides(d, beijing)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("PredictTides not deterministic (-first +second):\n%s", diff)
	}

	noon := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, first, PredictTides(noon, beijing))
}

func TestPredictTides_NameDoesNotAffectResult(t *testing.T) {
	t.Parallel()

	renamed := beijing
	renamed.Name = "Home"
	d := date(2024, time.July, 4)

	assert.Equal(t, PredictTides(d, beijing), PredictTides(d, renamed))
}

func TestPredictTides_VariesByInput(t *testing.T) {
	t.Parallel()

	d := date(2024, time.July, 4)
	assert.NotEqual(t, PredictTides(d, beijing), PredictTides(d, qingdao))
	assert.NotEqual(t, PredictTides(d, beijing), PredictTides(d.AddDate(0, 0, 1), beijing))
}

func TestPredictTides_HeightsFollowDrawOrder(t *testing.T) {
	t.Parallel()

	d := date(2024, time.July, 4)
	r := newSeededRandom(d, beijing)

	// low: hour, minute, height
	lowHour := int(math.Floor(r.between(2, 6)))
	lowMinute := int(math.Floor(r.between(0, 60)))
	lowHeight := r.between(0.1, 0.5)

	points := PredictTides(d, beijing)
	assert.Equal(t, lowHour*100+lowMinute, points[0].ClockValue())
	assert.InDelta(t, lowHeight, points[0].Height, 1e-12)
}

func TestPredictTides_NaNCoordinates(t *testing.T) {
	t.Parallel()

	points := PredictTides(date(2024, time.July, 4), models.Location{Latitude: math.NaN()})
	assert.Len(t, points, PointsPerDay)
}

func TestGetMonthTidePredictions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month    time.Month
		year     int
		wantDays int
	}{
		{time.January, 2024, 31},
		{time.February, 2024, 29},
		{time.February, 2025, 28},
		{time.November, 2025, 30},
	}

	for _, tt := range tests {
		month := GetMonthTidePredictions(tt.month, tt.year, qingdao)
		require.Len(t, month, tt.wantDays)
		for day := 1; day <= tt.wantDays; day++ {
			assert.Equal(t, PredictTides(date(tt.year, tt.month, day), qingdao), month[day])
		}
	}
}

func TestSyntheticPredictor(t *testing.T) {
	t.Parallel()

	var p Predictor = SyntheticPredictor{}
	d := date(2024, time.May, 1)

	assert.Equal(t, PredictTides(d, beijing), p.PredictTides(d, beijing))
	assert.Len(t, p.GetMonthTidePredictions(time.May, 2024, beijing), 31)
}
