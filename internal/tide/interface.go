package tide

import (
	"time"

	"github.com/bbernstein/lunartide/internal/models"
)

// Predictor is the tide source consumed by the almanac
type Predictor interface {
	PredictTides(date time.Time, loc models.Location) []models.TidePoint
	GetMonthTidePredictions(month time.Month, year int, loc models.Location) map[int][]models.TidePoint
}

// SyntheticPredictor serves the seeded sine-hash predictions
type SyntheticPredictor struct{}

func (SyntheticPredictor) PredictTides(date time.Time, loc models.Location) []models.TidePoint {
	return PredictTides(date, loc)
}

func (SyntheticPredictor) GetMonthTidePredictions(month time.Month, year int, loc models.Location) map[int][]models.TidePoint {
	return GetMonthTidePredictions(month, year, loc)
}
