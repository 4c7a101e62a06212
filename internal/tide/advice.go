package tide

import (
	"fmt"
	"strings"

	"github.com/bbernstein/lunartide/internal/models"
)

const (
	surfHeightThreshold  = 1.5
	photoHeightThreshold = 0.3
)

// Split partitions points into high and low tides, preserving order
func Split(points []models.TidePoint) (highs, lows []models.TidePoint) {
	highs = []models.TidePoint{}
	lows = []models.TidePoint{}
	for _, p := range points {
		if p.IsHighTide {
			highs = append(highs, p)
		} else {
			lows = append(lows, p)
		}
	}
	return highs, lows
}

// Advise suggests activities for a day's tides
func Advise(points []models.TidePoint) models.TideAdvice {
	highs, lows := Split(points)
	advice := models.TideAdvice{}

	for _, h := range highs {
		if h.Height > surfHeightThreshold {
			advice.Surfing.Favorable = true
			break
		}
	}
	if advice.Surfing.Favorable {
		advice.Surfing.Note = "High tides above 1.5m today; good conditions for surfing."
	} else {
		advice.Surfing.Note = "Tidal range is small today; not ideal for surfing."
	}

	lowTimes := make([]string, 0, len(lows))
	for _, l := range lows {
		lowTimes = append(lowTimes, l.Time)
	}
	advice.Fishing.Favorable = len(lowTimes) > 0
	if advice.Fishing.Favorable {
		advice.Fishing.Note = fmt.Sprintf("Shore fishing around low tide (%s); boat fishing around high tide.", strings.Join(lowTimes, ", "))
	} else {
		advice.Fishing.Note = "No low tide today; boat fishing around high tide."
	}

	for _, l := range lows {
		if l.Height < photoHeightThreshold {
			advice.Photography.Favorable = true
			break
		}
	}
	if advice.Photography.Favorable {
		advice.Photography.Note = "Very low tide exposes the tidal flats; good for coastal photography."
	} else {
		advice.Photography.Note = "Low tides are moderate today."
	}

	return advice
}
