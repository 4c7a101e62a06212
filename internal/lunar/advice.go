package lunar

import "github.com/bbernstein/lunartide/internal/models"

// Advise describes visibility and the expected tidal range for a moon phase
func Advise(phase models.MoonPhase) models.MoonAdvice {
	advice := models.MoonAdvice{}

	switch {
	case phase.Illumination > 0.7:
		advice.Visibility = models.VisibilityBright
		advice.VisibilityNote = "The moon is bright; good for moonlight photography and night activities."
	case phase.Illumination > 0.3:
		advice.Visibility = models.VisibilityModerate
		advice.VisibilityNote = "The moon is moderately bright; some night activities are practical."
	default:
		advice.Visibility = models.VisibilityDim
		advice.VisibilityNote = "The moon is dim; good for stargazing but not for moonlit activities."
	}

	switch phase.Name {
	case models.PhaseNewMoon, models.PhaseFullMoon:
		advice.TidalInfluence = models.TidalInfluenceSpring
		advice.TidalInfluenceNote = "Around new and full moon the tidal range is at its largest (spring tides)."
	case models.PhaseFirstQuarter, models.PhaseLastQuarter:
		advice.TidalInfluence = models.TidalInfluenceNeap
		advice.TidalInfluenceNote = "Around the quarter moons the tidal range is at its smallest (neap tides)."
	default:
		advice.TidalInfluence = models.TidalInfluenceTransitional
		advice.TidalInfluenceNote = "Between spring and neap tides the range changes gradually."
	}

	return advice
}
