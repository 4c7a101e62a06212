package models

import "fmt"

type PhaseName string

const (
	PhaseNewMoon        PhaseName = "NEW_MOON"
	PhaseWaxingCrescent PhaseName = "WAXING_CRESCENT"
	PhaseFirstQuarter   PhaseName = "FIRST_QUARTER"
	PhaseWaxingGibbous  PhaseName = "WAXING_GIBBOUS"
	PhaseFullMoon       PhaseName = "FULL_MOON"
	PhaseWaningGibbous  PhaseName = "WANING_GIBBOUS"
	PhaseLastQuarter    PhaseName = "LAST_QUARTER"
	PhaseWaningCrescent PhaseName = "WANING_CRESCENT"
)

// MoonPhase describes the moon on a calendar day
type MoonPhase struct {
	Name         PhaseName `json:"name"`
	Label        string    `json:"label"`
	LocalName    string    `json:"localName"`
	Symbol       string    `json:"symbol"`
	Phase        float64   `json:"phase"`        // position in the synodic cycle, 0 = new moon
	Illumination float64   `json:"illumination"` // lit fraction of the disc
}

// RiseSet is an approximate moonrise and moonset clock time
type RiseSet struct {
	Rise string `json:"rise"`
	Set  string `json:"set"`
}

// Validate checks if a MoonPhase's fields are valid
func (m *MoonPhase) Validate() error {
	switch m.Name {
	case PhaseNewMoon, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
		PhaseFullMoon, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent:
		// Valid name
	default:
		return fmt.Errorf("invalid phase name: %s", m.Name)
	}

	if m.Phase < 0 || m.Phase >= 1 {
		return fmt.Errorf("invalid phase: %f", m.Phase)
	}

	if m.Illumination < 0 || m.Illumination > 1 {
		return fmt.Errorf("invalid illumination: %f", m.Illumination)
	}

	return nil
}
