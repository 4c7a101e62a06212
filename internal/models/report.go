package models

type Visibility string

const (
	VisibilityBright   Visibility = "BRIGHT"
	VisibilityModerate Visibility = "MODERATE"
	VisibilityDim      Visibility = "DIM"
)

type TidalInfluence string

const (
	TidalInfluenceSpring       TidalInfluence = "SPRING"
	TidalInfluenceNeap         TidalInfluence = "NEAP"
	TidalInfluenceTransitional TidalInfluence = "TRANSITIONAL"
)

// MoonAdvice summarizes what the moon means for night activities and tides
type MoonAdvice struct {
	Visibility         Visibility     `json:"visibility"`
	VisibilityNote     string         `json:"visibilityNote"`
	TidalInfluence     TidalInfluence `json:"tidalInfluence"`
	TidalInfluenceNote string         `json:"tidalInfluenceNote"`
}

// Suggestion is a single activity recommendation
type Suggestion struct {
	Favorable bool   `json:"favorable"`
	Note      string `json:"note"`
}

// TideAdvice holds per-activity recommendations for a day's tides
type TideAdvice struct {
	Surfing     Suggestion `json:"surfing"`
	Fishing     Suggestion `json:"fishing"`
	Photography Suggestion `json:"photography"`
}

// CalendarDay is one cell of a month grid
type CalendarDay struct {
	Date           string      `json:"date"` // YYYY-MM-DD
	Day            int         `json:"day"`
	MoonPhase      MoonPhase   `json:"moonPhase"`
	IsCurrentMonth bool        `json:"isCurrentMonth"`
	Tides          []TidePoint `json:"tides,omitempty"`
}

// DayReport is everything shown for a single day at a location
type DayReport struct {
	Date         string      `json:"date"`
	PreviousDate string      `json:"previousDate"`
	NextDate     string      `json:"nextDate"`
	Location     Location    `json:"location"`
	MoonPhase    MoonPhase   `json:"moonPhase"`
	RiseSet      RiseSet     `json:"riseSet"`
	MoonAdvice   MoonAdvice  `json:"moonAdvice"`
	Tides        []TidePoint `json:"tides"`
	HighTides    []TidePoint `json:"highTides"`
	LowTides     []TidePoint `json:"lowTides"`
	TideAdvice   TideAdvice  `json:"tideAdvice"`
}
