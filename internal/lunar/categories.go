package lunar

import "github.com/bbernstein/lunartide/internal/models"

// Category is one of the eight named phases with its display attributes
type Category struct {
	Name       models.PhaseName
	Label      string
	LocalName  string
	Symbol     string
	upperBound float64
}

// Upper bounds are exclusive. Phases at or past the last bound wrap to a new moon.
var categories = []Category{
	{models.PhaseNewMoon, "New Moon", "新月", "🌑", 0.025},
	{models.PhaseWaxingCrescent, "Waxing Crescent", "眉月", "🌒", 0.225},
	{models.PhaseFirstQuarter, "First Quarter", "上弦月", "🌓", 0.275},
	{models.PhaseWaxingGibbous, "Waxing Gibbous", "盈凸月", "🌔", 0.475},
	{models.PhaseFullMoon, "Full Moon", "满月", "🌕", 0.525},
	{models.PhaseWaningGibbous, "Waning Gibbous", "亏凸月", "🌖", 0.725},
	{models.PhaseLastQuarter, "Last Quarter", "下弦月", "🌗", 0.775},
	{models.PhaseWaningCrescent, "Waning Crescent", "残月", "🌘", 0.975},
	{models.PhaseNewMoon, "New Moon", "新月", "🌑", 1},
}

// CategoryFor maps a phase in [0,1) to its named category.
// Values no band matches, such as NaN, are treated as a new moon.
func CategoryFor(phase float64) Category {
	if phase >= 0 {
		for _, c := range categories {
			if phase < c.upperBound {
				return c
			}
		}
	}
	return categories[0]
}

// Categories lists the eight distinct phases in cycle order
func Categories() []Category {
	return append([]Category(nil), categories[:len(categories)-1]...)
}
