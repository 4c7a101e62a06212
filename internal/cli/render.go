package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
	"github.com/charmbracelet/lipgloss"
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func phaseTitle(phase models.MoonPhase) string {
	return fmt.Sprintf("%s %s (%s)", phase.Symbol, phase.Label, phase.LocalName)
}

func renderMoon(report models.DayReport) string {
	lines := []string{
		titleStyle.Render(phaseTitle(report.MoonPhase)),
		row("Date", report.Date),
		row("Location", report.Location.Name),
		row("Phase", fmt.Sprintf("%.3f", report.MoonPhase.Phase)),
		row("Illumination", fmt.Sprintf("%.0f%%", report.MoonPhase.Illumination*100)),
		row("Moonrise", report.RiseSet.Rise),
		row("Moonset", report.RiseSet.Set),
		noteStyle.Render(report.MoonAdvice.VisibilityNote),
		noteStyle.Render(report.MoonAdvice.TidalInfluenceNote),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTidePoint(tp models.TidePoint) string {
	if tp.IsHighTide {
		return highStyle.Render(fmt.Sprintf("▲ High  %s  %.2f m", tp.Time, tp.Height))
	}
	return lowStyle.Render(fmt.Sprintf("▼ Low   %s  %.2f m", tp.Time, tp.Height))
}

func renderTides(date string, loc models.Location, tides []models.TidePoint) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Tides %s", date)),
		row("Location", fmt.Sprintf("%s (%.4f, %.4f)", loc.Name, loc.Latitude, loc.Longitude)),
	}
	for _, tp := range tides {
		lines = append(lines, renderTidePoint(tp))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSuggestion(activity string, s models.Suggestion) string {
	mark := "✗"
	if s.Favorable {
		mark = "✓"
	}
	return row(activity, fmt.Sprintf("%s %s", mark, s.Note))
}

func renderDay(report models.DayReport) string {
	tideLines := make([]string, 0, len(report.Tides))
	for _, tp := range report.Tides {
		tideLines = append(tideLines, renderTidePoint(tp))
	}

	sections := []string{
		renderMoon(report),
		boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, tideLines...)),
		renderSuggestion("Surfing", report.TideAdvice.Surfing),
		renderSuggestion("Fishing", report.TideAdvice.Fishing),
		renderSuggestion("Photography", report.TideAdvice.Photography),
		noteStyle.Render(fmt.Sprintf("< %s    %s >", report.PreviousDate, report.NextDate)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCalendar lays the grid out in weeks starting on Sunday
func renderCalendar(year int, month time.Month, days []models.CalendarDay) string {
	header := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		header = append(header, weekdayStyle.Render(d.String()[:2]))
	}

	weeks := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", month, year)),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}
	for start := 0; start < len(days); start += 7 {
		end := start + 7
		if end > len(days) {
			end = len(days)
		}
		cells := make([]string, 0, 7)
		for _, day := range days[start:end] {
			style := cellStyle
			if !day.IsCurrentMonth {
				style = outsideStyle
			}
			cells = append(cells, style.Render(fmt.Sprintf("%2d\n%s", day.Day, day.MoonPhase.Symbol)))
		}
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, weeks...)
}

func renderLocation(loc models.Location) string {
	return fmt.Sprintf("%s (%.4f, %.4f)", loc.Name, loc.Latitude, loc.Longitude)
}

func renderLocations(current models.Location, saved, presets []models.Location) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Locations"))
	b.WriteString("\n")
	b.WriteString(row("Current", renderLocation(current)))

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Saved"))
	if len(saved) == 0 {
		b.WriteString(noteStyle.Render("none"))
	}
	for _, loc := range saved {
		marker := " "
		if loc.Name == current.Name {
			marker = currentMarker
		}
		b.WriteString(fmt.Sprintf("\n  %s %s", marker, renderLocation(loc)))
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Presets"))
	for _, loc := range presets {
		b.WriteString(fmt.Sprintf("\n    %s", renderLocation(loc)))
	}
	return b.String()
}
