package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Width(14)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Italic(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boxStyle      = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	weekdayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Width(cellWidth).Align(lipgloss.Center)
	cellStyle     = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	outsideStyle  = cellStyle.Foreground(lipgloss.Color("240"))
	currentMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).Render("*")
)

const cellWidth = 6
