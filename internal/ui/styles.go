package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tdlapp/tdl-go/internal/task"
)

// styles holds the lipgloss styles for one theme.
type styles struct {
	Title     lipgloss.Style
	Nav       lipgloss.Style
	NavActive lipgloss.Style
	Hello     lipgloss.Style

	Selected lipgloss.Style
	Grabbed  lipgloss.Style
	Done     lipgloss.Style
	Pending  lipgloss.Style
	Muted    lipgloss.Style

	Error  lipgloss.Style
	Notice lipgloss.Style
	Footer lipgloss.Style

	Column     lipgloss.Style
	ChipActive lipgloss.Style
	Chip       lipgloss.Style

	CalWeekday lipgloss.Style
	CalCell    lipgloss.Style
	CalToday   lipgloss.Style

	badges map[task.Priority]lipgloss.Style
}

// Badge returns the style for a priority badge.
func (s styles) Badge(p task.Priority) lipgloss.Style {
	if st, ok := s.badges[p]; ok {
		return st
	}
	return s.Muted
}

func newStyles(theme string) styles {
	text := lipgloss.Color("252")
	muted := lipgloss.Color("243")
	accent := lipgloss.Color("39")
	if theme == "light" {
		text = lipgloss.Color("235")
		muted = lipgloss.Color("245")
		accent = lipgloss.Color("27")
	}

	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Nav:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		NavActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1).Underline(true),
		Hello:     lipgloss.NewStyle().Foreground(text).Italic(true),

		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Grabbed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		Muted:    lipgloss.NewStyle().Foreground(muted),

		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		Footer: lipgloss.NewStyle().Faint(true),

		Column:     lipgloss.NewStyle().Padding(0, 2, 0, 0),
		ChipActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		Chip:       lipgloss.NewStyle().Foreground(muted),

		CalWeekday: lipgloss.NewStyle().Bold(true).Width(14).Foreground(muted),
		CalCell:    lipgloss.NewStyle().Width(14).Foreground(text),
		CalToday:   lipgloss.NewStyle().Width(14).Bold(true).Foreground(accent),

		badges: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
		},
	}
}
