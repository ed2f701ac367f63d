package dashboard

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	primary     = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7280")
	border      = lipgloss.Color("#2a3850")
	destructive = lipgloss.Color("#e53935")
	info        = lipgloss.Color("#2196F3")
)

// styles holds the look of every dashboard element.
type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Drawer  lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Help    lipgloss.Style
	Warning lipgloss.Style
	Table   table.Styles
}

func defaultStyles() styles {
	t := table.DefaultStyles()
	t.Header = t.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(border).
		BorderBottom(true).
		Bold(true)
	t.Selected = t.Selected.
		Foreground(lipgloss.Color("#101F38")).
		Background(primary).
		Bold(false)

	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Status:  lipgloss.NewStyle().Foreground(info),
		Error:   lipgloss.NewStyle().Foreground(destructive),
		Drawer:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(1, 2),
		Label:   lipgloss.NewStyle().Bold(true),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Help:    lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(destructive).Padding(0, 1),
		Table:   t,
	}
}
