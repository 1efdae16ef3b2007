package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors and pre-built styles of the translator UI.
type Theme struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color

	TitleStyle       lipgloss.Style
	LanguageStyle    lipgloss.Style
	FieldStyle       lipgloss.Style
	FocusedStyle     lipgloss.Style
	OutputStyle      lipgloss.Style
	NoticeStyle      lipgloss.Style
	ErrorStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	MutedStyle       lipgloss.Style
	AlertStyle       lipgloss.Style
	StatusBarStyle   lipgloss.Style
	CounterWarnStyle lipgloss.Style
}

func DarkTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Accent:  lipgloss.Color("#06B6D4"),
		Danger:  lipgloss.Color("#EF4444"),
		Success: lipgloss.Color("#10B981"),
		Muted:   lipgloss.Color("#6B7280"),
		Text:    lipgloss.Color("#E5E7EB"),
		Border:  lipgloss.Color("#374151"),
	}

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.LanguageStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.FieldStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.FocusedStyle = t.FieldStyle.
		BorderForeground(t.Primary)

	t.OutputStyle = t.FieldStyle

	t.NoticeStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Danger).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.AlertStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Danger).
		Bold(true).
		Padding(0, 1)

	t.StatusBarStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.CounterWarnStyle = lipgloss.NewStyle().
		Foreground(t.Danger)

	return t
}
