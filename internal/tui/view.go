package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"horse.fit/translator/internal/orchestrator"
)

func (a App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	inner := width - 2

	parts := []string{a.renderHeader(inner)}
	if a.alert != "" {
		parts = append(parts, a.theme.AlertStyle.Width(inner).Render(a.alert+"  (esc to dismiss)"))
	}
	parts = append(parts,
		a.renderLanguages(),
		a.fieldStyle(FieldSource).Width(inner).Render(a.source.View()),
		a.renderCounter(),
		a.fieldStyle(FieldContext).Width(inner).Render(a.context.View()),
		a.renderOutput(inner),
		a.renderStatus(),
		a.help.View(a.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderHeader(width int) string {
	title := a.theme.TitleStyle.Render(" Translator")
	if a.apiURL == "" {
		return title
	}
	right := a.theme.MutedStyle.Render(a.apiURL + " ")
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (a App) renderLanguages() string {
	if !a.loaded {
		return a.theme.MutedStyle.Render(" Loading languages...")
	}
	target := a.machine.LanguageName(a.machine.TargetLanguage())
	if a.machine.TargetLanguage() == "" {
		target = "(none)"
	}
	return fmt.Sprintf(" From %s  →  To %s",
		a.theme.LanguageStyle.Render(a.machine.LanguageName(a.machine.SourceLanguage())),
		a.theme.LanguageStyle.Render(target),
	)
}

func (a App) renderCounter() string {
	count, limit := a.machine.CharCount(), a.machine.MaxChars()
	text := fmt.Sprintf(" %d / %d", count, limit)
	if count >= limit {
		return a.theme.CounterWarnStyle.Render(text)
	}
	return a.theme.MutedStyle.Render(text)
}

func (a App) renderOutput(width int) string {
	out := a.machine.Output()
	var body string
	switch out.Kind {
	case orchestrator.OutputTranslation:
		body = out.Text
	case orchestrator.OutputNotice:
		body = a.theme.NoticeStyle.Render(out.Text)
	case orchestrator.OutputError:
		body = a.theme.ErrorStyle.Render(out.Text)
	default:
		body = a.theme.MutedStyle.Render("Translation appears here")
	}
	return a.theme.OutputStyle.Width(width).Render(body)
}

func (a App) renderStatus() string {
	var parts []string
	switch a.machine.Phase() {
	case orchestrator.InFlight:
		parts = append(parts, a.spinner.View()+" Translating...")
	case orchestrator.Debouncing:
		if a.machine.InFlight() {
			parts = append(parts, a.spinner.View()+" Translating...")
		} else {
			parts = append(parts, "Waiting for typing to pause")
		}
	default:
		parts = append(parts, "Ready")
	}
	if detected := a.machine.Detected(); detected != "" {
		parts = append(parts, "Detected "+a.machine.LanguageName(detected))
	}
	if a.machine.Copied() {
		parts = append(parts, a.theme.SuccessStyle.Render("Copied!"))
	}
	return a.theme.StatusBarStyle.Render(" " + strings.Join(parts, " · "))
}

func (a App) fieldStyle(id FieldID) lipgloss.Style {
	if a.focused == id {
		return a.theme.FocusedStyle
	}
	return a.theme.FieldStyle
}
