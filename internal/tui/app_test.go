package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"horse.fit/translator/internal/client"
	"horse.fit/translator/internal/orchestrator"
	"horse.fit/translator/internal/translation"
)

type stubBackend struct {
	requests []translation.Request
	result   *translation.Result
	err      error
}

func (b *stubBackend) Translate(_ context.Context, req translation.Request) (*translation.Result, error) {
	b.requests = append(b.requests, req)
	return b.result, b.err
}

type downSource struct{}

func (downSource) Languages(context.Context) ([]translation.Language, error) {
	return nil, &client.UnreachableError{URL: "http://127.0.0.1:1", Err: errors.New("connection refused")}
}

func newTestApp(t *testing.T, backend *stubBackend, copied *[]string) App {
	t.Helper()
	app := NewApp(context.Background(), Options{
		Backend:   backend,
		Languages: client.DefaultStaticSource(),
		Machine:   orchestrator.Config{Delay: time.Millisecond},
		Clipboard: func(text string) error {
			*copied = append(*copied, text)
			return nil
		},
		Logger: zerolog.Nop(),
	})
	app.width, app.height = 100, 40
	app.relayout()

	m, _ := app.Update(app.loadLanguagesCmd()())
	return m.(App)
}

func typeRunes(t *testing.T, app App, text string) App {
	t.Helper()
	for _, r := range text {
		m, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		app = m.(App)
	}
	return app
}

func TestAppUpdate_CatalogFallbackAlert(t *testing.T) {
	t.Parallel()

	app := NewApp(context.Background(), Options{
		Languages: downSource{},
		Logger:    zerolog.Nop(),
	})
	m, _ := app.Update(app.loadLanguagesCmd()())
	updated := m.(App)

	if !strings.Contains(updated.alert, "server unreachable") {
		t.Fatalf("unexpected alert: %q", updated.alert)
	}
	if got := updated.machine.TargetLanguage(); got != "es" {
		t.Fatalf("fallback catalog not installed, target=%q", got)
	}

	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated = m.(App)
	if updated.alert != "" {
		t.Fatalf("expected alert dismissed, got %q", updated.alert)
	}
}

func TestAppUpdate_TypeTranslateAndSwap(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{result: &translation.Result{TranslatedText: "hola", DetectedLanguage: "en"}}
	var copied []string
	app := typeRunes(t, newTestApp(t, backend, &copied), "hello")

	if got := app.machine.Source(); got != "hello" {
		t.Fatalf("unexpected machine source: %q", got)
	}
	if got := app.machine.Phase(); got != orchestrator.Debouncing {
		t.Fatalf("unexpected phase: %v", got)
	}

	m, _ := app.Update(eventMsg{event: orchestrator.DebounceFired{Timer: app.machine.PendingTimer()}})
	app = m.(App)
	if !app.machine.InFlight() {
		t.Fatal("expected a call in flight")
	}
	if !strings.Contains(app.View(), "Translating") {
		t.Fatal("expected in-progress indicator")
	}

	done := app.translateCmd(translation.Request{Text: "hello", SourceLanguage: "auto", TargetLanguage: "es"})()
	m, _ = app.Update(done)
	app = m.(App)
	if got := app.machine.Output().Text; got != "hola" {
		t.Fatalf("unexpected output: %q", got)
	}
	view := app.View()
	if !strings.Contains(view, "hola") || !strings.Contains(view, "Detected English") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	app = m.(App)
	if got := app.source.Value(); got != "hola" {
		t.Fatalf("swap did not update the source field: %q", got)
	}
	if app.machine.SourceLanguage() != "es" || app.machine.TargetLanguage() != "en" {
		t.Fatalf("unexpected languages after swap: %s->%s", app.machine.SourceLanguage(), app.machine.TargetLanguage())
	}
}

func TestAppUpdate_ErrorRendersInline(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{err: &client.APIError{Status: 504, Kind: "provider_unavailable", Detail: "timed out"}}
	var copied []string
	app := typeRunes(t, newTestApp(t, backend, &copied), "hello")
	m, _ := app.Update(eventMsg{event: orchestrator.DebounceFired{Timer: app.machine.PendingTimer()}})
	app = m.(App)

	m, _ = app.Update(app.translateCmd(translation.Request{Text: "hello", TargetLanguage: "es"})())
	app = m.(App)

	out := app.machine.Output()
	if out.Kind != orchestrator.OutputError || !strings.HasPrefix(out.Text, orchestrator.ErrorPrefix+"Sorry") {
		t.Fatalf("unexpected output: %+v", out)
	}
	if app.machine.InFlight() || strings.Contains(app.View(), "Translating") {
		t.Fatal("failure left the in-progress indicator on")
	}
}

func TestAppUpdate_CopyAndFeedback(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{result: &translation.Result{TranslatedText: "hola"}}
	var copied []string
	app := typeRunes(t, newTestApp(t, backend, &copied), "hello")
	m, _ := app.Update(eventMsg{event: orchestrator.DebounceFired{Timer: app.machine.PendingTimer()}})
	app = m.(App)
	m, _ = app.Update(app.translateCmd(translation.Request{Text: "hello", TargetLanguage: "es"})())
	app = m.(App)

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	app = m.(App)
	if !app.machine.Copied() || !strings.Contains(app.View(), "Copied!") {
		t.Fatal("expected copy feedback")
	}

	m, _ = app.Update(app.copyCmd("hola")())
	app = m.(App)
	if len(copied) != 1 || copied[0] != "hola" {
		t.Fatalf("unexpected clipboard writes: %q", copied)
	}

	m, _ = app.Update(clipboardMsg{err: errors.New("no clipboard utility")})
	app = m.(App)
	if app.machine.Copied() || !strings.Contains(app.alert, "no clipboard utility") {
		t.Fatalf("clipboard failure not surfaced: copied=%t alert=%q", app.machine.Copied(), app.alert)
	}
}

func TestAppUpdate_TabFocusesContext(t *testing.T) {
	t.Parallel()

	var copied []string
	app := newTestApp(t, &stubBackend{}, &copied)
	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.focused != FieldContext {
		t.Fatalf("unexpected focus: %v", app.focused)
	}

	app = typeRunes(t, app, "chat")
	if got := app.machine.Context(); got != "chat" {
		t.Fatalf("unexpected context: %q", got)
	}
	if got := app.machine.Source(); got != "" {
		t.Fatalf("context typing leaked into source: %q", got)
	}
}

func TestAppUpdate_CycleLanguages(t *testing.T) {
	t.Parallel()

	var copied []string
	app := newTestApp(t, &stubBackend{}, &copied)
	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	app = m.(App)
	if got := app.machine.SourceLanguage(); got != app.machine.SourceOptions()[1] {
		t.Fatalf("unexpected source after cycle: %q", got)
	}

	before := app.machine.TargetLanguage()
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	app = m.(App)
	if got := app.machine.TargetLanguage(); got == before || got == "auto" {
		t.Fatalf("unexpected target after cycle: %q", got)
	}
}

func TestNextOption(t *testing.T) {
	t.Parallel()

	opts := []string{"auto", "en", "es"}
	if got := nextOption(opts, "es"); got != "auto" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := nextOption(opts, "zz"); got != "auto" {
		t.Fatalf("unexpected unknown current: %q", got)
	}
	if got := nextOption(nil, "en"); got != "en" {
		t.Fatalf("unexpected empty options: %q", got)
	}
}
