// Package tui is the terminal client of the translator API.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"horse.fit/translator/internal/client"
	"horse.fit/translator/internal/clock"
	"horse.fit/translator/internal/orchestrator"
	"horse.fit/translator/internal/translation"
)

const languagesTimeout = 10 * time.Second

// Translator is the translation call the UI needs.
type Translator interface {
	Translate(ctx context.Context, req translation.Request) (*translation.Result, error)
}

type FieldID int

const (
	FieldSource FieldID = iota
	FieldContext
)

// eventMsg carries an orchestrator event back into Update.
type eventMsg struct {
	event orchestrator.Event
}

type languagesMsg struct {
	result client.LoadResult
	err    error
}

type clipboardMsg struct {
	err error
}

type Options struct {
	Backend   Translator
	Languages client.LanguageSource
	Fallback  client.LanguageSource
	Machine   orchestrator.Config
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	Logger    zerolog.Logger
	APIURL    string
}

// App is the bubbletea model of the translator client.
type App struct {
	ctx     context.Context
	backend Translator
	live    client.LanguageSource
	static  client.LanguageSource
	writeTo func(string) error
	logger  zerolog.Logger
	apiURL  string

	machine *orchestrator.Machine

	width   int
	height  int
	focused FieldID
	source  textarea.Model
	context textarea.Model
	spinner spinner.Model
	help    help.Model
	alert   string
	loaded  bool

	theme Theme
	keys  KeyMap
}

func NewApp(ctx context.Context, opts Options) App {
	machine := orchestrator.NewMachine(opts.Machine)

	src := textarea.New()
	src.Placeholder = "Type or paste text to translate"
	src.CharLimit = machine.MaxChars()
	src.ShowLineNumbers = false
	src.SetHeight(6)
	src.Focus()

	ctxField := textarea.New()
	ctxField.Placeholder = "Optional context, for example: casual chat, legal text"
	ctxField.CharLimit = 500
	ctxField.ShowLineNumbers = false
	ctxField.SetHeight(2)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	writeTo := opts.Clipboard
	if writeTo == nil {
		writeTo = clipboard.WriteAll
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = client.DefaultStaticSource()
	}

	return App{
		ctx:     ctx,
		backend: opts.Backend,
		live:    opts.Languages,
		static:  fallback,
		writeTo: writeTo,
		logger:  opts.Logger,
		apiURL:  opts.APIURL,
		machine: machine,
		focused: FieldSource,
		source:  src,
		context: ctxField,
		spinner: spin,
		help:    help.New(),
		theme:   DarkTheme(),
		keys:    DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.loadLanguagesCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Dismiss):
			a.alert = ""
			return a, nil
		case key.Matches(msg, a.keys.SwitchField):
			a.toggleFocus()
			return a, nil
		case key.Matches(msg, a.keys.CycleSource):
			next := nextOption(a.machine.SourceOptions(), a.machine.SourceLanguage())
			cmd := a.handle(orchestrator.SourceLanguageChanged{Code: next})
			return a, cmd
		case key.Matches(msg, a.keys.CycleTarget):
			next := nextOption(a.machine.TargetOptions(), a.machine.TargetLanguage())
			cmd := a.handle(orchestrator.TargetLanguageChanged{Code: next})
			return a, cmd
		case key.Matches(msg, a.keys.Swap):
			cmd := a.handle(orchestrator.SwapRequested{})
			return a, cmd
		case key.Matches(msg, a.keys.Copy):
			cmd := a.handle(orchestrator.CopyRequested{})
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case languagesMsg:
		a.installLanguages(msg)
		return a, nil

	case eventMsg:
		cmd := a.handle(msg.event)
		return a, cmd

	case clipboardMsg:
		if msg.err != nil {
			a.logger.Warn().Err(msg.err).Msg("clipboard write failed")
			a.alert = "Could not copy to the clipboard: " + msg.err.Error()
			cmd := a.handle(orchestrator.CopyFailed{Err: msg.err})
			return a, cmd
		}
		return a, nil

	case spinner.TickMsg:
		if !a.machine.InFlight() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	cmd := a.updateFocused(msg)
	return a, cmd
}

// handle feeds one event to the machine and turns its effects into commands.
func (a *App) handle(ev orchestrator.Event) tea.Cmd {
	effects := a.machine.Handle(ev)
	a.syncFields()
	return a.apply(effects)
}

func (a *App) apply(effects []orchestrator.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, eff := range effects {
		switch e := eff.(type) {
		case orchestrator.StartTimer:
			fire := e.Fire
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg {
				return eventMsg{event: fire}
			}))
		case orchestrator.SendRequest:
			cmds = append(cmds, a.translateCmd(e.Request), a.spinner.Tick)
		case orchestrator.WriteClipboard:
			cmds = append(cmds, a.copyCmd(e.Text))
		}
	}
	return tea.Batch(cmds...)
}

func (a App) translateCmd(req translation.Request) tea.Cmd {
	ctx, backend, logger := a.ctx, a.backend, a.logger
	return func() tea.Msg {
		if backend == nil {
			return eventMsg{event: orchestrator.TranslationDone{Err: errors.New("no translation backend configured")}}
		}
		start := clock.Now()
		result, err := backend.Translate(ctx, req)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source_language", req.SourceLanguage).
				Str("target_language", req.TargetLanguage).
				Msg("translation request failed")
			return eventMsg{event: orchestrator.TranslationDone{Err: err}}
		}
		logger.Debug().
			Str("target_language", req.TargetLanguage).
			Int64("latency_ms", clock.Since(start).Milliseconds()).
			Msg("translation request finished")
		return eventMsg{event: orchestrator.TranslationDone{
			Text:     result.TranslatedText,
			Detected: result.DetectedLanguage,
		}}
	}
}

func (a App) copyCmd(text string) tea.Cmd {
	writeTo := a.writeTo
	return func() tea.Msg {
		return clipboardMsg{err: writeTo(text)}
	}
}

func (a App) loadLanguagesCmd() tea.Cmd {
	ctx, live, static := a.ctx, a.live, a.static
	return func() tea.Msg {
		loadCtx, cancel := context.WithTimeout(ctx, languagesTimeout)
		defer cancel()
		result, err := client.LoadLanguages(loadCtx, live, static)
		return languagesMsg{result: result, err: err}
	}
}

func (a *App) installLanguages(msg languagesMsg) {
	if msg.err != nil {
		a.logger.Error().Err(msg.err).Msg("no language list available")
		a.alert = "No language list is available. Translation is disabled."
		return
	}
	if msg.result.LiveErr != nil {
		a.logger.Warn().Err(msg.result.LiveErr).Str("api_url", a.apiURL).Msg("language catalog fetch failed, using built-in list")
		a.alert = fmt.Sprintf("Could not load languages from the server (%s). Using the built-in list.", describeFailure(msg.result.LiveErr))
	}
	a.machine.Handle(orchestrator.LanguagesLoaded{Languages: msg.result.Languages})
	a.loaded = true
}

// updateFocused forwards msg to the focused field and reports edits to the machine.
func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focused {
	case FieldContext:
		before := a.context.Value()
		a.context, cmd = a.context.Update(msg)
		if after := a.context.Value(); after != before {
			return tea.Batch(cmd, a.handle(orchestrator.ContextEdited{Text: after}))
		}
	default:
		before := a.source.Value()
		a.source, cmd = a.source.Update(msg)
		if after := a.source.Value(); after != before {
			return tea.Batch(cmd, a.handle(orchestrator.SourceEdited{Text: after}))
		}
	}
	return cmd
}

// syncFields copies machine-owned text (swap, truncation) back into the widgets.
func (a *App) syncFields() {
	if a.source.Value() != a.machine.Source() {
		a.source.SetValue(a.machine.Source())
	}
}

func (a *App) toggleFocus() {
	if a.focused == FieldSource {
		a.focused = FieldContext
		a.source.Blur()
		a.context.Focus()
		return
	}
	a.focused = FieldSource
	a.context.Blur()
	a.source.Focus()
}

func (a *App) relayout() {
	width := a.width - 4
	if width < 20 {
		width = 20
	}
	a.source.SetWidth(width)
	a.context.SetWidth(width)
	a.help.Width = a.width
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func describeFailure(err error) string {
	var apiErr *client.APIError
	switch {
	case client.IsUnreachable(err):
		return "server unreachable"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("status %d", apiErr.Status)
	default:
		return err.Error()
	}
}

// Run starts the translator TUI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewApp(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
