// Package orchestrator holds the client-side translation state machine. It has
// no goroutines and no clock: hosts feed it events and carry out the effects it
// returns.
package orchestrator

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"horse.fit/translator/internal/language"
	"horse.fit/translator/internal/translation"
)

const (
	DefaultDebounceDelay = 300 * time.Millisecond
	DefaultCopyFeedback  = 2 * time.Second
	DefaultMaxChars      = translation.DefaultMaxTextLength

	// ErrorPrefix marks output that is a failure message rather than a translation.
	ErrorPrefix = "⚠ "

	SelectTargetNotice = "Select a target language to translate into."

	preferredTarget = "es"
	swapFallback    = "en"
)

// Phase is the translation state derived from the machine's flags.
type Phase int

const (
	Idle Phase = iota
	Debouncing
	InFlight
)

func (p Phase) String() string {
	switch p {
	case Debouncing:
		return "debouncing"
	case InFlight:
		return "in_flight"
	default:
		return "idle"
	}
}

type OutputKind int

const (
	OutputEmpty OutputKind = iota
	OutputTranslation
	OutputNotice
	OutputError
)

// Output is the content of the output field.
type Output struct {
	Kind OutputKind
	Text string
}

type Config struct {
	Delay        time.Duration
	MaxChars     int
	CopyFeedback time.Duration
}

func (c Config) withDefaults() Config {
	if c.Delay <= 0 {
		c.Delay = DefaultDebounceDelay
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	if c.CopyFeedback <= 0 {
		c.CopyFeedback = DefaultCopyFeedback
	}
	return c
}

// Machine is the orchestrator state for one client session. It is not safe for
// concurrent use.
type Machine struct {
	cfg Config

	languages []translation.Language

	source     string
	context    string
	sourceLang string
	targetLang string
	output     Output
	detected   string

	pendingTimer TimerID
	inFlight     bool

	copyTimer TimerID
	copied    bool

	lastTimer TimerID
}

func NewMachine(cfg Config) *Machine {
	return &Machine{
		cfg:        cfg.withDefaults(),
		sourceLang: language.AutoDetect,
	}
}

// Handle applies one event and returns the effects the host must perform.
func (m *Machine) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case LanguagesLoaded:
		m.loadLanguages(e.Languages)
		return nil
	case SourceEdited:
		m.source = truncateRunes(e.Text, m.cfg.MaxChars)
		return m.schedule()
	case ContextEdited:
		m.context = e.Text
		return m.schedule()
	case SourceLanguageChanged:
		code := language.NormalizeSource(e.Code)
		if !language.IsAutoDetect(code) && !m.hasLanguage(code) {
			return nil
		}
		m.sourceLang = code
		return m.schedule()
	case TargetLanguageChanged:
		code := language.NormalizeTag(e.Code)
		if code != "" && !m.hasLanguage(code) {
			return nil
		}
		m.targetLang = code
		return m.schedule()
	case DebounceFired:
		return m.fire(e.Timer)
	case TranslationDone:
		m.finish(e)
		return nil
	case SwapRequested:
		return m.swap()
	case CopyRequested:
		return m.copy()
	case CopyFailed:
		m.copied = false
		m.copyTimer = 0
		return nil
	case CopyFeedbackExpired:
		if e.Timer == m.copyTimer {
			m.copied = false
			m.copyTimer = 0
		}
		return nil
	default:
		return nil
	}
}

func (m *Machine) loadLanguages(langs []translation.Language) {
	m.languages = make([]translation.Language, len(langs))
	copy(m.languages, langs)

	if !language.IsAutoDetect(m.sourceLang) && !m.hasLanguage(m.sourceLang) {
		m.sourceLang = language.AutoDetect
	}
	if m.targetLang == "" || !m.hasLanguage(m.targetLang) {
		m.targetLang = m.defaultTarget()
	}
}

func (m *Machine) defaultTarget() string {
	if m.hasLanguage(preferredTarget) {
		return preferredTarget
	}
	if len(m.languages) > 0 {
		return m.languages[0].Code
	}
	return ""
}

// schedule replaces any pending debounce timer with a fresh one.
func (m *Machine) schedule() []Effect {
	m.pendingTimer = m.nextTimer()
	return []Effect{StartTimer{
		ID:    m.pendingTimer,
		Delay: m.cfg.Delay,
		Fire:  DebounceFired{Timer: m.pendingTimer},
	}}
}

func (m *Machine) fire(id TimerID) []Effect {
	if id == 0 || id != m.pendingTimer {
		// Superseded by a later edit.
		return nil
	}
	m.pendingTimer = 0

	if m.inFlight {
		// Dropped, not queued. The next edit schedules a fresh call.
		return nil
	}
	if strings.TrimSpace(m.source) == "" {
		m.output = Output{}
		m.detected = ""
		return nil
	}
	if m.targetLang == "" {
		m.output = Output{Kind: OutputNotice, Text: SelectTargetNotice}
		return nil
	}

	req := translation.Request{
		Text:           m.source,
		SourceLanguage: m.sourceLang,
		TargetLanguage: m.targetLang,
	}
	if ctx := strings.TrimSpace(m.context); ctx != "" {
		req.Context = &ctx
	}
	m.inFlight = true
	return []Effect{SendRequest{Request: req}}
}

func (m *Machine) finish(done TranslationDone) {
	if !m.inFlight {
		return
	}
	m.inFlight = false

	if done.Err != nil {
		m.output = Output{Kind: OutputError, Text: ErrorPrefix + userMessage(done.Err)}
		m.detected = ""
		return
	}
	m.output = Output{Kind: OutputTranslation, Text: done.Text}
	if language.IsAutoDetect(m.sourceLang) {
		m.detected = done.Detected
	} else {
		m.detected = ""
	}
}

func (m *Machine) swap() []Effect {
	oldSource, oldSourceLang := m.source, m.sourceLang
	oldTarget, oldTargetLang := m.outputText(), m.targetLang

	m.source = truncateRunes(oldTarget, m.cfg.MaxChars)
	if oldSource == "" {
		m.output = Output{}
	} else {
		m.output = Output{Kind: OutputTranslation, Text: oldSource}
	}
	m.detected = ""

	m.sourceLang = language.NormalizeSource(oldTargetLang)
	if language.IsAutoDetect(oldSourceLang) {
		m.targetLang = m.swapFallback(m.sourceLang)
	} else {
		m.targetLang = oldSourceLang
	}

	if strings.TrimSpace(m.source) == "" {
		// A debounce armed for the old source would clear the swapped output.
		m.pendingTimer = 0
		return nil
	}
	return m.schedule()
}

// outputText is the part of the output field that can move into the source.
// Notices and error messages are not translations and stay behind.
func (m *Machine) outputText() string {
	if m.output.Kind != OutputTranslation {
		return ""
	}
	return m.output.Text
}

func (m *Machine) swapFallback(newSource string) string {
	if m.hasLanguage(swapFallback) && newSource != swapFallback {
		return swapFallback
	}
	for _, lang := range m.languages {
		if lang.Code != newSource {
			return lang.Code
		}
	}
	return ""
}

func (m *Machine) copy() []Effect {
	if m.output.Text == "" {
		return nil
	}
	m.copied = true
	m.copyTimer = m.nextTimer()
	return []Effect{
		WriteClipboard{Text: m.output.Text},
		StartTimer{
			ID:    m.copyTimer,
			Delay: m.cfg.CopyFeedback,
			Fire:  CopyFeedbackExpired{Timer: m.copyTimer},
		},
	}
}

func (m *Machine) nextTimer() TimerID {
	m.lastTimer++
	return m.lastTimer
}

func (m *Machine) hasLanguage(code string) bool {
	for _, lang := range m.languages {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// Phase reports Debouncing while a timer is pending, InFlight while a call is
// outstanding and nothing is pending, Idle otherwise.
func (m *Machine) Phase() Phase {
	switch {
	case m.pendingTimer != 0:
		return Debouncing
	case m.inFlight:
		return InFlight
	default:
		return Idle
	}
}

func (m *Machine) InFlight() bool         { return m.inFlight }
func (m *Machine) Source() string         { return m.source }
func (m *Machine) Context() string        { return m.context }
func (m *Machine) SourceLanguage() string { return m.sourceLang }
func (m *Machine) TargetLanguage() string { return m.targetLang }
func (m *Machine) Output() Output         { return m.output }
func (m *Machine) Detected() string       { return m.detected }
func (m *Machine) Copied() bool           { return m.copied }
func (m *Machine) MaxChars() int          { return m.cfg.MaxChars }
func (m *Machine) CharCount() int         { return utf8.RuneCountInString(m.source) }
func (m *Machine) PendingTimer() TimerID  { return m.pendingTimer }

// SourceOptions lists the source selector values, auto-detect first.
func (m *Machine) SourceOptions() []string {
	out := make([]string, 0, len(m.languages)+1)
	out = append(out, language.AutoDetect)
	for _, lang := range m.languages {
		out = append(out, lang.Code)
	}
	return out
}

// TargetOptions lists the target selector values. Auto-detect is never a target.
func (m *Machine) TargetOptions() []string {
	out := make([]string, 0, len(m.languages))
	for _, lang := range m.languages {
		out = append(out, lang.Code)
	}
	return out
}

// LanguageName returns the display name of code, or code itself when unknown.
func (m *Machine) LanguageName(code string) string {
	if language.IsAutoDetect(code) {
		return "Auto-detect"
	}
	for _, lang := range m.languages {
		if lang.Code == code {
			return lang.Name
		}
	}
	return code
}

type userMessager interface {
	UserMessage() string
}

func userMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return "Translation failed. Edit the text to try again."
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
