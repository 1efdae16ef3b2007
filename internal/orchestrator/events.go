package orchestrator

import (
	"time"

	"horse.fit/translator/internal/translation"
)

// TimerID identifies one scheduled timer. Zero means no timer.
type TimerID uint64

// Event is an input to Machine.Handle.
type Event interface {
	isEvent()
}

type LanguagesLoaded struct {
	Languages []translation.Language
}

type SourceEdited struct {
	Text string
}

type ContextEdited struct {
	Text string
}

type SourceLanguageChanged struct {
	Code string
}

type TargetLanguageChanged struct {
	Code string
}

// DebounceFired is delivered when a StartTimer for a debounce elapses.
type DebounceFired struct {
	Timer TimerID
}

// TranslationDone reports the outcome of a SendRequest.
type TranslationDone struct {
	Text     string
	Detected string
	Err      error
}

type SwapRequested struct{}

type CopyRequested struct{}

// CopyFailed reports that a WriteClipboard could not be applied.
type CopyFailed struct {
	Err error
}

type CopyFeedbackExpired struct {
	Timer TimerID
}

func (LanguagesLoaded) isEvent()       {}
func (SourceEdited) isEvent()          {}
func (ContextEdited) isEvent()         {}
func (SourceLanguageChanged) isEvent() {}
func (TargetLanguageChanged) isEvent() {}
func (DebounceFired) isEvent()         {}
func (TranslationDone) isEvent()       {}
func (SwapRequested) isEvent()         {}
func (CopyRequested) isEvent()         {}
func (CopyFailed) isEvent()            {}
func (CopyFeedbackExpired) isEvent()   {}

// Effect is work the host must perform on behalf of the machine.
type Effect interface {
	isEffect()
}

// StartTimer asks the host to deliver Fire after Delay.
type StartTimer struct {
	ID    TimerID
	Delay time.Duration
	Fire  Event
}

// SendRequest asks the host to call the translation endpoint and report back
// with TranslationDone.
type SendRequest struct {
	Request translation.Request
}

type WriteClipboard struct {
	Text string
}

func (StartTimer) isEffect()     {}
func (SendRequest) isEffect()    {}
func (WriteClipboard) isEffect() {}
