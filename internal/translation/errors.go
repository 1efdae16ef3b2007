package translation

import (
	"errors"
	"strings"
)

// Failure kinds. Each *Error wraps exactly one of these.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrUnknownLanguage     = errors.New("unknown language")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrMalformedResponse   = errors.New("malformed response")
)

// Error is a translation failure carrying a detail that is safe to show to users.
// Cause holds the internal error (provider messages, transport errors) and is
// only meant for server-side logs.
type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func newError(kind error, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// ClientFault reports whether the failure was caused by the request itself.
func (e *Error) ClientFault() bool {
	if e == nil {
		return false
	}
	return errors.Is(e.Kind, ErrEmptyInput) ||
		errors.Is(e.Kind, ErrUnknownLanguage) ||
		errors.Is(e.Kind, ErrPayloadTooLarge)
}

// KindName returns the snake_case identifier of err's kind, or "internal".
func KindName(err error) string {
	var te *Error
	if !errors.As(err, &te) || te.Kind == nil {
		return "internal"
	}
	return strings.ReplaceAll(te.Kind.Error(), " ", "_")
}
