package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"horse.fit/translator/internal/clock"
	"horse.fit/translator/internal/language"
)

const (
	DefaultMaxTextLength   = 5000
	DefaultProviderTimeout = 15 * time.Second
)

// Detector guesses the language of a text sample. It returns "" when unsure.
type Detector interface {
	DetectISO6391(text string) string
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	MaxTextLength int
	Timeout       time.Duration
	Detector      Detector
	Logger        zerolog.Logger
}

// Service validates requests, formats prompts, calls the provider and extracts
// the translation. It holds no per-request state.
type Service struct {
	catalog  *Catalog
	provider Provider
	maxChars int
	timeout  time.Duration
	detector Detector
	logger   zerolog.Logger
}

func NewService(catalog *Catalog, provider Provider, opts ServiceOptions) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("language catalog is nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("translation provider is nil")
	}
	maxChars := opts.MaxTextLength
	if maxChars <= 0 {
		maxChars = DefaultMaxTextLength
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &Service{
		catalog:  catalog,
		provider: provider,
		maxChars: maxChars,
		timeout:  timeout,
		detector: opts.Detector,
		logger:   opts.Logger,
	}, nil
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func (s *Service) MaxTextLength() int {
	return s.maxChars
}

// Translate runs one request through validation, the provider call and extraction.
// Failures are always *Error values.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	prompt, err := Format(s.catalog, req)
	if err != nil {
		return nil, err
	}

	source := language.NormalizeSource(req.SourceLanguage)
	target, _ := s.catalog.Lookup(req.TargetLanguage)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := clock.Now()
	raw, err := s.provider.Complete(callCtx, prompt)
	latency := clock.Since(started)
	if err != nil {
		failure := s.providerFailure(callCtx, err)
		s.logger.Error().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("source_lang", source).
			Str("target_lang", target.Code).
			Dur("latency", latency).
			Str("kind", KindName(failure)).
			Msg("translation provider call failed")
		return nil, failure
	}

	translated, err := Extract(raw)
	if err != nil {
		s.logger.Warn().
			Str("provider", s.provider.Name()).
			Str("target_lang", target.Code).
			Int("raw_length", len(raw)).
			Msg("translation provider returned no extractable text")
		return nil, err
	}

	result := &Result{
		TranslatedText: translated,
		SourceLanguage: source,
		TargetLanguage: target.Code,
		Provider:       s.provider.Name(),
		LatencyMs:      latency.Milliseconds(),
	}
	if source == language.AutoDetect {
		result.DetectedLanguage = s.detect(req.Text)
	}

	s.logger.Debug().
		Str("provider", result.Provider).
		Str("source_lang", source).
		Str("detected_lang", result.DetectedLanguage).
		Str("target_lang", result.TargetLanguage).
		Int64("latency_ms", result.LatencyMs).
		Msg("translation completed")
	return result, nil
}

func (s *Service) validate(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return newError(ErrEmptyInput, "Text to translate is required", nil)
	}
	if n := utf8.RuneCountInString(req.Text); n > s.maxChars {
		return newError(ErrPayloadTooLarge, fmt.Sprintf("Text is too long (%d characters, maximum %d)", n, s.maxChars), nil)
	}
	if strings.TrimSpace(req.TargetLanguage) == "" {
		return newError(ErrUnknownLanguage, unknownTargetDetail(req.TargetLanguage), nil)
	}
	if language.IsAutoDetect(req.TargetLanguage) {
		return newError(ErrUnknownLanguage, "Automatic detection is only available for the source language", nil)
	}
	if !s.catalog.Contains(req.TargetLanguage) {
		return newError(ErrUnknownLanguage, unknownTargetDetail(req.TargetLanguage), nil)
	}
	if source := language.NormalizeSource(req.SourceLanguage); source != language.AutoDetect && !s.catalog.Contains(source) {
		return newError(ErrUnknownLanguage, fmt.Sprintf("Unsupported source language %q", req.SourceLanguage), nil)
	}
	return nil
}

func (s *Service) providerFailure(callCtx context.Context, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrProviderUnavailable, "The translation service timed out. Please try again.", err)
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return newError(ErrProviderUnavailable, "The translation service timed out. Please try again.", errors.Join(context.DeadlineExceeded, err))
	}
	return newError(ErrProviderUnavailable, "The translation service is currently unavailable. Please try again later.", err)
}

func (s *Service) detect(text string) string {
	if s.detector == nil {
		return ""
	}
	code := s.detector.DetectISO6391(text)
	if code == "" || !s.catalog.Contains(code) {
		return ""
	}
	lang, _ := s.catalog.Lookup(code)
	return lang.Code
}

// IsTimeout reports whether err is a provider timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) && errors.Is(err, context.DeadlineExceeded)
}
