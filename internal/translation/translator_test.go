package translation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubProvider struct {
	name    string
	calls   int
	prompts []Prompt
	resp    string
	err     error
	block   bool
}

func (p *stubProvider) Name() string {
	if p.name == "" {
		return "stub"
	}
	return p.name
}

func (p *stubProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	p.calls++
	p.prompts = append(p.prompts, prompt)
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if p.err != nil {
		return "", p.err
	}
	return p.resp, nil
}

type stubDetector struct {
	code string
}

func (d stubDetector) DetectISO6391(string) string {
	return d.code
}

func strPtr(v string) *string {
	return &v
}

func newTestService(t *testing.T, provider Provider, opts ServiceOptions) *Service {
	t.Helper()
	opts.Logger = zerolog.Nop()
	svc, err := NewService(DefaultCatalog(), provider, opts)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestTranslate_CasualChatExample(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{resp: "what's up"}
	svc := newTestService(t, provider, ServiceOptions{Detector: stubDetector{code: "es"}})

	result, err := svc.Translate(context.Background(), Request{
		Text:           "yo que hongo",
		SourceLanguage: "auto",
		TargetLanguage: "en",
		Context:        strPtr("casual chat"),
	})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if result.TranslatedText != "what's up" {
		t.Fatalf("unexpected translation: got %q want %q", result.TranslatedText, "what's up")
	}
	if result.DetectedLanguage != "es" {
		t.Fatalf("unexpected detected language: %q", result.DetectedLanguage)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}

	user := provider.prompts[0].User
	for _, want := range []string{"English", "Detect the language", "casual chat", "yo que hongo"} {
		if !strings.Contains(user, want) {
			t.Fatalf("prompt missing %q:\n%s", want, user)
		}
	}
}

func TestTranslate_EmptyTargetSkipsProvider(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{resp: "unused"}
	svc := newTestService(t, provider, ServiceOptions{})

	_, err := svc.Translate(context.Background(), Request{Text: "hola", TargetLanguage: ""})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatalf("expected provider not to be called, got %d calls", provider.calls)
	}
}

func TestTranslate_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "blank text", req: Request{Text: "  \n\t", TargetLanguage: "en"}, want: ErrEmptyInput},
		{name: "unknown target", req: Request{Text: "hola", TargetLanguage: "xx"}, want: ErrUnknownLanguage},
		{name: "auto target", req: Request{Text: "hola", TargetLanguage: "auto"}, want: ErrUnknownLanguage},
		{name: "unknown source", req: Request{Text: "hola", SourceLanguage: "tlh", TargetLanguage: "en"}, want: ErrUnknownLanguage},
		{name: "malformed source", req: Request{Text: "hola", SourceLanguage: "en!", TargetLanguage: "es"}, want: ErrUnknownLanguage},
		{name: "source with space", req: Request{Text: "hola", SourceLanguage: "xx yy", TargetLanguage: "es"}, want: ErrUnknownLanguage},
		{name: "dotted source", req: Request{Text: "hola", SourceLanguage: "e.n", TargetLanguage: "es"}, want: ErrUnknownLanguage},
		{name: "too long", req: Request{Text: strings.Repeat("ñ", 11), TargetLanguage: "en"}, want: ErrPayloadTooLarge},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := &stubProvider{resp: "unused"}
			svc := newTestService(t, provider, ServiceOptions{MaxTextLength: 10})
			_, err := svc.Translate(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got %v want %v", err, tc.want)
			}
			var te *Error
			if !errors.As(err, &te) || !te.ClientFault() {
				t.Fatalf("expected client-fault *Error, got %T %v", err, err)
			}
			if provider.calls != 0 {
				t.Fatalf("expected no provider call, got %d", provider.calls)
			}
		})
	}
}

func TestTranslate_LengthCountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{resp: "ok"}
	svc := newTestService(t, provider, ServiceOptions{MaxTextLength: 10})

	if _, err := svc.Translate(context.Background(), Request{Text: strings.Repeat("日", 10), TargetLanguage: "en"}); err != nil {
		t.Fatalf("expected 10 runes to be accepted, got %v", err)
	}
}

func TestTranslate_ProviderTimeout(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{block: true}
	svc := newTestService(t, provider, ServiceOptions{Timeout: 20 * time.Millisecond})

	_, err := svc.Translate(context.Background(), Request{Text: "hello", TargetLanguage: "fr"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if !IsTimeout(err) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestTranslate_ProviderErrorDoesNotLeakCause(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: errors.New("groq api status 401: invalid key gsk_secret")}
	svc := newTestService(t, provider, ServiceOptions{})

	_, err := svc.Translate(context.Background(), Request{Text: "hello", TargetLanguage: "de"})
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if strings.Contains(te.Detail, "gsk_secret") {
		t.Fatalf("detail leaks provider message: %q", te.Detail)
	}
}

func TestTranslate_MalformedResponse(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{resp: "  \"\"  "}
	svc := newTestService(t, provider, ServiceOptions{})

	_, err := svc.Translate(context.Background(), Request{Text: "hello", TargetLanguage: "de"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestTranslate_ProviderMalformedKindIsKept(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: newError(ErrMalformedResponse, "no result", nil)}
	svc := newTestService(t, provider, ServiceOptions{})

	_, err := svc.Translate(context.Background(), Request{Text: "hello", TargetLanguage: "de"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("malformed response must not be reported as unavailable: %v", err)
	}
}

func TestTranslate_ExplicitSourceSkipsDetection(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{resp: "Bonjour"}
	svc := newTestService(t, provider, ServiceOptions{Detector: stubDetector{code: "en"}})

	result, err := svc.Translate(context.Background(), Request{Text: "Hello", SourceLanguage: "EN", TargetLanguage: "fr"})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if result.SourceLanguage != "en" || result.DetectedLanguage != "" {
		t.Fatalf("unexpected languages: source=%q detected=%q", result.SourceLanguage, result.DetectedLanguage)
	}
	if !strings.Contains(provider.prompts[0].User, "from English to French") {
		t.Fatalf("prompt does not name both languages:\n%s", provider.prompts[0].User)
	}
}

func TestKindName(t *testing.T) {
	t.Parallel()

	if got := KindName(newError(ErrProviderUnavailable, "", nil)); got != "provider_unavailable" {
		t.Fatalf("unexpected kind name: %q", got)
	}
	if got := KindName(errors.New("boom")); got != "internal" {
		t.Fatalf("unexpected kind name for plain error: %q", got)
	}
}
