package translation

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat_NamesEveryTargetByDisplayName(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	for _, lang := range catalog.List() {
		prompt, err := Format(catalog, Request{Text: "hello", SourceLanguage: "auto", TargetLanguage: lang.Code})
		if err != nil {
			t.Fatalf("Format(%s) returned error: %v", lang.Code, err)
		}
		if !strings.Contains(prompt.User, "into "+lang.Name+".") {
			t.Fatalf("prompt for %s does not name %q:\n%s", lang.Code, lang.Name, prompt.User)
		}
		if strings.Contains(prompt.User, "into "+lang.Code+".") {
			t.Fatalf("prompt for %s uses the bare code", lang.Code)
		}
	}
}

func TestFormat_ExplicitSource(t *testing.T) {
	t.Parallel()

	prompt, err := Format(DefaultCatalog(), Request{Text: "Guten Tag", SourceLanguage: "de", TargetLanguage: "ja"})
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(prompt.User, "from German to Japanese") {
		t.Fatalf("unexpected prompt:\n%s", prompt.User)
	}
	if strings.Contains(prompt.User, "Detect the language") {
		t.Fatalf("explicit source must not ask for detection:\n%s", prompt.User)
	}
	if strings.Contains(prompt.User, "Context") {
		t.Fatalf("empty context must not be rendered:\n%s", prompt.User)
	}
	if !strings.Contains(prompt.User, "Provide ONLY the translated text") {
		t.Fatalf("prompt missing output instruction:\n%s", prompt.User)
	}
	if prompt.System == "" {
		t.Fatal("expected a system prompt")
	}
}

func TestFormat_ContextAndNormalization(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent composes to "é" under NFC.
	prompt, err := Format(DefaultCatalog(), Request{
		Text:           "cafe\u0301",
		TargetLanguage: "en",
		Context:        strPtr("  restaurant menu  "),
	})
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(prompt.User, "\"café\"") {
		t.Fatalf("text was not NFC-normalized:\n%s", prompt.User)
	}
	if !strings.Contains(prompt.User, "restaurant menu\n") {
		t.Fatalf("context missing or untrimmed:\n%s", prompt.User)
	}
}

func TestFormat_UnknownTarget(t *testing.T) {
	t.Parallel()

	_, err := Format(DefaultCatalog(), Request{Text: "hi", TargetLanguage: "zz"})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}
