package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"horse.fit/translator/internal/language"
)

const systemPrompt = "You are a professional translator. Translate the text accurately, preserving tone, slang, and idioms. Return ONLY the translated text, nothing else."

// Format builds the provider prompt for req. The target (and a non-auto source)
// are named by their catalog display names.
func Format(catalog *Catalog, req Request) (Prompt, error) {
	target, ok := catalog.Lookup(req.TargetLanguage)
	if !ok {
		return Prompt{}, newError(ErrUnknownLanguage, unknownTargetDetail(req.TargetLanguage), nil)
	}

	var b strings.Builder
	source := language.NormalizeSource(req.SourceLanguage)
	if source == language.AutoDetect {
		fmt.Fprintf(&b, "You are a professional translator. Detect the language of the following text and translate it into %s.\n", target.Name)
	} else {
		src, ok := catalog.Lookup(source)
		if !ok {
			return Prompt{}, newError(ErrUnknownLanguage, fmt.Sprintf("Unsupported source language %q", req.SourceLanguage), nil)
		}
		fmt.Fprintf(&b, "You are a professional translator. Translate the following text from %s to %s.\n", src.Name, target.Name)
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("- Preserve the original tone and intent\n")
	b.WriteString("- Naturally handle slang, idioms, and informal language\n")
	b.WriteString("- Keep the translation natural and fluent\n")
	if ctx := strings.TrimSpace(req.ContextText()); ctx != "" {
		fmt.Fprintf(&b, "- Context (use it to disambiguate domain, tone, and slang): %s\n", norm.NFC.String(ctx))
	}

	fmt.Fprintf(&b, "\nText to translate: \"%s\"\n", norm.NFC.String(req.Text))
	b.WriteString("\nProvide ONLY the translated text, nothing else. Do not add quotes, notes, or explanations.")

	return Prompt{System: systemPrompt, User: b.String()}, nil
}

func unknownTargetDetail(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Target language is required"
	}
	return fmt.Sprintf("Unsupported target language %q", raw)
}
