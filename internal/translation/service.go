package translation

import "context"

// Provider completes a formatted translation prompt and returns the raw model output.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// Prompt is the instruction pair sent to a provider.
type Prompt struct {
	System string
	User   string
}

// Request describes one translation request.
type Request struct {
	Text           string  `json:"text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Context        *string `json:"context,omitempty"`
}

// ContextText returns the optional context or "".
func (r Request) ContextText() string {
	if r.Context == nil {
		return ""
	}
	return *r.Context
}

// Result is a successful translation.
type Result struct {
	TranslatedText   string `json:"translated_text"`
	SourceLanguage   string `json:"source_language"`
	TargetLanguage   string `json:"target_language"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	Provider         string `json:"provider,omitempty"`
	LatencyMs        int64  `json:"-"`
}
