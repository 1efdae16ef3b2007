package translation

import (
	"regexp"
	"strings"
)

var reasoningBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// Opened reasoning tag with no closing tag (the model was cut off).
var truncatedReasoningRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>).*$`)

var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.!]?\s+here(?:'s| is)(?: the| your)? (?:translated )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the| your)? (?:translated )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)\s*:`),
}

// Extract turns raw provider output into the bare translation. It removes
// reasoning blocks, one leading preamble and one pair of wrapping quotes.
func Extract(raw string) (string, error) {
	text := reasoningBlockRe.ReplaceAllString(raw, "")
	text = truncatedReasoningRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	for _, re := range preamblePatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
			break
		}
	}

	text = unwrapQuotes(text)
	if text == "" {
		return "", newError(ErrMalformedResponse, "The translation service returned an empty response", nil)
	}
	return text, nil
}

func unwrapQuotes(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	switch {
	case first == '"' && last == '"',
		first == '«' && last == '»',
		first == '“' && last == '”',
		first == '‘' && last == '’':
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
