package language

import (
	"strings"

	"golang.org/x/text/language"
)

// AutoDetect is the source-language sentinel asking the provider to infer the language.
// It is never a valid target.
const AutoDetect = "auto"

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaNumLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// NormalizeSource normalizes a source-language value. Blank values and any
// spelling of the sentinel collapse to AutoDetect. A malformed value comes back
// trimmed and lowercased so catalog lookups reject it.
func NormalizeSource(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return AutoDetect
	}
	tag := NormalizeTag(trimmed)
	if tag == "" {
		return strings.ToLower(trimmed)
	}
	return tag
}

// IsAutoDetect reports whether raw names the auto-detect sentinel.
func IsAutoDetect(raw string) bool {
	return NormalizeTag(raw) == AutoDetect
}

// ParseTag validates code as a BCP 47 tag.
func ParseTag(code string) (language.Tag, error) {
	return language.Parse(NormalizeTag(code))
}

func isAlphaNumLower(value string) bool {
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
