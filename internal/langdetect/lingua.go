package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

const minLetters = 6

// Detector wraps a lazily built lingua detector. The zero value is not usable; call New.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
	allowed  map[string]struct{}
}

// New returns a detector that only reports codes in allowed. An empty allowed
// list reports any ISO 639-1 code lingua knows.
func New(allowed []string) *Detector {
	set := make(map[string]struct{}, len(allowed))
	for _, code := range allowed {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return &Detector{allowed: set}
}

// DetectISO6391 returns the lowercase ISO 639-1 code of text, or "" when the
// sample is too short, detection is not confident, or the code is not allowed.
func (d *Detector) DetectISO6391(text string) string {
	if d == nil {
		return ""
	}
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return ""
	}

	language, exists := d.get().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	if len(d.allowed) > 0 {
		if _, ok := d.allowed[code]; !ok {
			return ""
		}
	}
	return code
}

func (d *Detector) get() lingua.LanguageDetector {
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})
	return d.detector
}
