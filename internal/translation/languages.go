package translation

import (
	"fmt"

	"golang.org/x/text/language/display"

	"horse.fit/translator/internal/language"
)

// Language is one entry of the language catalog.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

var builtinLanguages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "es", Name: "Spanish", NativeName: "Español"},
	{Code: "fr", Name: "French", NativeName: "Français"},
	{Code: "de", Name: "German", NativeName: "Deutsch"},
	{Code: "it", Name: "Italian", NativeName: "Italiano"},
	{Code: "pt", Name: "Portuguese", NativeName: "Português"},
	{Code: "nl", Name: "Dutch", NativeName: "Nederlands"},
	{Code: "pl", Name: "Polish", NativeName: "Polski"},
	{Code: "ru", Name: "Russian", NativeName: "Русский"},
	{Code: "uk", Name: "Ukrainian", NativeName: "Українська"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "ja", Name: "Japanese", NativeName: "日本語"},
	{Code: "ko", Name: "Korean", NativeName: "한국어"},
	{Code: "zh", Name: "Chinese", NativeName: "中文"},
	{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
	{Code: "th", Name: "Thai", NativeName: "ไทย"},
	{Code: "id", Name: "Indonesian", NativeName: "Bahasa Indonesia"},
	{Code: "sv", Name: "Swedish", NativeName: "Svenska"},
}

// Catalog is an immutable, ordered set of supported languages.
type Catalog struct {
	languages []Language
	byCode    map[string]int
}

// NewCatalog validates entries and builds a catalog preserving their order.
// Codes must be valid BCP 47 tags and unique; the auto-detect sentinel is rejected.
func NewCatalog(entries []Language) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("language catalog is empty")
	}

	c := &Catalog{
		languages: make([]Language, 0, len(entries)),
		byCode:    make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		code := language.NormalizeTag(entry.Code)
		if code == "" || code == language.AutoDetect {
			return nil, fmt.Errorf("language[%d]: invalid code %q", i, entry.Code)
		}
		tag, err := language.ParseTag(code)
		if err != nil {
			return nil, fmt.Errorf("language[%d]: parse code %q: %w", i, entry.Code, err)
		}
		if _, exists := c.byCode[code]; exists {
			return nil, fmt.Errorf("language[%d]: duplicate code %q", i, code)
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("language[%d]: name is required for %q", i, code)
		}
		native := entry.NativeName
		if native == "" {
			native = display.Self.Name(tag)
		}
		if native == "" {
			native = entry.Name
		}

		c.byCode[code] = len(c.languages)
		c.languages = append(c.languages, Language{Code: code, Name: entry.Name, NativeName: native})
	}
	return c, nil
}

var defaultCatalog = mustCatalog(builtinLanguages)

func mustCatalog(entries []Language) *Catalog {
	c, err := NewCatalog(entries)
	if err != nil {
		panic(fmt.Sprintf("built-in language catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// List returns a copy of the catalog in its fixed order.
func (c *Catalog) List() []Language {
	if c == nil {
		return nil
	}
	out := make([]Language, len(c.languages))
	copy(out, c.languages)
	return out
}

// Lookup resolves a code after normalization.
func (c *Catalog) Lookup(code string) (Language, bool) {
	if c == nil {
		return Language{}, false
	}
	idx, ok := c.byCode[language.NormalizeTag(code)]
	if !ok {
		return Language{}, false
	}
	return c.languages[idx], true
}

func (c *Catalog) Contains(code string) bool {
	_, ok := c.Lookup(code)
	return ok
}

// Codes returns catalog codes in order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	codes := make([]string, 0, len(c.languages))
	for _, lang := range c.languages {
		codes = append(codes, lang.Code)
	}
	return codes
}
