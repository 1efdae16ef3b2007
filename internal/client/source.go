package client

import (
	"context"
	"fmt"

	"horse.fit/translator/internal/translation"
)

// LanguageSource supplies the language catalog to the client.
type LanguageSource interface {
	Languages(ctx context.Context) ([]translation.Language, error)
}

// HTTPSource fetches the catalog from the translator API.
type HTTPSource struct {
	client *Client
}

func NewHTTPSource(c *Client) *HTTPSource {
	return &HTTPSource{client: c}
}

func (s *HTTPSource) Languages(ctx context.Context) ([]translation.Language, error) {
	return s.client.Languages(ctx)
}

// StaticSource serves a fixed list, used when the API is down.
type StaticSource struct {
	languages []translation.Language
}

func NewStaticSource(languages []translation.Language) *StaticSource {
	copied := make([]translation.Language, len(languages))
	copy(copied, languages)
	return &StaticSource{languages: copied}
}

// DefaultStaticSource serves the built-in catalog.
func DefaultStaticSource() *StaticSource {
	return NewStaticSource(translation.DefaultCatalog().List())
}

func (s *StaticSource) Languages(context.Context) ([]translation.Language, error) {
	if len(s.languages) == 0 {
		return nil, fmt.Errorf("static language list is empty")
	}
	out := make([]translation.Language, len(s.languages))
	copy(out, s.languages)
	return out, nil
}

// LoadResult is the outcome of LoadLanguages.
type LoadResult struct {
	Languages []translation.Language
	// LiveErr is set when the live source failed and the fallback was used.
	LiveErr error
}

// LoadLanguages asks live first and installs fallback when it fails. An error is
// returned only when both sources fail.
func LoadLanguages(ctx context.Context, live, fallback LanguageSource) (LoadResult, error) {
	var liveErr error
	if live != nil {
		langs, err := live.Languages(ctx)
		if err == nil && len(langs) > 0 {
			return LoadResult{Languages: langs}, nil
		}
		liveErr = err
		if liveErr == nil {
			liveErr = fmt.Errorf("live language source returned no languages")
		}
	}
	if fallback == nil {
		return LoadResult{}, fmt.Errorf("load languages: %w", liveErr)
	}

	langs, err := fallback.Languages(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("load fallback languages: %w", err)
	}
	return LoadResult{Languages: langs, LiveErr: liveErr}, nil
}
