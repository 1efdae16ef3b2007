package app

import (
	"fmt"
	"strings"

	"horse.fit/translator/internal/config"
	"horse.fit/translator/internal/langdetect"
	"horse.fit/translator/internal/translation"
)

// buildRegistry registers every provider the configuration can construct, with
// the resolved TRANSLATION_PROVIDER as the default.
func buildRegistry(cfg *config.Config) (*translation.Registry, error) {
	registry := translation.NewRegistry(cfg.ResolvedProvider())

	if strings.TrimSpace(cfg.GroqAPIKey) != "" {
		provider := translation.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqAPIURL, cfg.GroqModel, cfg.ProviderTimeout)
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(cfg.HuggingFaceAPIKey) != "" {
		provider := translation.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.HuggingFaceAPIURL, cfg.ProviderTimeout)
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(cfg.LocalEndpoint) != "" && strings.TrimSpace(cfg.LocalModel) != "" {
		provider := translation.NewLocalProvider(cfg.LocalEndpoint, cfg.LocalModel, cfg.ProviderTimeout)
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}

	if len(registry.ProviderNames()) == 0 {
		return nil, fmt.Errorf("no translation provider could be built from the configuration")
	}
	return registry, nil
}

// buildService wires the catalog, the chosen provider and source detection.
// An empty providerName selects the registry default.
func buildService(cfg *config.Config, providerName string, opts translation.ServiceOptions) (*translation.Service, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := registry.Provider(providerName)
	if err != nil {
		return nil, fmt.Errorf("select provider: %w", err)
	}

	catalog := translation.DefaultCatalog()
	opts.MaxTextLength = cfg.MaxTextLength
	opts.Timeout = cfg.ProviderTimeout
	if opts.Detector == nil {
		opts.Detector = langdetect.New(catalog.Codes())
	}
	return translation.NewService(catalog, provider, opts)
}
