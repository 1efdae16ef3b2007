package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Provider names accepted by TRANSLATION_PROVIDER.
const (
	ProviderGroq        = "groq"
	ProviderHuggingFace = "huggingface"
	ProviderLocal       = "local"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Provider string `envconfig:"TRANSLATION_PROVIDER" default:""`

	GroqAPIKey string `envconfig:"GROQ_API_KEY" default:""`
	GroqAPIURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel  string `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant"`

	HuggingFaceAPIKey string `envconfig:"HUGGINGFACE_API_KEY" default:""`
	HuggingFaceAPIURL string `envconfig:"HUGGINGFACE_API_URL" default:"https://api-inference.huggingface.co/models/meta-llama/Meta-Llama-3-8B-Instruct"`

	LocalEndpoint string `envconfig:"LOCAL_LLM_ENDPOINT" default:""`
	LocalModel    string `envconfig:"LOCAL_LLM_MODEL" default:""`

	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"15s"`
	MaxTextLength   int           `envconfig:"MAX_TEXT_LENGTH" default:"5000"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.Provider = cfg.ResolvedProvider()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ResolvedProvider returns the explicit provider, otherwise the first provider
// whose key is present (groq before huggingface).
func (c *Config) ResolvedProvider() string {
	if c == nil {
		return ""
	}
	if explicit := strings.ToLower(strings.TrimSpace(c.Provider)); explicit != "" {
		return explicit
	}
	if strings.TrimSpace(c.GroqAPIKey) != "" {
		return ProviderGroq
	}
	if strings.TrimSpace(c.HuggingFaceAPIKey) != "" {
		return ProviderHuggingFace
	}
	return ""
}

func (c *Config) Validate() error {
	switch c.ResolvedProvider() {
	case "":
		return fmt.Errorf("no translation provider configured: set GROQ_API_KEY (https://console.groq.com/keys) or HUGGINGFACE_API_KEY (https://huggingface.co/settings/tokens)")
	case ProviderGroq:
		if strings.TrimSpace(c.GroqAPIKey) == "" {
			return fmt.Errorf("GROQ_API_KEY is required when TRANSLATION_PROVIDER=groq")
		}
		if strings.TrimSpace(c.GroqAPIURL) == "" {
			return fmt.Errorf("GROQ_API_URL is required")
		}
	case ProviderHuggingFace:
		if strings.TrimSpace(c.HuggingFaceAPIKey) == "" {
			return fmt.Errorf("HUGGINGFACE_API_KEY is required when TRANSLATION_PROVIDER=huggingface")
		}
		if strings.TrimSpace(c.HuggingFaceAPIURL) == "" {
			return fmt.Errorf("HUGGINGFACE_API_URL is required")
		}
	case ProviderLocal:
		if strings.TrimSpace(c.LocalEndpoint) == "" {
			return fmt.Errorf("LOCAL_LLM_ENDPOINT is required when TRANSLATION_PROVIDER=local")
		}
		if strings.TrimSpace(c.LocalModel) == "" {
			return fmt.Errorf("LOCAL_LLM_MODEL is required when TRANSLATION_PROVIDER=local")
		}
	default:
		return fmt.Errorf("TRANSLATION_PROVIDER %q is not supported (groq, huggingface, local)", c.Provider)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	if c.MaxTextLength < 1 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be >= 1")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string `envconfig:"CLIENT_LOG_FILE" default:""`

	APIURL         string        `envconfig:"TRANSLATOR_API_URL" default:"http://127.0.0.1:8000"`
	RequestTimeout time.Duration `envconfig:"CLIENT_REQUEST_TIMEOUT" default:"30s"`
	DebounceDelay  time.Duration `envconfig:"DEBOUNCE_DELAY" default:"300ms"`
	CopyFeedback   time.Duration `envconfig:"COPY_FEEDBACK_DELAY" default:"2s"`
	MaxTextLength  int           `envconfig:"MAX_TEXT_LENGTH" default:"5000"`
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *ClientConfig) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("TRANSLATOR_API_URL is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("CLIENT_REQUEST_TIMEOUT must be > 0")
	}
	if c.DebounceDelay < 0 {
		return fmt.Errorf("DEBOUNCE_DELAY must be >= 0")
	}
	if c.CopyFeedback <= 0 {
		return fmt.Errorf("COPY_FEEDBACK_DELAY must be > 0")
	}
	if c.MaxTextLength < 1 {
		return fmt.Errorf("MAX_TEXT_LENGTH must be >= 1")
	}
	return nil
}
