package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHuggingFaceEndpoint is the hosted inference endpoint of the default instruction model.
const DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models/meta-llama/Meta-Llama-3-8B-Instruct"

// HuggingFaceProvider calls the Hugging Face inference API, which takes a single
// text input rather than chat messages.
type HuggingFaceProvider struct {
	endpointURL string
	apiKey      string
	client      *http.Client
}

func NewHuggingFaceProvider(apiKey, endpoint string, timeout time.Duration) *HuggingFaceProvider {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultHuggingFaceEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HuggingFaceProvider{
		endpointURL: endpoint,
		apiKey:      strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

type hfErrorResponse struct {
	Error string `json:"error"`
}

func (p *HuggingFaceProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if p == nil {
		return "", fmt.Errorf("huggingface provider is nil")
	}

	inputs := prompt.User
	if prompt.System != "" {
		inputs = prompt.System + "\n\n" + prompt.User
	}
	body, err := json.Marshal(hfRequest{
		Inputs: inputs,
		Parameters: hfParameters{
			MaxNewTokens:   chatMaxTokens,
			Temperature:    chatTemperature,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal huggingface request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build huggingface request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send huggingface request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read huggingface response: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", newError(ErrProviderUnavailable, "The translation model is loading. Please try again in a few seconds.",
			fmt.Errorf("huggingface status 503: %s", strings.TrimSpace(string(respBody))))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload hfErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil && strings.TrimSpace(errPayload.Error) != "" {
			return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode, strings.TrimSpace(errPayload.Error))
		}
		return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	text, err := decodeHFGeneration(respBody)
	if err != nil {
		return "", newError(ErrMalformedResponse, "The translation service returned an unreadable response", err)
	}
	return text, nil
}

// decodeHFGeneration accepts both the list and the object response shapes.
func decodeHFGeneration(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("huggingface response is empty")
	}

	switch trimmed[0] {
	case '[':
		var list []hfGeneration
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("decode huggingface response: %w", err)
		}
		if len(list) == 0 {
			return "", fmt.Errorf("huggingface response has no generations")
		}
		return list[0].GeneratedText, nil
	case '{':
		var single hfGeneration
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return "", fmt.Errorf("decode huggingface response: %w", err)
		}
		return single.GeneratedText, nil
	default:
		return "", fmt.Errorf("unexpected huggingface response shape")
	}
}
