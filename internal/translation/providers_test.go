package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestChatProvider_Complete(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"llama-3.1-8b-instant","choices":[{"index":0,"message":{"role":"assistant","content":"\"what's up\""},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	provider := NewGroqProvider("gsk-test", server.URL+"/openai/v1", "", 5*time.Second)
	raw, err := provider.Complete(context.Background(), Prompt{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if raw != `"what's up"` {
		t.Fatalf("unexpected raw output: %q", raw)
	}
	if gotAuth != "Bearer gsk-test" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["model"] != DefaultGroqModel {
		t.Fatalf("unexpected model: %v", gotBody["model"])
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected system and user messages, got %v", gotBody["messages"])
	}
}

func TestChatProvider_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	provider := NewGroqProvider("bad", server.URL, "", 5*time.Second)
	_, err := provider.Complete(context.Background(), Prompt{User: "hi"})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestChatProvider_NoChoicesIsMalformed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	provider := NewLocalProvider(server.URL, "tiny", 5*time.Second)
	_, err := provider.Complete(context.Background(), Prompt{User: "hi"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if provider.Name() != "local" || provider.ModelName() != "tiny" {
		t.Fatalf("unexpected provider identity: %s/%s", provider.Name(), provider.ModelName())
	}
}

func TestHuggingFaceProvider_ResponseShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "list", body: `[{"generated_text":" Hola "}]`, want: " Hola "},
		{name: "object", body: `{"generated_text":"Salut"}`, want: "Salut"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var payload hfRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&payload)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			provider := NewHuggingFaceProvider("hf_test", server.URL, time.Second)
			got, err := provider.Complete(context.Background(), Prompt{System: "sys", User: "usr"})
			if err != nil {
				t.Fatalf("Complete returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected output: got %q want %q", got, tc.want)
			}
			if payload.Parameters.ReturnFullText {
				t.Fatal("return_full_text must be false")
			}
			if !strings.HasPrefix(payload.Inputs, "sys") || !strings.HasSuffix(payload.Inputs, "usr") {
				t.Fatalf("unexpected inputs: %q", payload.Inputs)
			}
		})
	}
}

func TestHuggingFaceProvider_ModelLoading(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider("hf_test", server.URL, time.Second)
	_, err := provider.Complete(context.Background(), Prompt{User: "x"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	var te *Error
	if !errors.As(err, &te) || !strings.Contains(te.Detail, "loading") {
		t.Fatalf("expected loading detail, got %v", err)
	}
}

func TestHuggingFaceProvider_GarbageIsMalformed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider("hf_test", server.URL, time.Second)
	_, err := provider.Complete(context.Background(), Prompt{User: "x"})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry("")
	if err := registry.Register(&stubProvider{name: "groq"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := registry.Register(&stubProvider{name: "HuggingFace"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := registry.Register(&stubProvider{name: "groq"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	if registry.DefaultProvider() != "groq" {
		t.Fatalf("unexpected default provider: %q", registry.DefaultProvider())
	}

	provider, err := registry.Provider("huggingface")
	if err != nil || provider.Name() != "HuggingFace" {
		t.Fatalf("unexpected provider lookup: %v %v", provider, err)
	}
	if _, err := registry.Provider("deepl"); err == nil {
		t.Fatal("expected unknown provider lookup to fail")
	}
	if got := strings.Join(registry.ProviderNames(), ","); got != "groq,huggingface" {
		t.Fatalf("unexpected provider names: %q", got)
	}
}
