package payloadschema

import (
	"strings"
	"testing"
)

func TestDecodeTranslateRequest(t *testing.T) {
	t.Parallel()

	req, err := DecodeTranslateRequest([]byte(`{"text":"yo que hongo","source_language":"auto","target_language":"en","context":"casual chat","extra":1}`))
	if err != nil {
		t.Fatalf("DecodeTranslateRequest returned error: %v", err)
	}
	if req.Text != "yo que hongo" || req.SourceLanguage != "auto" || req.TargetLanguage != "en" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.ContextText() != "casual chat" {
		t.Fatalf("unexpected context: %q", req.ContextText())
	}
}

func TestDecodeTranslateRequest_NullsAndMissingFields(t *testing.T) {
	t.Parallel()

	req, err := DecodeTranslateRequest([]byte(`{"text":"hi","source_language":null,"context":null}`))
	if err != nil {
		t.Fatalf("DecodeTranslateRequest returned error: %v", err)
	}
	if req.SourceLanguage != "" || req.TargetLanguage != "" || req.Context != nil {
		t.Fatalf("expected zero values for null/missing fields, got %+v", req)
	}
}

func TestDecodeTranslateRequest_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "empty", payload: "  ", want: "payload is empty"},
		{name: "trailing", payload: `{"text":"a"} {}`, want: "trailing content"},
		{name: "array", payload: `["text"]`, want: "schema validation failed"},
		{name: "numeric text", payload: `{"text":42,"target_language":"en"}`, want: "schema validation failed"},
		{name: "object context", payload: `{"text":"a","target_language":"en","context":{"tone":"casual"}}`, want: "schema validation failed"},
		{name: "broken json", payload: `{"text":`, want: "decode payload JSON"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeTranslateRequest([]byte(tc.payload))
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error: got %v want substring %q", err, tc.want)
			}
		})
	}
}
