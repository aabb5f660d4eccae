package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/skycast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsPayloadAndAuth(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" Pack a raincoat! "}}]}`))
	}))
	defer ts.Close()

	p := NewOpenAI(ts.URL, "sk-test")

	got, err := p.Complete(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "You are a weather assistant."},
		{Role: core.RoleUser, Content: "umbrella?"},
	}, core.SamplingConfig{Model: "gpt-3.5-turbo", MaxTokens: 150, Temperature: 0.7})

	require.NoError(t, err)
	assert.Equal(t, "Pack a raincoat!", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotPayload["model"])
	assert.Equal(t, float64(150), gotPayload["max_tokens"])
	assert.Equal(t, 0.7, gotPayload["temperature"])

	messages, ok := gotPayload["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestCompleteNotConfigured(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	p := NewOpenAI(ts.URL, "")

	_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.SamplingConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	// No network call is attempted without a key.
	assert.Zero(t, calls)
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	p := NewOpenAI(ts.URL, "sk-test")

	_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.SamplingConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty choices", body: `{"choices":[]}`},
		{name: "blank content", body: `{"choices":[{"message":{"content":"  "}}]}`},
		{name: "not json", body: `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			p := NewOpenAI(ts.URL, "sk-test")
			_, err := p.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.SamplingConfig{})
			assert.Error(t, err)
		})
	}
}
