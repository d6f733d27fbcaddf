package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Generate(t *testing.T) {
	ResetMetrics()

	var got completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Printed walls!  "}}]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(ClientOptions{BaseURL: server.URL + "/", APIKey: "sk-test"})
	reply, err := c.Generate(context.Background(), Request{
		System:      "ctx",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Printed walls!", reply)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 150, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, Message{Role: RoleSystem, Content: "ctx"}, got.Messages[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, got.Messages[1])

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Calls())
	assert.Equal(t, int64(0), m.Errors())
}

func TestOpenAIClient_ErrorStatus(t *testing.T) {
	ResetMetrics()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(ClientOptions{BaseURL: server.URL, APIKey: "bad"})
	_, err := c.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Errors())
	assert.InDelta(t, 100, m.ErrorRate(), 1e-9)
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewOpenAIClient(ClientOptions{BaseURL: server.URL, APIKey: "k"})
	_, err := c.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestOpenAIClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := NewOpenAIClient(ClientOptions{BaseURL: server.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
	_, err := c.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestOpenAIClient_NoKey(t *testing.T) {
	c := NewOpenAIClient(ClientOptions{})
	_, err := c.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestResolveAPIKey(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "API.txt")
	require.NoError(t, os.WriteFile(file, []byte("  sk-from-file\nsecond line\n"), 0o600))

	k, err := ResolveAPIKey(" sk-env ", file)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", k)

	k, err = ResolveAPIKey("", file)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", k)

	_, err = ResolveAPIKey("", filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = ResolveAPIKey("", "")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	_, err = ResolveAPIKey("", empty)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
