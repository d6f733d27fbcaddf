package llm

import (
	"context"
	"errors"
	"os"
	"strings"
)

var ErrNoAPIKey = errors.New("api key not found")

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one completion call. Messages are replayed in order after System.
type Request struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Generator produces a single reply for req.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ResolveAPIKey prefers key and falls back to the first line of file.
func ResolveAPIKey(key, file string) (string, error) {
	if k := strings.TrimSpace(key); k != "" {
		return k, nil
	}
	if file == "" {
		return "", ErrNoAPIKey
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return "", ErrNoAPIKey
	}
	k := strings.TrimSpace(string(b))
	if i := strings.IndexByte(k, '\n'); i >= 0 {
		k = strings.TrimSpace(k[:i])
	}
	if k == "" {
		return "", ErrNoAPIKey
	}
	return k, nil
}
