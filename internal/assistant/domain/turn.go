package domain

import "errors"

var ErrAssistantUnavailable = errors.New("assistant unavailable")

const (
	// HistoryLimit is how many turns are replayed to the generator.
	HistoryLimit = 6
	// DisplayLimit is how many turns the chat log keeps.
	DisplayLimit = 20
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one chat message. Error marks an assistant turn that reports a
// failure instead of a reply.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Error   bool   `json:"error,omitempty"`
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

func ErrorTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content, Error: true}
}

// Append returns a new slice holding turns followed by more, keeping only
// the last limit entries. The input slice is never modified.
func Append(turns []Turn, limit int, more ...Turn) []Turn {
	out := make([]Turn, 0, len(turns)+len(more))
	out = append(out, turns...)
	out = append(out, more...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
