package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppend(t *testing.T) {
	base := []Turn{UserTurn("a"), AssistantTurn("b")}

	out := Append(base, 3, UserTurn("c"), ErrorTurn("d"))
	assert.Equal(t, []Turn{AssistantTurn("b"), UserTurn("c"), ErrorTurn("d")}, out)
	assert.Len(t, base, 2)
	assert.Equal(t, "a", base[0].Content)

	out[0].Content = "changed"
	assert.Equal(t, "b", base[1].Content)

	assert.Empty(t, Append(nil, 6))
	assert.True(t, ErrorTurn("x").Error)
	assert.Equal(t, RoleAssistant, ErrorTurn("x").Role)
}
