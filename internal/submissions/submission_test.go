package submissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	u, name, err := Normalize("  https://example.org/a?b=1  ", "  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/a?b=1", u)
	assert.Equal(t, "Sam", name)

	bad := []string{
		"",
		"   ",
		"example.org/no-scheme",
		"mailto:someone@example.org",
		"ftp://example.org/file",
		"https://",
		"https://example.org/" + strings.Repeat("a", maxURLLen),
	}
	for _, raw := range bad {
		_, _, err := Normalize(raw, "")
		assert.ErrorIs(t, err, ErrInvalidSubmission, raw)
	}

	_, _, err = Normalize("https://example.org", strings.Repeat("n", maxNameLen+1))
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}
