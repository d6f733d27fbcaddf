package panels

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSection(t *testing.T) {
	s, err := ParseSection("updates")
	require.NoError(t, err)
	assert.Equal(t, Updates, s)

	_, err = ParseSection("contact")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestToggle(t *testing.T) {
	s := Toggle(None, AboutPlatform)
	assert.Equal(t, AboutPlatform, s)

	s = Toggle(s, DataCollection)
	assert.Equal(t, DataCollection, s)

	s = Toggle(s, DataCollection)
	assert.Equal(t, None, s)
}

func TestLoad(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)

	for _, s := range []Section{AboutPlatform, DataCollection, Updates} {
		p, err := lib.Get(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, p.Section)
		assert.NotEmpty(t, p.Title, s)
	}

	updates, _ := lib.Get(Updates)
	assert.NotEmpty(t, updates.Entries)

	assert.Nil(t, lib.Open(None))
	require.NotNil(t, lib.Open(AboutPlatform))
	assert.Equal(t, AboutPlatform, lib.Open(AboutPlatform).Section)
}

func TestParse_RejectsUnknownSection(t *testing.T) {
	_, err := Parse([]byte("contact:\n  title: Contact\n"))
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lib, err := Load()
	require.NoError(t, err)

	r := gin.New()
	Register(r.Group("/api/v1"), lib)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/panels/data-collection", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"section":"data-collection"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/panels/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
