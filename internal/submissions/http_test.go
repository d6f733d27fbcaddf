package submissions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	created   []string
	lastLimit int
	err       error
}

func (f *fakeStore) Create(_ context.Context, rawURL, contributor string) (*Submission, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, name, err := Normalize(rawURL, contributor)
	if err != nil {
		return nil, err
	}
	for _, c := range f.created {
		if c == u {
			return nil, ErrDuplicateSubmission
		}
	}
	f.created = append(f.created, u)
	return &Submission{ID: "s1", URL: u, ContributorName: name, Status: StatusPending, CreatedAt: time.Now()}, nil
}

func (f *fakeStore) List(_ context.Context, limit int) ([]Submission, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []Submission{{ID: "s1", URL: "https://example.org", Status: StatusPending}}, nil
}

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(store)
	h.Register(r.Group("/submissions"))
	h.RegisterAdmin(r.Group("/admin/submissions"))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	r := setupRouter(&fakeStore{})

	w := post(r, `{"url":"https://example.org/p","contributor_name":"Kim"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)

	w = post(r, `{"url":"https://example.org/p"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(r, `{"url":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateStoreFailure(t *testing.T) {
	r := setupRouter(&fakeStore{err: errors.New("db down")})

	w := post(r, `{"url":"https://example.org/p"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestHandler_List(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, store.lastLimit)
	assert.Contains(t, w.Body.String(), `"submissions"`)
}
