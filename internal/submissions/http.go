package submissions

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printcon-atlas/atlas-backend/internal/logging"
)

// Store is what the handlers need from Repo.
type Store interface {
	Create(ctx context.Context, rawURL, contributor string) (*Submission, error)
	List(ctx context.Context, limit int) ([]Submission, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the public submission endpoint.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
}

// RegisterAdmin mounts the review listing. rg must be guarded by the API key
// middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}

type createReq struct {
	URL             string `json:"url"`
	ContributorName string `json:"contributor_name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.store.Create(c.Request.Context(), req.URL, req.ContributorName)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"ok": true, "submission": s})
	case errors.Is(err, ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.NewLogger(c.Request.Context()).LogError("submissions.create", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	items, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("submissions.list", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "submissions": items})
}
