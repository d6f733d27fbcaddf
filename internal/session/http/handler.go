package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcon-atlas/atlas-backend/internal/dashboard/events"
	"github.com/printcon-atlas/atlas-backend/internal/logging"
	"github.com/printcon-atlas/atlas-backend/internal/session/domain"
	"github.com/printcon-atlas/atlas-backend/internal/session/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.POST("/:id/events", h.dispatch)
	rg.POST("/:id/chat", h.chat)
}

func (h *Handler) create(c *gin.Context) {
	plan, err := h.svc.Create(c.Request.Context())
	if err != nil {
		h.fail(c, "session.create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) get(c *gin.Context) {
	plan, err := h.svc.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "session.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) dispatch(c *gin.Context) {
	var ev events.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	plan, err := h.svc.Dispatch(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		h.fail(c, "session.dispatch", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": plan})
}

type chatReq struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	plan, err := h.svc.Chat(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		h.fail(c, "session.chat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plan": plan})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
	case errors.Is(err, events.ErrInvalidEvent), errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrSessionConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.NewLogger(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
