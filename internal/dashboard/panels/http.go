package panels

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	lib *Library
}

// Register attaches the panel content route to rg.
func Register(rg *gin.RouterGroup, lib *Library) {
	h := &Handler{lib: lib}
	rg.GET("/panels/:section", h.get)
}

func (h *Handler) get(c *gin.Context) {
	s, err := ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	p, err := h.lib.Get(s)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "panel": p})
}
