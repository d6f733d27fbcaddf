package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/view"
)

// Source returns the catalog snapshot to serve.
type Source interface {
	Current() *domain.Catalog
}

type Handler struct {
	src Source
}

func Register(rg *gin.RouterGroup, src Source) {
	h := &Handler{src: src}

	rg.GET("", h.summary)
	rg.GET("/projects/:name", h.project)
}

type categoryCount struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
}

func (h *Handler) summary(c *gin.Context) {
	cat := h.src.Current()
	minY, maxY := cat.Bounds()

	counts := cat.CategoryCounts()
	categories := make([]categoryCount, 0, len(domain.Categories))
	for _, k := range domain.Categories {
		categories = append(categories, categoryCount{Category: k, Count: counts[k]})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"total":      cat.Len(),
		"year_range": filter.NewYearRange(minY, maxY),
		"categories": categories,
		"materials":  append([]string{filter.MaterialAll}, categoryNames()...),
	})
}

func (h *Handler) project(c *gin.Context) {
	p, err := h.src.Current().Lookup(c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "detail": view.DetailOf(p)})
}

func categoryNames() []string {
	out := make([]string, len(domain.Categories))
	for i, k := range domain.Categories {
		out[i] = string(k)
	}
	return out
}
