package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/logging"
)

// LoadFunc produces a fresh catalog snapshot.
type LoadFunc func(ctx context.Context) (*domain.Catalog, error)

// Holder hands out the current catalog snapshot. Readers never lock; a reload
// replaces the whole snapshot at once.
type Holder struct {
	current atomic.Pointer[domain.Catalog]
	load    LoadFunc
}

func NewHolder(initial *domain.Catalog, load LoadFunc) *Holder {
	h := &Holder{load: load}
	if initial == nil {
		initial = domain.Empty()
	}
	h.current.Store(initial)
	return h
}

// Current returns the snapshot in effect for this request.
func (h *Holder) Current() *domain.Catalog {
	return h.current.Load()
}

// Reload loads a new snapshot. A failed or empty load keeps the previous one
// unless the previous one is empty as well.
func (h *Holder) Reload(ctx context.Context) error {
	logger := logging.NewLogger(ctx)
	if h.load == nil {
		return fmt.Errorf("catalog reload not configured")
	}

	next, err := h.load(ctx)
	if err != nil {
		logger.LogError("catalog_reload", err)
		return fmt.Errorf("reload catalog: %w", err)
	}
	if next == nil || (next.IsEmpty() && !h.Current().IsEmpty()) {
		logger.LogWarnf("catalog_reload", "reload produced no rows, keeping %d projects", h.Current().Len())
		return nil
	}

	h.current.Store(next)
	minY, maxY := next.Bounds()
	logger.LogInfof("catalog_reload", "catalog now holds %d projects (%d-%d)", next.Len(), minY, maxY)
	return nil
}
