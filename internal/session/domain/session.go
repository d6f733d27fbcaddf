package domain

import (
	"errors"
	"time"

	assistant "github.com/printcon-atlas/atlas-backend/internal/assistant/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/events"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionConflict = errors.New("session modified concurrently")
)

// Session is the per-visitor dashboard state. It is stored whole and
// replaced whole on every request.
type Session struct {
	ID        string           `json:"id"`
	Filter    filter.State     `json:"filter"`
	InfoPanel panels.Section   `json:"info_panel,omitempty"`
	History   []assistant.Turn `json:"history,omitempty"`
	Display   []assistant.Turn `json:"display,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (s *Session) UI() events.UIState {
	return events.UIState{Filter: s.Filter, InfoPanel: s.InfoPanel}
}

func (s *Session) SetUI(ui events.UIState) {
	s.Filter = ui.Filter
	s.InfoPanel = ui.InfoPanel
}
