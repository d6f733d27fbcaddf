package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	assistant "github.com/printcon-atlas/atlas-backend/internal/assistant/domain"
	chat "github.com/printcon-atlas/atlas-backend/internal/assistant/service"
	catalog "github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/events"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/view"
	"github.com/printcon-atlas/atlas-backend/internal/logging"
	"github.com/printcon-atlas/atlas-backend/internal/session/domain"
	"github.com/printcon-atlas/atlas-backend/internal/session/repository"
)

var ErrEmptyMessage = errors.New("message is required")

// CatalogSource hands out the catalog snapshot for one request.
type CatalogSource interface {
	Current() *catalog.Catalog
}

// Plan is everything the dashboard needs to draw a session.
type Plan struct {
	SessionID string           `json:"session_id"`
	State     filter.State     `json:"state"`
	Total     int              `json:"total"`
	Visible   int              `json:"visible"`
	Markers   []view.Marker    `json:"markers"`
	Histogram []view.YearCount `json:"histogram"`
	Items     []view.ListItem  `json:"items"`
	Detail    view.Detail      `json:"detail_panel"`
	InfoPanel *panels.Panel    `json:"info_panel"`
	Chat      []assistant.Turn `json:"chat"`
	Notice    string           `json:"notice,omitempty"`
}

type Service struct {
	store   repository.Store
	catalog CatalogSource
	panels  *panels.Library
	chat    *chat.Orchestrator
}

func NewService(store repository.Store, cat CatalogSource, lib *panels.Library, orch *chat.Orchestrator) *Service {
	return &Service{store: store, catalog: cat, panels: lib, chat: orch}
}

// Create starts a session with every project visible and nothing selected.
func (s *Service) Create(ctx context.Context) (*Plan, error) {
	cat := s.catalog.Current()
	sess := &domain.Session{Filter: filter.Default(cat)}
	if err := s.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	logging.NewLogger(ctx).LogInfof("session.create", "session_id=%s projects=%d", sess.ID, cat.Len())
	return s.render(cat, sess), nil
}

// View renders a stored session. The selection is reconciled against the
// current catalog, which may have been reloaded since the last write.
func (s *Service) View(ctx context.Context, id string) (*Plan, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cat := s.catalog.Current()
	sess.Filter = events.Reconcile(cat, sess.Filter)
	return s.render(cat, sess), nil
}

// Dispatch applies one control event.
func (s *Service) Dispatch(ctx context.Context, id string, ev events.Event) (*Plan, error) {
	cat := s.catalog.Current()
	sess, err := s.store.Update(ctx, id, func(sess *domain.Session) error {
		next, err := events.Reduce(cat, sess.UI(), ev)
		if err != nil {
			return err
		}
		sess.SetUI(next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(cat, sess), nil
}

// Chat runs one assistant exchange. A generator failure is reported inside
// the plan, never as an error. The generator runs against a snapshot of the
// session and its result is merged in a separate short update, so events
// dispatched during the call neither repeat the call nor get lost.
func (s *Service) Chat(ctx context.Context, id, message string) (*Plan, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cat := s.catalog.Current()
	out := s.chat.Handle(ctx, cat, chat.Input{
		Message: message,
		State:   snap.Filter,
		History: snap.History,
		Display: snap.Display,
	})

	sess, err := s.store.Update(ctx, id, func(sess *domain.Session) error {
		sess.Filter, sess.History, sess.Display = chat.Merge(cat, out, sess.Filter, sess.History, sess.Display)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan := s.render(cat, sess)
	plan.Notice = out.Confirmation
	return plan, nil
}

func (s *Service) render(cat *catalog.Catalog, sess *domain.Session) *Plan {
	rows := filter.Apply(cat, sess.Filter)

	placeholder := view.PlaceholderNoMatches
	if cat.IsEmpty() {
		placeholder = view.PlaceholderNoData
	}
	v := view.RenderWithPlaceholder(rows, sess.Filter.Selected, placeholder)

	chatLog := sess.Display
	if chatLog == nil {
		chatLog = []assistant.Turn{}
	}

	var info *panels.Panel
	if s.panels != nil {
		info = s.panels.Open(sess.InfoPanel)
	}

	return &Plan{
		SessionID: sess.ID,
		State:     sess.Filter,
		Total:     cat.Len(),
		Visible:   len(rows),
		Markers:   v.Markers,
		Histogram: v.Histogram,
		Items:     v.Items,
		Detail:    view.DetailFor(cat, sess.Filter.Selected),
		InfoPanel: info,
		Chat:      chatLog,
	}
}
