// Package events reduces typed dashboard events into the next session UI state.
package events

import (
	"errors"
	"fmt"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/selection"
)

var ErrInvalidEvent = errors.New("invalid event")

type Type string

const (
	MaterialChanged  Type = "material_changed"
	YearRangeChanged Type = "year_range_changed"
	SearchChanged    Type = "search_changed"
	SearchCleared    Type = "search_cleared"
	MarkerClicked    Type = "marker_clicked"
	ListItemClicked  Type = "list_item_clicked"
	PanelClosed      Type = "panel_closed"
	InfoPanelToggled Type = "info_panel_toggled"
	InfoPanelClosed  Type = "info_panel_closed"
)

// Event is what a dashboard control sends. Only the payload field that belongs
// to Type is read.
type Event struct {
	Type      Type              `json:"type"`
	Material  string            `json:"material,omitempty"`
	YearRange *filter.YearRange `json:"year_range,omitempty"`
	Search    string            `json:"search,omitempty"`
	Project   string            `json:"project,omitempty"`
	Section   string            `json:"section,omitempty"`
}

// UIState is everything a session's controls can change.
type UIState struct {
	Filter    filter.State   `json:"filter"`
	InfoPanel panels.Section `json:"info_panel,omitempty"`
}

// Reduce applies ev to ui. The returned state has its selection reconciled
// against the catalog, so a selection hidden by the new filters is dropped.
func Reduce(cat *domain.Catalog, ui UIState, ev Event) (UIState, error) {
	next := ui

	switch ev.Type {
	case MaterialChanged:
		if ev.Material != filter.MaterialAll {
			if _, ok := domain.ParseCategory(ev.Material); !ok {
				return ui, fmt.Errorf("%w: unknown material %q", ErrInvalidEvent, ev.Material)
			}
		}
		next.Filter.Material = ev.Material

	case YearRangeChanged:
		if ev.YearRange == nil {
			return ui, fmt.Errorf("%w: year_range is required", ErrInvalidEvent)
		}
		next.Filter.YearRange = filter.NewYearRange(ev.YearRange[0], ev.YearRange[1])

	case SearchChanged:
		next.Filter.Search = ev.Search

	case SearchCleared:
		next.Filter.Search = ""

	case MarkerClicked, ListItemClicked:
		if ev.Project == "" {
			return ui, fmt.Errorf("%w: project is required", ErrInvalidEvent)
		}
		next.Filter.Selected = selection.Click(ui.Filter.Selected, ev.Project)

	case PanelClosed:
		next.Filter.Selected = selection.Close(ui.Filter.Selected)

	case InfoPanelToggled:
		s, err := panels.ParseSection(ev.Section)
		if err != nil {
			return ui, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		next.InfoPanel = panels.Toggle(ui.InfoPanel, s)

	case InfoPanelClosed:
		next.InfoPanel = panels.None

	default:
		return ui, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, ev.Type)
	}

	next.Filter = Reconcile(cat, next.Filter)
	return next, nil
}

// Reconcile clears the selection when the selected project is not in the
// filtered set any more.
func Reconcile(cat *domain.Catalog, s filter.State) filter.State {
	if !selection.IsSelected(s.Selected) {
		return s
	}
	if !filter.Contains(filter.Apply(cat, s), s.Selected) {
		s.Selected = selection.None
	}
	return s
}
