// Package view turns a filtered row set into the map, timeline and list models
// the dashboard draws.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
)

const (
	PlaceholderNoMatches = "No projects match the current filters"
	PlaceholderNoData    = "No data available"
)

type MarkerState string

const (
	MarkerNormal   MarkerState = "normal"
	MarkerSelected MarkerState = "selected"
)

type MarkerStyle struct {
	Size      int     `json:"size"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
	LineWidth int     `json:"line_width"`
}

var (
	normalStyle   = MarkerStyle{Size: 10, Color: "black", Opacity: 0.8, LineWidth: 1}
	selectedStyle = MarkerStyle{Size: 15, Color: "blue", Opacity: 0.9, LineWidth: 2}
)

// Marker is one map point. Name is the click identity sent back as an event.
type Marker struct {
	Name      string      `json:"name"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Tooltip   string      `json:"tooltip"`
	State     MarkerState `json:"state"`
	Style     MarkerStyle `json:"style"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type ListItem struct {
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
	Selected     bool   `json:"selected,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
}

// Views is the render plan for the three synchronized panes.
type Views struct {
	Markers   []Marker    `json:"markers"`
	Histogram []YearCount `json:"histogram"`
	Items     []ListItem  `json:"items"`
}

// Render derives every view from rows. It is a pure function of its inputs.
func Render(rows []domain.Project, selected string) Views {
	return RenderWithPlaceholder(rows, selected, PlaceholderNoMatches)
}

// RenderWithPlaceholder is Render with a custom empty-list message.
func RenderWithPlaceholder(rows []domain.Project, selected, placeholder string) Views {
	marked := filter.Mark(rows, selected)
	return Views{
		Markers:   Markers(marked),
		Histogram: Histogram(rows),
		Items:     ListItems(marked, placeholder),
	}
}

// Markers places every row with coordinates; the selected one comes last so it
// is drawn on top.
func Markers(rows []filter.Row) []Marker {
	out := make([]Marker, 0, len(rows))
	var picked []Marker

	for _, r := range rows {
		if !r.HasCoordinates() {
			continue
		}
		m := Marker{
			Name:      r.Name,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
			Tooltip:   Tooltip(r.Project),
			State:     MarkerNormal,
			Style:     normalStyle,
		}
		if r.Selected {
			m.State = MarkerSelected
			m.Style = selectedStyle
			picked = append(picked, m)
			continue
		}
		out = append(out, m)
	}
	return append(out, picked...)
}

// Tooltip renders the hover text: project, organization, location, material, year.
func Tooltip(p domain.Project) string {
	return strings.Join([]string{
		p.Name,
		p.Organization,
		Location(p),
		"Material: " + string(p.Category),
		fmt.Sprintf("Year: %d", p.Year),
	}, "<br>")
}

// Location formats "City, Country".
func Location(p domain.Project) string {
	return p.City + ", " + p.Country
}

// Histogram counts rows per year, ascending. Years without rows are omitted.
func Histogram(rows []domain.Project) []YearCount {
	counts := make(map[int]int)
	for _, p := range rows {
		counts[p.Year]++
	}

	out := make([]YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ListItems keeps catalog order. An empty set yields one placeholder item.
func ListItems(rows []filter.Row, placeholder string) []ListItem {
	if len(rows) == 0 {
		return []ListItem{{Placeholder: placeholder}}
	}

	out := make([]ListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, ListItem{
			Name:         r.Name,
			Organization: r.Organization,
			Subtitle:     fmt.Sprintf("%d • %s", r.Year, Location(r.Project)),
			Selected:     r.Selected,
		})
	}
	return out
}
