// Package filter narrows the catalog down to the rows a session is looking at.
package filter

import (
	"strings"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
)

// MaterialAll disables the material filter.
const MaterialAll = "all"

// YearRange is an inclusive [min, max] pair, serialised as a two-element array.
type YearRange [2]int

// NewYearRange orders a and b so that the range is never inverted.
func NewYearRange(a, b int) YearRange {
	if a > b {
		a, b = b, a
	}
	return YearRange{a, b}
}

func (r YearRange) Min() int { return r[0] }
func (r YearRange) Max() int { return r[1] }

func (r YearRange) Contains(year int) bool {
	return r[0] <= year && year <= r[1]
}

// State is the filter criteria of one session.
type State struct {
	Material  string    `json:"material_category"`
	YearRange YearRange `json:"year_range"`
	Search    string    `json:"search_text,omitempty"`
	Selected  string    `json:"selected_project,omitempty"`
}

// Default is the state of a fresh session: every material, the full year span.
func Default(cat *domain.Catalog) State {
	minY, maxY := cat.Bounds()
	return State{
		Material:  MaterialAll,
		YearRange: NewYearRange(minY, maxY),
	}
}

// Apply returns the catalog rows matching s, in catalog order.
// Selection has no effect on the result. The search text is only
// lowercased, so surrounding spaces take part in the match.
func Apply(cat *domain.Catalog, s State) []domain.Project {
	search := strings.ToLower(s.Search)
	out := make([]domain.Project, 0, cat.Len())

	for _, p := range cat.Projects() {
		if !s.YearRange.Contains(p.Year) {
			continue
		}
		if s.Material != MaterialAll && s.Material != "" && string(p.Category) != s.Material {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Project, needle string) bool {
	for _, field := range []string{p.Name, p.Organization, p.Country, p.City, p.Material} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Row pairs a filtered project with its highlight flag.
type Row struct {
	domain.Project
	Selected bool `json:"selected"`
}

// Mark flags the row whose name equals selected.
func Mark(rows []domain.Project, selected string) []Row {
	out := make([]Row, len(rows))
	for i, p := range rows {
		out[i] = Row{Project: p, Selected: selected != "" && p.Name == selected}
	}
	return out
}

// Contains reports whether name is among rows.
func Contains(rows []domain.Project, name string) bool {
	for _, p := range rows {
		if p.Name == name {
			return true
		}
	}
	return false
}
