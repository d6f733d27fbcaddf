// Package summary derives the statistics the assistant is grounded on.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/view"
)

const (
	topN        = 5
	contextTopN = 3

	growthFactor  = 1.5
	declineFactor = 0.7
)

type Trend string

const (
	TrendNone      Trend = "No clear trend"
	TrendGrowing   Trend = "Growing"
	TrendDeclining Trend = "Declining"
	TrendSteady    Trend = "Steady"
)

// Label is the phrase handed to the assistant.
func (t Trend) Label() string {
	switch t {
	case TrendGrowing:
		return "Growing rapidly in recent years"
	case TrendDeclining:
		return "Declining in recent years"
	case TrendSteady:
		return "Steady activity over time"
	}
	return string(TrendNone)
}

// Share is one bucket of a breakdown.
type Share struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func (s Share) String() string {
	return fmt.Sprintf("%s: %d (%.0f%%)", s.Name, s.Count, s.Percent)
}

type Summary struct {
	Total           int              `json:"total"`
	Material        string           `json:"material"`
	YearRange       filter.YearRange `json:"year_range"`
	Materials       []Share          `json:"materials"`
	Countries       []Share          `json:"countries"`
	Trend           Trend            `json:"trend"`
	LeadingOrg      string           `json:"leading_org"`
	LeadingOrgCount int              `json:"leading_org_count"`
}

// Build summarises rows, the set filtered under s.
func Build(rows []domain.Project, s filter.State) Summary {
	out := Summary{
		Total:      len(rows),
		Material:   s.Material,
		YearRange:  s.YearRange,
		Trend:      ClassifyTrend(view.Histogram(rows)),
		LeadingOrg: "None",
	}

	out.Materials = top(rows, func(p domain.Project) string { return string(p.Category) }, topN)
	out.Countries = top(rows, func(p domain.Project) string { return p.Country }, topN)
	if orgs := top(rows, func(p domain.Project) string { return p.Organization }, 1); len(orgs) > 0 {
		out.LeadingOrg = orgs[0].Name
		out.LeadingOrgCount = orgs[0].Count
	}
	return out
}

// ClassifyTrend compares the mean yearly count of the earliest third of the
// active years against the latest third. Years without projects are not
// part of the span.
func ClassifyTrend(hist []view.YearCount) Trend {
	n := len(hist)
	if n < 2 {
		return TrendNone
	}
	w := n / 3
	if w < 1 {
		w = 1
	}

	early := meanCount(hist[:w])
	late := meanCount(hist[n-w:])
	switch {
	case late > early*growthFactor:
		return TrendGrowing
	case late < early*declineFactor:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

func meanCount(hist []view.YearCount) float64 {
	sum := 0
	for _, h := range hist {
		sum += h.Count
	}
	return float64(sum) / float64(len(hist))
}

// top counts key over rows and keeps the n largest buckets. Ties keep the
// order in which the buckets first appeared. Empty keys are skipped.
func top(rows []domain.Project, key func(domain.Project) string, n int) []Share {
	counts := map[string]int{}
	var order []string
	for _, p := range rows {
		k := strings.TrimSpace(key(p))
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}

	out := make([]Share, 0, len(order))
	for _, k := range order {
		pct := 0.0
		if len(rows) > 0 {
			pct = float64(counts[k]) / float64(len(rows)) * 100
		}
		out = append(out, Share{Name: k, Count: counts[k], Percent: pct})
	}
	return out
}

const persona = `You are a charming and witty analyst of 3D printed construction. Be engaging and drop in the occasional joke or surprising fact about construction or 3D printing.

When first greeted, welcome the user and explain that they can explore this interactive database of 3D printed construction projects. Mention that the database and you are both still learning, and invite them to add projects with the link above. Then ask them to guess when the very first 3D printed construction project happened, without giving the answer away.

HISTORICAL CONTEXT: Ralph Baker filed the first 3D printing construction patent in 1925 (a WAAM concept) and William Urschel built the first printed building in 1939. Do not bring up the 1980s, that is plastic printing, not construction.`

const closing = `Be conversational and entertaining while staying informative. Avoid naming specific organizations, companies or countries unless asked. Keep answers to 2-3 sentences and finish the thought within the token limit.`

// Context renders the system prompt for the assistant.
func (s Summary) Context() string {
	material := s.Material
	if material == "" || material == filter.MaterialAll {
		material = "All materials"
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "CURRENT DATASET (%d projects):\n", s.Total)
	fmt.Fprintf(&b, "- Filter: %s | Years: %d-%d\n\n", material, s.YearRange.Min(), s.YearRange.Max())
	fmt.Fprintf(&b, "TOP MATERIALS: %s\n", joinShares(s.Materials, contextTopN))
	fmt.Fprintf(&b, "TOP COUNTRIES: %s\n", joinShares(s.Countries, contextTopN))
	fmt.Fprintf(&b, "TREND: %s\n", s.Trend.Label())
	fmt.Fprintf(&b, "LEADING ORG: %s (%d projects)\n\n", s.LeadingOrg, s.LeadingOrgCount)
	b.WriteString(closing)
	return b.String()
}

func joinShares(shares []Share, n int) string {
	if len(shares) > n {
		shares = shares[:n]
	}
	if len(shares) == 0 {
		return "none"
	}
	parts := make([]string, len(shares))
	for i, s := range shares {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}
