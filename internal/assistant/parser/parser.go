// Package parser turns a chat message into a structured filter intent using
// keyword and regex matching.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
)

const (
	minYear = 1900
	maxYear = 2099
)

// Intent is what a message asks the dashboard to do. Reset overrides the
// other fields when the intent is applied.
type Intent struct {
	Material  *domain.Category  `json:"material,omitempty"`
	YearRange *filter.YearRange `json:"year_range,omitempty"`
	Reset     bool              `json:"reset,omitempty"`
}

// Empty reports whether the message carried no filter instruction at all.
func (i Intent) Empty() bool {
	return i.Material == nil && i.YearRange == nil && !i.Reset
}

type materialKeyword struct {
	keyword  string
	category domain.Category
}

var materialKeywords = []materialKeyword{
	{"concrete", domain.CategoryConcrete},
	{"cement", domain.CategoryConcrete},
	{"ceramic", domain.CategoryCeramics},
	{"clay", domain.CategoryCeramics},
	{"composite", domain.CategoryComposite},
	{"plastic", domain.CategoryPlastic},
	{"polymer", domain.CategoryPlastic},
	{"metal", domain.CategoryMetal},
	{"experimental", domain.CategoryExperimental},
}

var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:from|between)\s+(\d{4})\s+(?:to|and)\s+(\d{4})`),
	regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`),
	regexp.MustCompile(`(\d{4})\s+to\s+(\d{4})`),
}

var yearToken = regexp.MustCompile(`\b(20[0-9]{2}|19[0-9]{2})\b`)

var resetKeywords = []string{"reset", "clear", "all projects", "show all", "remove filters", "no filter"}

// Parse extracts material, year range and reset from message. All three are
// detected independently.
func Parse(message string) Intent {
	lower := strings.ToLower(message)

	var out Intent
	if c, ok := parseMaterial(lower); ok {
		out.Material = &c
	}
	if r, ok := parseYearRange(message, lower); ok {
		out.YearRange = &r
	}
	for _, kw := range resetKeywords {
		if strings.Contains(lower, kw) {
			out.Reset = true
			break
		}
	}
	return out
}

func parseMaterial(lower string) (domain.Category, bool) {
	for _, m := range materialKeywords {
		if strings.Contains(lower, m.keyword) {
			return m.category, true
		}
	}
	return "", false
}

func parseYearRange(raw, lower string) (filter.YearRange, bool) {
	for _, re := range rangePatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			a, okA := year(m[1])
			b, okB := year(m[2])
			if okA && okB {
				return filter.NewYearRange(a, b), true
			}
		}
	}

	// No explicit range; fall back to bare year tokens in the raw message.
	var years []int
	for _, tok := range yearToken.FindAllString(raw, -1) {
		y, _ := strconv.Atoi(tok)
		if !containsInt(years, y) {
			years = append(years, y)
		}
		if len(years) == 2 {
			break
		}
	}
	switch len(years) {
	case 0:
		return filter.YearRange{}, false
	case 1:
		return filter.NewYearRange(years[0], years[0]), true
	default:
		return filter.NewYearRange(years[0], years[1]), true
	}
}

func year(s string) (int, bool) {
	y, err := strconv.Atoi(s)
	if err != nil || y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
