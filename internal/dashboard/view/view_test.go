package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/catalogtest"
	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/filter"
)

func TestRender_Markers(t *testing.T) {
	rows := catalogtest.Projects()
	v := Render(rows, "Printed House A")

	// Polymer Shelter has no coordinates.
	require.Len(t, v.Markers, len(rows)-1)
	for _, m := range v.Markers {
		assert.NotEqual(t, "Polymer Shelter", m.Name)
	}

	last := v.Markers[len(v.Markers)-1]
	assert.Equal(t, "Printed House A", last.Name)
	assert.Equal(t, MarkerSelected, last.State)
	assert.Equal(t, selectedStyle, last.Style)

	for _, m := range v.Markers[:len(v.Markers)-1] {
		assert.Equal(t, MarkerNormal, m.State)
		assert.Equal(t, normalStyle, m.Style)
	}
}

func TestTooltip(t *testing.T) {
	p := domain.NewCatalog(catalogtest.Projects()).Projects()[0]
	assert.Equal(t,
		"Printed House A<br>TU Eindhoven<br>Eindhoven, Netherlands<br>Material: Concrete/Cement<br>Year: 2019",
		Tooltip(p))
}

func TestHistogram(t *testing.T) {
	rows := catalogtest.Projects()
	h := Histogram(rows)

	assert.Equal(t, []YearCount{
		{Year: 2019, Count: 1},
		{Year: 2020, Count: 1},
		{Year: 2021, Count: 2},
		{Year: 2022, Count: 1},
		{Year: 2023, Count: 2},
	}, h)

	sum := 0
	for i, yc := range h {
		sum += yc.Count
		if i > 0 {
			assert.Greater(t, yc.Year, h[i-1].Year)
		}
	}
	assert.Equal(t, len(rows), sum)
}

func TestHistogram_SumMatchesFilteredSets(t *testing.T) {
	cat := catalogtest.Catalog()
	for _, material := range append([]domain.Category{""}, domain.Categories...) {
		s := filter.Default(cat)
		if material != "" {
			s.Material = string(material)
		}
		rows := filter.Apply(cat, s)

		sum := 0
		for _, yc := range Histogram(rows) {
			sum += yc.Count
		}
		assert.Equal(t, len(rows), sum, "material %q", material)
	}
}

func TestListItems(t *testing.T) {
	rows := catalogtest.Projects()[:2]
	items := Render(rows, "Clay Pavilion").Items

	require.Len(t, items, 2)
	assert.Equal(t, "Printed House A", items[0].Name)
	assert.Equal(t, "2019 • Eindhoven, Netherlands", items[0].Subtitle)
	assert.False(t, items[0].Selected)
	assert.True(t, items[1].Selected)
}

func TestRender_EmptySet(t *testing.T) {
	v := Render(nil, "")

	assert.NotNil(t, v.Markers)
	assert.Empty(t, v.Markers)
	assert.NotNil(t, v.Histogram)
	assert.Empty(t, v.Histogram)
	require.Len(t, v.Items, 1)
	assert.Equal(t, PlaceholderNoMatches, v.Items[0].Placeholder)
	assert.Empty(t, v.Items[0].Name)

	v = RenderWithPlaceholder(nil, "", PlaceholderNoData)
	assert.Equal(t, PlaceholderNoData, v.Items[0].Placeholder)
}

func TestDetail(t *testing.T) {
	cat := catalogtest.Catalog()

	assert.False(t, DetailFor(cat, "").Open)
	assert.False(t, DetailFor(cat, "Gone").Open)

	d := DetailFor(cat, "Printed House A")
	assert.True(t, d.Open)
	assert.Equal(t, "2019", d.Year)
	assert.Equal(t, "Eindhoven, Netherlands", d.Location)
	assert.Equal(t, "Visit Project Page", d.LinkLabel)

	d = DetailFor(cat, "Clay Pavilion")
	assert.Equal(t, "No description available", d.Description)
	assert.Equal(t, "No website available", d.LinkLabel)
	assert.Empty(t, d.Link)
}
