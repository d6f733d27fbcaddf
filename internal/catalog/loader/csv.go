package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
)

// Column names as they appear in the curated spreadsheet export.
const (
	ColProject      = "project"
	ColYear         = "year"
	ColCountry      = "country"
	ColCity         = "city"
	ColMaterial     = "material"
	ColOrganization = "organization"
	ColLatitude     = "latitude"
	ColLongitude    = "longitude"
	ColDescription  = "description"
	ColLink         = "link"

	// colDescriptionTypo is the misspelt header still produced by the upstream sheet.
	colDescriptionTypo = "descrtiption"
)

var requiredColumns = []string{ColProject, ColYear, ColCountry, ColMaterial, ColOrganization}

// Stats describes what happened to the rows of one load.
type Stats struct {
	Rows    int
	Kept    int
	Dropped int
}

// LoadFile reads the catalog CSV at path. On any error the returned catalog is
// empty but usable, so callers may log the error and keep serving.
func LoadFile(path string) (*domain.Catalog, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Empty(), Stats{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	rows, stats, err := Read(f)
	if err != nil {
		return domain.Empty(), stats, err
	}
	return domain.NewCatalog(rows), stats, nil
}

// Read parses catalog rows. Rows missing a required field or carrying a
// non-numeric year are dropped, not defaulted.
func Read(r io.Reader) ([]domain.Project, Stats, error) {
	var stats Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, fmt.Errorf("catalog has no header row")
		}
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	idx := mapHeaderIndices(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, stats, fmt.Errorf("expected header %q not found", col)
		}
	}

	out := make([]domain.Project, 0, 64)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stats, fmt.Errorf("csv read error: %w", err)
		}
		stats.Rows++

		p, ok := projectFromRecord(rec, idx)
		if !ok {
			stats.Dropped++
			continue
		}
		out = append(out, p)
		stats.Kept++
	}
	return out, stats, nil
}

func mapHeaderIndices(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

func projectFromRecord(rec []string, idx map[string]int) (domain.Project, bool) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	p := domain.Project{
		Name:         get(ColProject),
		Country:      get(ColCountry),
		City:         get(ColCity),
		Organization: get(ColOrganization),
		Material:     get(ColMaterial),
		Link:         get(ColLink),
	}
	if p.Name == "" || p.Country == "" || p.Material == "" || p.Organization == "" {
		return domain.Project{}, false
	}

	year, ok := parseYear(get(ColYear))
	if !ok {
		return domain.Project{}, false
	}
	p.Year = year

	p.Description = get(colDescriptionTypo)
	if p.Description == "" {
		p.Description = get(ColDescription)
	}

	lat, latOK := parseCoordinate(get(ColLatitude), 90)
	lon, lonOK := parseCoordinate(get(ColLongitude), 180)
	if latOK && lonOK {
		p.Latitude = &lat
		p.Longitude = &lon
	}

	p.Category = domain.Categorize(p.Material)
	return p, true
}

// parseYear accepts "2021" as well as spreadsheet floats such as "2021.0".
func parseYear(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func parseCoordinate(s string, limit float64) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > limit {
		return 0, false
	}
	return f, true
}
