package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
)

const sampleCSV = "\ufeffProject,Year,Country,City,Material,Organization,Latitude,Longitude,Descrtiption,Description,Link\n" +
	"House A,2019,Netherlands,Eindhoven,Concrete,TU/e,51.44,5.47,typo column,clean column,https://a.example\n" +
	"Pavilion,2020.0,Italy,Massa,Clay,WASP,,,,only clean,\n" +
	"Broken year,soon,Italy,Rome,Clay,WASP,1,1,,,\n" +
	"No org,2021,Italy,Rome,Clay,,1,1,,,\n" +
	"Off map,2021,USA,Austin,Plastic,ICON,95,10,,,\n"

func TestRead(t *testing.T) {
	rows, stats, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 5, Kept: 3, Dropped: 2}, stats)
	require.Len(t, rows, 3)

	house := rows[0]
	assert.Equal(t, "House A", house.Name)
	assert.Equal(t, 2019, house.Year)
	assert.Equal(t, domain.CategoryConcrete, house.Category)
	assert.Equal(t, "typo column", house.Description)
	require.True(t, house.HasCoordinates())
	assert.InDelta(t, 51.44, *house.Latitude, 1e-9)

	pavilion := rows[1]
	assert.Equal(t, 2020, pavilion.Year)
	assert.Equal(t, "only clean", pavilion.Description)
	assert.False(t, pavilion.HasCoordinates())
	assert.Empty(t, pavilion.Link)

	// Latitude out of range means no marker, but the row is kept.
	offMap := rows[2]
	assert.False(t, offMap.HasCoordinates())
	assert.Equal(t, domain.CategoryPlastic, offMap.Category)
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("Project,Year,Country\nA,2020,NL\n"))
	assert.Error(t, err)
}

func TestRead_Empty(t *testing.T) {
	_, _, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	cat, stats, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, 3, stats.Kept)

	minY, maxY := cat.Bounds()
	assert.Equal(t, 2019, minY)
	assert.Equal(t, 2021, maxY)
}

func TestLoadFile_MissingFileGivesEmptyCatalog(t *testing.T) {
	cat, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	require.NotNil(t, cat)
	assert.True(t, cat.IsEmpty())
}
