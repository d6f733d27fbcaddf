// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import "github.com/printcon-atlas/atlas-backend/internal/catalog/domain"

func coord(v float64) *float64 { return &v }

// Projects returns seven projects spanning 2019-2023. "Polymer Shelter" has
// no coordinates.
func Projects() []domain.Project {
	return []domain.Project{
		{
			Name: "Printed House A", Year: 2019, Country: "Netherlands", City: "Eindhoven",
			Organization: "TU Eindhoven", Material: "Concrete",
			Latitude: coord(51.44), Longitude: coord(5.47),
			Description: "First printed rental home.", Link: "https://example.org/house-a",
		},
		{
			Name: "Clay Pavilion", Year: 2020, Country: "Italy", City: "Massa Lombarda",
			Organization: "WASP", Material: "Local clay",
			Latitude: coord(44.45), Longitude: coord(11.82),
		},
		{
			Name: "Steel Bridge", Year: 2021, Country: "Netherlands", City: "Amsterdam",
			Organization: "MX3D", Material: "Metal (stainless steel)",
			Latitude: coord(52.37), Longitude: coord(4.90),
			Link: "https://example.org/bridge",
		},
		{
			Name: "Polymer Shelter", Year: 2021, Country: "USA", City: "Austin",
			Organization: "ICON", Material: "Recycled plastic",
		},
		{
			Name: "Composite Dome", Year: 2022, Country: "Germany", City: "Berlin",
			Organization: "PERI", Material: "Fiber composite",
			Latitude: coord(52.52), Longitude: coord(13.40),
		},
		{
			Name: "Mystery Hut", Year: 2023, Country: "Japan", City: "Tokyo",
			Organization: "Obayashi", Material: "Mycelium",
			Latitude: coord(35.68), Longitude: coord(139.69),
		},
		{
			Name: "Village Homes", Year: 2023, Country: "Mexico", City: "Nacajuca",
			Organization: "ICON", Material: "Lavacrete cement",
			Latitude: coord(18.17), Longitude: coord(-93.02),
		},
	}
}

// Catalog wraps Projects.
func Catalog() *domain.Catalog {
	return domain.NewCatalog(Projects())
}
