package view

import (
	"strconv"

	"github.com/printcon-atlas/atlas-backend/internal/catalog/domain"
)

const (
	noDescription = "No description available"
	noWebsite     = "No website available"
)

// Detail is the side panel for the selected project. Open is false when
// nothing is selected.
type Detail struct {
	Open         bool   `json:"open"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Organization string `json:"organization,omitempty"`
	Year         string `json:"year,omitempty"`
	Location     string `json:"location,omitempty"`
	Material     string `json:"material,omitempty"`
	Link         string `json:"link,omitempty"`
	LinkLabel    string `json:"link_label,omitempty"`
}

// DetailFor builds the panel for selected, or a closed panel when selected is
// empty or no longer in the catalog.
func DetailFor(cat *domain.Catalog, selected string) Detail {
	if selected == "" {
		return Detail{}
	}
	p, err := cat.Lookup(selected)
	if err != nil {
		return Detail{}
	}
	return DetailOf(p)
}

func DetailOf(p domain.Project) Detail {
	d := Detail{
		Open:         true,
		Name:         p.Name,
		Description:  p.Description,
		Organization: p.Organization,
		Year:         strconv.Itoa(p.Year),
		Location:     Location(p),
		Material:     p.Material,
		Link:         p.Link,
		LinkLabel:    "Visit Project Page",
	}
	if d.Description == "" {
		d.Description = noDescription
	}
	if d.Link == "" {
		d.LinkLabel = noWebsite
	}
	return d
}
