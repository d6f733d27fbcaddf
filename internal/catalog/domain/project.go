package domain

import "errors"

var ErrProjectNotFound = errors.New("project not found")

// Project is one row of the catalog. Values are never mutated after load.
type Project struct {
	Name         string   `json:"name"`
	Year         int      `json:"year"`
	Country      string   `json:"country"`
	City         string   `json:"city,omitempty"`
	Organization string   `json:"organization"`
	Material     string   `json:"material"`
	Category     Category `json:"material_category"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Description  string   `json:"description,omitempty"`
	Link         string   `json:"link,omitempty"`
}

// HasCoordinates reports whether the project can be placed on the map.
func (p Project) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}
