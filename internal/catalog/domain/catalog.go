package domain

// Year bounds reported for an empty catalog so the slider still has a range.
const (
	DefaultMinYear = 2015
	DefaultMaxYear = 2025
)

// Catalog is the read-only table of projects shared by every session.
// Build it with NewCatalog and never modify the slice returned by Projects.
type Catalog struct {
	projects []Project
	byName   map[string]int
	minYear  int
	maxYear  int
}

// NewCatalog copies rows into a new catalog, deriving categories that were left empty.
func NewCatalog(rows []Project) *Catalog {
	c := &Catalog{
		projects: make([]Project, len(rows)),
		byName:   make(map[string]int, len(rows)),
		minYear:  DefaultMinYear,
		maxYear:  DefaultMaxYear,
	}
	copy(c.projects, rows)

	for i := range c.projects {
		p := &c.projects[i]
		if p.Category == "" {
			p.Category = Categorize(p.Material)
		}
		if _, seen := c.byName[p.Name]; !seen {
			c.byName[p.Name] = i
		}
		if i == 0 || p.Year < c.minYear {
			c.minYear = p.Year
		}
		if i == 0 || p.Year > c.maxYear {
			c.maxYear = p.Year
		}
	}
	return c
}

// Empty returns a catalog with no rows.
func Empty() *Catalog {
	return NewCatalog(nil)
}

func (c *Catalog) Projects() []Project { return c.projects }

func (c *Catalog) Len() int { return len(c.projects) }

func (c *Catalog) IsEmpty() bool { return len(c.projects) == 0 }

// Bounds returns the observed [min, max] year.
func (c *Catalog) Bounds() (int, int) { return c.minYear, c.maxYear }

// Lookup returns the first project carrying name.
func (c *Catalog) Lookup(name string) (Project, error) {
	i, ok := c.byName[name]
	if !ok {
		return Project{}, ErrProjectNotFound
	}
	return c.projects[i], nil
}

// CategoryCounts counts projects per category over the whole catalog.
func (c *Catalog) CategoryCounts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, p := range c.projects {
		out[p.Category]++
	}
	return out
}
