package domain

import "strings"

// Category is the coarse material bucket a project is filed under.
type Category string

const (
	CategoryConcrete     Category = "Concrete/Cement"
	CategoryCeramics     Category = "Ceramics/Clay"
	CategoryComposite    Category = "Composite"
	CategoryPlastic      Category = "Plastic/Polymer"
	CategoryMetal        Category = "Metal"
	CategoryExperimental Category = "Other/Experimental"
)

// Categories lists every category in dropdown order.
var Categories = []Category{
	CategoryConcrete,
	CategoryCeramics,
	CategoryComposite,
	CategoryPlastic,
	CategoryMetal,
	CategoryExperimental,
}

type categoryRule struct {
	terms    []string
	category Category
}

// Order matters: the first rule with a matching term wins.
var categoryRules = []categoryRule{
	{terms: []string{"concrete", "cement"}, category: CategoryConcrete},
	{terms: []string{"ceramic", "clay"}, category: CategoryCeramics},
	{terms: []string{"composite"}, category: CategoryComposite},
	{terms: []string{"plastic", "polymer"}, category: CategoryPlastic},
	{terms: []string{"metal"}, category: CategoryMetal},
}

// Categorize maps a free-text material description to exactly one Category.
func Categorize(material string) Category {
	lower := strings.ToLower(material)
	for _, rule := range categoryRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.category
			}
		}
	}
	return CategoryExperimental
}

// ParseCategory accepts the exact category label used by the dashboard dropdown.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
