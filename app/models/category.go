package models

// AllCategories is the filter value that selects every category.
const AllCategories = "all"

// Categories is the fixed category list, in display order.
var Categories = []Category{
	{ID: "home", Label: "Home & Errands"},
	{ID: "care", Label: "Care & Support"},
	{ID: "learning", Label: "Learning & Tech"},
	{ID: "community", Label: "Community & Services"},
	{ID: "washing", Label: "Washing and Settings"},
}

// CategoryLabel returns the display label for id, or id itself when the
// category is unknown.
func CategoryLabel(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// IsKnownCategory reports whether id is one of Categories.
func IsKnownCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
