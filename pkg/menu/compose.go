package menu

// CustomCategory is a user-defined catalog category supplied at runtime.
type CustomCategory struct {
	Name  string `json:"name" yaml:"name" koanf:"name"`
	Type  string `json:"type" yaml:"type" koanf:"type"`
	Query string `json:"query" yaml:"query" koanf:"query"`
}

// CategorySource supplies the runtime custom categories.
type CategorySource interface {
	CustomCategories() []CustomCategory
}

// HasCustomCategories reports whether src supplies at least one category.
// A nil source counts as an empty list.
func HasCustomCategories(src CategorySource) bool {
	if src == nil {
		return false
	}
	return len(src.CustomCategories()) > 0
}

// BuildMenu returns a copy of base, with CustomEntry appended when
// extraCategoriesPresent is set.
func BuildMenu(base []Entry, extraCategoriesPresent bool) []Entry {
	n := len(base)
	if extraCategoriesPresent {
		n++
	}

	out := make([]Entry, 0, n)
	out = append(out, base...)
	if extraCategoriesPresent {
		out = append(out, CustomEntry())
	}
	return out
}
