package model

// Category assigns a task to one of the fixed areas of life.
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryHome     Category = "home"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// Categories lists all valid values in display order.
var Categories = []Category{CategoryStudy, CategoryWork, CategoryHome, CategoryPersonal, CategoryOther}

var categoryLabels = map[Category]string{
	CategoryStudy:    "учёба",
	CategoryWork:     "работа",
	CategoryHome:     "дом",
	CategoryPersonal: "личное",
	CategoryOther:    "другое",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the user-facing Russian name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// CoerceCategory maps untrusted input onto the closed set, falling back to "other".
func CoerceCategory(raw string) Category {
	if c := Category(raw); c.Valid() {
		return c
	}
	return CategoryOther
}
