package lint

import "strings"

// Category groups rules by concern.
type Category int

// Rule categories.
const (
	CategoryInvalid Category = iota
	CategoryStyle
	CategoryUsage
	CategoryDesign
	CategoryNaming
	CategoryPerformance
	CategoryReliability
	CategorySecurity
	CategoryMaintainability
	CategoryRefactoring
	CategoryGlobalization
	CategoryInteroperability
	CategoryMobility
	CategoryPortability
	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryInvalid:          "",
	CategoryStyle:            "Style",
	CategoryUsage:            "Usage",
	CategoryDesign:           "Design",
	CategoryNaming:           "Naming",
	CategoryPerformance:      "Performance",
	CategoryReliability:      "Reliability",
	CategorySecurity:         "Security",
	CategoryMaintainability:  "Maintainability",
	CategoryRefactoring:      "Refactoring",
	CategoryGlobalization:    "Globalization",
	CategoryInteroperability: "Interoperability",
	CategoryMobility:         "Mobility",
	CategoryPortability:      "Portability",
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return ""
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c > CategoryInvalid && c < categoryCount
}

// ParseCategory looks a category up by name, ignoring case.
func ParseCategory(name string) (Category, bool) {
	for c := CategoryStyle; c < categoryCount; c++ {
		if strings.EqualFold(categoryNames[c], strings.TrimSpace(name)) {
			return c, true
		}
	}
	return CategoryInvalid, false
}

// Categories returns all valid categories in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryStyle; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}
