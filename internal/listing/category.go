package listing

import (
	"strings"

	"github.com/lukman83/estate-listings/internal/models"
)

// DefaultCategoryClass is the tag for categories missing from the table.
const DefaultCategoryClass = "house"

// AllCategories is the filter tag that disables category filtering.
const AllCategories = "*"

var categoryClasses = map[string]string{
	"house":        "house",
	"single story": "single-story",
	"single-story": "single-story",
	"double story": "double-story",
	"double-story": "double-story",
	"triple story": "triple-story",
	"triple-story": "triple-story",
	"farm house":   "farm-house",
	"farm-house":   "farm-house",
	"town house":   "town-house",
	"town-house":   "town-house",
	"villa":        "villa",
	"apartment":    "apartment",
	"bungalow":     "bungalow",
	"duplex":       "duplex",
	"penthouse":    "penthouse",
	"cottage":      "cottage",
	"mansion":      "mansion",
	"commercial":   "commercial",
	"land":         "land",
}

// CategoryClass derives the canonical hyphenated tag for a free-text
// category, e.g. "Farm House" -> "farm-house".
func CategoryClass(category string) string {
	if tag, ok := categoryClasses[strings.ToLower(strings.TrimSpace(category))]; ok {
		return tag
	}
	return DefaultCategoryClass
}

// FilterByCategoryClass keeps properties whose derived tag equals tag.
// An empty tag or "*" returns the input unchanged.
func FilterByCategoryClass(list []models.Property, tag string) []models.Property {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == AllCategories {
		return list
	}
	out := make([]models.Property, 0, len(list))
	for _, p := range list {
		if CategoryClass(p.Category) == tag {
			out = append(out, p)
		}
	}
	return out
}
