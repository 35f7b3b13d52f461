package listing

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/lukman83/estate-listings/internal/models"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FilterByCategory keeps properties whose category matches exactly, ignoring
// case. An empty category returns the input unchanged.
func FilterByCategory(list []models.Property, category string) []models.Property {
	if category == "" {
		return list
	}
	out := make([]models.Property, 0, len(list))
	for _, p := range list {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByLotSize keeps properties whose lot size lies in [min, max].
func FilterByLotSize(list []models.Property, min, max int) []models.Property {
	out := make([]models.Property, 0, len(list))
	for _, p := range list {
		size := LotSize(p)
		if size >= min && size <= max {
			out = append(out, p)
		}
	}
	return out
}

// FilterFeatured keeps properties flagged as featured.
func FilterFeatured(list []models.Property) []models.Property {
	out := make([]models.Property, 0, len(list))
	for _, p := range list {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}

// LotSize reads the leading integer of PropertyFor ("500 meter" -> 500).
// A value without a leading integer counts as 0; sizes past the int range
// clamp to math.MaxInt.
func LotSize(p models.Property) int {
	s := strings.TrimLeft(p.PropertyFor, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			break
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

// ParseSortKey splits "-views" into ("views", Descending). Keys without a
// leading '-' sort ascending.
func ParseSortKey(key string) (string, SortOrder) {
	key = strings.TrimSpace(key)
	if rest, ok := strings.CutPrefix(key, "-"); ok {
		return rest, Descending
	}
	return key, Ascending
}

// SortProperties returns a sorted copy of list. The key "features" sorts by
// bedroom count. Equal values keep their input order in both directions and
// unknown keys leave the order untouched.
func SortProperties(list []models.Property, key string, order SortOrder) []models.Property {
	out := slices.Clone(list)
	value, ok := sortValues[key]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Property) int {
		c := value(a).compare(value(b))
		if order == Descending {
			return -c
		}
		return c
	})
	return out
}

type sortValue struct {
	num   float64
	str   string
	isStr bool
}

func (v sortValue) compare(o sortValue) int {
	if v.isStr || o.isStr {
		return cmp.Compare(v.str, o.str)
	}
	return cmp.Compare(v.num, o.num)
}

func num(f func(models.Property) float64) func(models.Property) sortValue {
	return func(p models.Property) sortValue { return sortValue{num: f(p)} }
}

func str(f func(models.Property) string) func(models.Property) sortValue {
	return func(p models.Property) sortValue { return sortValue{str: f(p), isStr: true} }
}

var sortValues = map[string]func(models.Property) sortValue{
	"features":    num(func(p models.Property) float64 { return float64(p.Features.Bedrooms) }),
	"bedrooms":    num(func(p models.Property) float64 { return float64(p.Features.Bedrooms) }),
	"bathrooms":   num(func(p models.Property) float64 { return float64(p.Features.Bathrooms) }),
	"area":        num(func(p models.Property) float64 { return p.Features.Area }),
	"floors":      num(func(p models.Property) float64 { return float64(p.Features.Floors) }),
	"garages":     num(func(p models.Property) float64 { return float64(p.Features.Garages) }),
	"views":       num(func(p models.Property) float64 { return float64(p.Views) }),
	"title":       str(func(p models.Property) string { return p.Title }),
	"category":    str(func(p models.Property) string { return p.Category }),
	"type":        str(func(p models.Property) string { return p.Type }),
	"propertyFor": str(func(p models.Property) string { return p.PropertyFor }),
	"createdAt":   str(func(p models.Property) string { return p.CreatedAt }),
	"updatedAt":   str(func(p models.Property) string { return p.UpdatedAt }),
}

// UniqueCategories returns the distinct non-empty categories, sorted.
func UniqueCategories(list []models.Property) []string {
	seen := make(map[string]struct{})
	for _, p := range list {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// PropertyStats aggregates a result set. Averages are 0 for an empty list.
func PropertyStats(list []models.Property) models.Stats {
	stats := models.Stats{
		Total:      len(list),
		Categories: map[string]int{},
	}
	if len(list) == 0 {
		return stats
	}

	var beds, baths, area float64
	for _, p := range list {
		stats.Categories[p.Category]++
		beds += float64(p.Features.Bedrooms)
		baths += float64(p.Features.Bathrooms)
		area += p.Features.Area
		if p.IsFeatured {
			stats.Featured++
		}
	}
	n := float64(len(list))
	stats.AvgBedrooms = beds / n
	stats.AvgBathrooms = baths / n
	stats.AvgArea = area / n
	return stats
}
