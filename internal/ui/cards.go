package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/models"
)

// PrintCards prints properties in a human-friendly card layout.
func PrintCards(w io.Writer, props []models.Property) {
	for i, p := range props {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		if p.IsFeatured {
			title = "[FEATURED] " + title
		}
		fmt.Fprintf(w, " %d. %s\n", i+1, title)

		line := "    " + categoryLabel(p.Category)
		if p.Type != "" {
			line += "  |  " + p.Type
		}
		if p.PropertyFor != "" {
			line += "  |  Lot: " + p.PropertyFor
		}
		fmt.Fprintln(w, line)

		fmt.Fprintf(w, "    %s\n", featureSummary(p.Features))
		if loc := LocationLabel(p.Location); loc != "" {
			fmt.Fprintf(w, "    %s\n", loc)
		}
		if desc := listing.PlainText(p.Description); desc != "" {
			fmt.Fprintf(w, "    %s\n", truncate(desc, 100))
		}
		if p.PrimaryImage != "" {
			fmt.Fprintf(w, "    %s\n", cleanURL(p.PrimaryImage))
		}
		fmt.Fprintf(w, "    id: %s  views: %d\n", p.ID, p.Views)
	}
}

// PrintEmpty prints the "no results" state.
func PrintEmpty(w io.Writer) {
	fmt.Fprintln(w, "No properties match your search.")
	fmt.Fprintln(w, "Clear the filters (run without --filter or search flags) to see all listings.")
}

// PrintDetail prints a single listing in the detail shape.
func PrintDetail(w io.Writer, d models.PropertyDetail) {
	fmt.Fprintf(w, "%s\n", d.Title)
	fmt.Fprintf(w, "  id:        %s\n", d.ID)
	fmt.Fprintf(w, "  category:  %s\n", categoryLabel(d.Category))
	if d.Type != "" {
		fmt.Fprintf(w, "  type:      %s\n", d.Type)
	}
	if d.PropertyFor != "" {
		fmt.Fprintf(w, "  lot:       %s\n", d.PropertyFor)
	}
	if loc := LocationLabel(d.Location); loc != "" {
		fmt.Fprintf(w, "  location:  %s\n", loc)
	}
	fmt.Fprintf(w, "  views:     %d\n", d.Views)

	if len(d.Features) > 0 {
		fmt.Fprintln(w, "  features:")
		keys := make([]string, 0, len(d.Features))
		for k := range d.Features {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    %-10s %v\n", k+":", d.Features[k])
		}
	}
	if len(d.Amenities) > 0 {
		fmt.Fprintf(w, "  amenities: %s\n", strings.Join(d.Amenities, ", "))
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(w, "  tags:      %s\n", strings.Join(d.Tags, ", "))
	}
	for _, img := range d.Images {
		marker := " "
		if img.IsPrimary {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, cleanURL(img.URL))
	}
	if desc := listing.PlainText(d.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}
}

// PrintStats prints aggregate numbers and the category histogram, largest
// bucket first.
func PrintStats(w io.Writer, s models.Stats) {
	fmt.Fprintf(w, "Listings:       %d\n", s.Total)
	fmt.Fprintf(w, "Featured:       %d\n", s.Featured)
	fmt.Fprintf(w, "Avg bedrooms:   %.1f\n", s.AvgBedrooms)
	fmt.Fprintf(w, "Avg bathrooms:  %.1f\n", s.AvgBathrooms)
	fmt.Fprintf(w, "Avg area:       %.1f\n", s.AvgArea)
	if len(s.Categories) == 0 {
		return
	}

	type entry struct {
		category string
		count    int
	}
	entries := make([]entry, 0, len(s.Categories))
	for cat, n := range s.Categories {
		entries = append(entries, entry{cat, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].category < entries[j].category
	})

	fmt.Fprintln(w, "\nCategories:")
	for i, e := range entries {
		fmt.Fprintf(w, " %2d. %-30s  (%d)\n", i+1, categoryLabel(e.category), e.count)
	}
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// LocationLabel renders the pass-through location value. Strings are used
// as-is; objects contribute their address parts in a fixed order.
func LocationLabel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	var parts []string
	for _, k := range []string{"address", "street", "city", "state", "country", "zipCode"} {
		if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
			parts = append(parts, strings.TrimSpace(v))
		}
	}
	return strings.Join(parts, ", ")
}

func categoryLabel(category string) string {
	if category == "" {
		return "Uncategorized"
	}
	return fmt.Sprintf("%s (%s)", category, listing.CategoryClass(category))
}

func featureSummary(f models.Features) string {
	unit := f.AreaUnit
	if unit == "" {
		unit = "sqft"
	}
	parts := []string{
		plural(f.Bedrooms, "bed"),
		plural(f.Bathrooms, "bath"),
		fmt.Sprintf("%g %s", f.Area, unit),
	}
	if f.Floors > 0 {
		parts = append(parts, plural(f.Floors, "floor"))
	}
	if f.Garages > 0 {
		parts = append(parts, plural(f.Garages, "garage"))
	}
	if f.Theater > 0 {
		parts = append(parts, plural(f.Theater, "theater"))
	}
	if f.Furnished {
		parts = append(parts, "furnished")
	}
	return strings.Join(parts, " · ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// cleanURL strips query params (signatures, resize hints) for display.
func cleanURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	return u.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
