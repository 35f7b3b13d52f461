package listing

import (
	"encoding/json"

	"github.com/lukman83/estate-listings/internal/models"
)

// NormalizeListItem maps a raw API listing onto the list-view Property.
// Features are flattened into a fully-defaulted struct and the primary image
// is derived.
func NormalizeListItem(raw RawProperty) models.Property {
	p := models.Property{
		ID:          string(raw.ID),
		Title:       string(raw.Title),
		Description: string(raw.Description),
		Type:        string(raw.Type),
		Category:    string(raw.Category),
		PropertyFor: string(raw.PropertyFor),
		Currency:    string(raw.Currency),
		Location:    passThrough(raw.Location),
		Features:    flattenFeatures(raw.Features),
		Amenities:   nonNilStrings(raw.Amenities),
		Images:      convertImages(raw.Images),
		Status:      passThrough(raw.Status),
		Agent:       passThrough(raw.Agent),
		Owner:       passThrough(raw.Owner),
		Tags:        nonNilStrings(raw.Tags),
		Views:       raw.Views.Int(),
		IsFeatured:  bool(raw.IsFeatured),
		IsActive:    bool(raw.IsActive),
		CreatedAt:   string(raw.CreatedAt),
		UpdatedAt:   string(raw.UpdatedAt),
	}
	p.PrimaryImage = PrimaryImage(p.Images)
	return p
}

// NormalizeDetail maps a raw API listing onto the detail shape.
func NormalizeDetail(raw RawProperty) models.PropertyDetail {
	return models.PropertyDetail{
		ID:          string(raw.ID),
		Title:       string(raw.Title),
		Description: string(raw.Description),
		Type:        string(raw.Type),
		Category:    string(raw.Category),
		PropertyFor: string(raw.PropertyFor),
		Currency:    string(raw.Currency),
		Location:    passThrough(raw.Location),
		Features:    verbatimFeatures(raw.Features),
		Amenities:   nonNilStrings(raw.Amenities),
		Images:      convertImages(raw.Images),
		Status:      passThrough(raw.Status),
		Agent:       passThrough(raw.Agent),
		Owner:       passThrough(raw.Owner),
		Tags:        nonNilStrings(raw.Tags),
		Views:       raw.Views.Int(),
		IsFeatured:  bool(raw.IsFeatured),
		IsActive:    bool(raw.IsActive),
		Documents:   passThrough(raw.Documents),
		CreatedAt:   string(raw.CreatedAt),
		UpdatedAt:   string(raw.UpdatedAt),
	}
}

// PrimaryImage returns the first image flagged primary, else the first
// image, else "".
func PrimaryImage(images []models.Image) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

func flattenFeatures(data json.RawMessage) models.Features {
	var rf RawFeatures
	if !isNullJSON(data) {
		// A features value of the wrong shape is treated as absent.
		if err := json.Unmarshal(data, &rf); err != nil {
			rf = RawFeatures{}
		}
	}
	return models.Features{
		Bedrooms:  rf.Bedrooms.Int(),
		Bathrooms: rf.Bathrooms.Int(),
		Area:      float64(rf.Area),
		AreaUnit:  string(rf.AreaUnit),
		Floors:    rf.Floors.Int(),
		Garages:   rf.Garages.Int(),
		Theater:   rf.Theater.Int(),
		Furnished: bool(rf.Furnished),
	}
}

func verbatimFeatures(data json.RawMessage) map[string]any {
	out := map[string]any{}
	if isNullJSON(data) {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// convertImages drops entries without a URL.
func convertImages(raw RawImages) []models.Image {
	images := make([]models.Image, 0, len(raw))
	for _, img := range raw {
		if img.URL == "" {
			continue
		}
		images = append(images, models.Image{URL: string(img.URL), IsPrimary: bool(img.IsPrimary)})
	}
	return images
}

func nonNilStrings(s Strings) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}

func passThrough(data json.RawMessage) json.RawMessage {
	if isNullJSON(data) {
		return nil
	}
	return data
}
