package models

import "encoding/json"

type Image struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// Features is always present on a Property; missing subfields stay zero.
type Features struct {
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
	Area      float64 `json:"area"`
	AreaUnit  string  `json:"areaUnit"`
	Floors    int     `json:"floors"`
	Garages   int     `json:"garages"`
	Theater   int     `json:"theater"`
	Furnished bool    `json:"furnished"`
}

// Property is the normalized listing record handed to views.
type Property struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	PropertyFor  string          `json:"propertyFor"`
	Currency     string          `json:"currency"`
	Location     json.RawMessage `json:"location,omitempty"`
	Features     Features        `json:"features"`
	Amenities    []string        `json:"amenities"`
	Images       []Image         `json:"images"`
	PrimaryImage string          `json:"primaryImage"`
	Status       json.RawMessage `json:"status,omitempty"`
	Agent        json.RawMessage `json:"agent,omitempty"`
	Owner        json.RawMessage `json:"owner,omitempty"`
	Tags         []string        `json:"tags"`
	Views        int             `json:"views"`
	IsFeatured   bool            `json:"isFeatured"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// PropertyDetail is the single-listing shape. Features are kept as the API
// sent them and no primary image is derived.
type PropertyDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	PropertyFor string          `json:"propertyFor"`
	Currency    string          `json:"currency"`
	Location    json.RawMessage `json:"location,omitempty"`
	Features    map[string]any  `json:"features"`
	Amenities   []string        `json:"amenities"`
	Images      []Image         `json:"images"`
	Status      json.RawMessage `json:"status,omitempty"`
	Agent       json.RawMessage `json:"agent,omitempty"`
	Owner       json.RawMessage `json:"owner,omitempty"`
	Tags        []string        `json:"tags"`
	Views       int             `json:"views"`
	IsFeatured  bool            `json:"isFeatured"`
	IsActive    bool            `json:"isActive"`
	Documents   json.RawMessage `json:"documents,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Page is one fetched result set. Properties is never nil.
type Page struct {
	Properties []Property  `json:"properties"`
	Pagination *Pagination `json:"pagination"`
}

// EmptyPage is what a failed fetch hands back alongside its error.
func EmptyPage() Page {
	return Page{Properties: []Property{}}
}

// SearchCriteria holds user-supplied search form values keyed by form field
// (property_type, bedrooms, lot_size, ...).
type SearchCriteria map[string]any

// Params holds API query parameters keyed by API name.
type Params map[string]any

type Stats struct {
	Total        int            `json:"total"`
	Categories   map[string]int `json:"categories"`
	AvgBedrooms  float64        `json:"avgBedrooms"`
	AvgBathrooms float64        `json:"avgBathrooms"`
	AvgArea      float64        `json:"avgArea"`
	Featured     int            `json:"featured"`
}
