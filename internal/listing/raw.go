package listing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// apiResponse is the envelope every listings endpoint answers with.
type apiResponse struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listData struct {
	Properties json.RawMessage `json:"properties"`
	Pagination json.RawMessage `json:"pagination"`
}

// RawProperty is the listing schema as the API sends it. Scalar fields use
// lenient types so one odd value defaults instead of failing the record.
type RawProperty struct {
	ID          Text            `json:"_id"`
	Title       Text            `json:"title"`
	Description Text            `json:"description"`
	Type        Text            `json:"type"`
	Category    Text            `json:"category"`
	PropertyFor Text            `json:"propertyFor"`
	Currency    Text            `json:"currency"`
	Location    json.RawMessage `json:"location"`
	Features    json.RawMessage `json:"features"`
	Amenities   Strings         `json:"amenities"`
	Images      RawImages       `json:"images"`
	Status      json.RawMessage `json:"status"`
	Agent       json.RawMessage `json:"agent"`
	Owner       json.RawMessage `json:"owner"`
	Tags        Strings         `json:"tags"`
	Views       Number          `json:"views"`
	IsFeatured  Flag            `json:"isFeatured"`
	IsActive    Flag            `json:"isActive"`
	Documents   json.RawMessage `json:"documents"`
	CreatedAt   Text            `json:"createdAt"`
	UpdatedAt   Text            `json:"updatedAt"`
}

// RawFeatures is the typed view of RawProperty.Features used by list items.
type RawFeatures struct {
	Bedrooms  Number `json:"bedrooms"`
	Bathrooms Number `json:"bathrooms"`
	Area      Number `json:"area"`
	AreaUnit  Text   `json:"areaUnit"`
	Floors    Number `json:"floors"`
	Garages   Number `json:"garages"`
	Theater   Number `json:"theater"`
	Furnished Flag   `json:"furnished"`
}

// RawImages accepts an array of images or a single image. Any other shape
// is empty.
type RawImages []RawImage

func (r *RawImages) UnmarshalJSON(data []byte) error {
	*r = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var items []RawImage
		if err := json.Unmarshal(data, &items); err == nil {
			*r = items
		}
	case '"', '{':
		var one RawImage
		if err := json.Unmarshal(data, &one); err == nil {
			*r = RawImages{one}
		}
	}
	return nil
}

// RawImage accepts either {"url": ..., "isPrimary": ...} or a bare URL
// string. Other shapes decode to an image without a URL.
type RawImage struct {
	URL       Text `json:"url"`
	IsPrimary Flag `json:"isPrimary"`
}

func (r *RawImage) UnmarshalJSON(data []byte) error {
	*r = RawImage{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		return r.URL.UnmarshalJSON(data)
	case '{':
		type plain RawImage
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return nil
		}
		*r = RawImage(p)
	}
	return nil
}

// Number decodes a JSON number, a numeric string or null. Anything else
// becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = Number(f)
	}
	return nil
}

func (n Number) Int() int { return int(n) }

// Text decodes a JSON string. Numbers and booleans keep their literal
// text ("createdAt": 1700000000 -> "1700000000"); objects, arrays and null
// become "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case '{', '[', 'n':
	default:
		*t = Text(data)
	}
	return nil
}

// Flag decodes a JSON boolean. The strings "true"/"1" and non-zero numbers
// also count as true; everything else is false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		*f = Flag(b)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = n != 0
	}
	return nil
}

// Strings decodes an array of strings. A bare string becomes a one-element
// list, non-string elements are skipped, and any other shape is empty.
type Strings []string

func (s *Strings) UnmarshalJSON(data []byte) error {
	*s = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var one string
		if err := json.Unmarshal(data, &one); err == nil && one != "" {
			*s = Strings{one}
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		out := make(Strings, 0, len(items))
		for _, item := range items {
			var v string
			if err := json.Unmarshal(item, &v); err == nil {
				out = append(out, v)
			}
		}
		*s = out
	}
	return nil
}

func isNullJSON(data json.RawMessage) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
