package listing

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/lukman83/estate-listings/internal/models"
)

const (
	defaultFetchLimit  = 100
	defaultSearchLimit = 50
)

type paramRule struct {
	key       string
	transform func(v any) any
}

// searchRenames maps search form keys to API query keys.
var searchRenames = map[string]paramRule{
	"property_type": {key: "category"},
	"bedrooms":      {key: "bedrooms"},
	"bathrooms":     {key: "bathrooms"},
	"area":          {key: "area"},
	"lot_size":      {key: "propertyFor", transform: func(v any) any { return formatValue(v) + " meter" }},
	"garage":        {key: "garages"},
	"floor_level":   {key: "floors", transform: floorLevel},
	"location":      {key: "location"},
}

func floorLevel(v any) any {
	if formatValue(v) == "single" {
		return 1
	}
	return 2
}

// BuildSearchParams translates search form criteria into API parameters.
// Unknown keys and empty values are dropped; limit=50 and page=1 are always
// set.
func BuildSearchParams(criteria models.SearchCriteria) models.Params {
	params := models.Params{}
	for k, v := range criteria {
		rule, ok := searchRenames[k]
		if !ok || isEmptyValue(v) {
			continue
		}
		if rule.transform != nil {
			v = rule.transform(v)
		}
		params[rule.key] = v
	}
	params["limit"] = defaultSearchLimit
	params["page"] = 1
	return params
}

// cleanParams drops empty values and fills in the default limit and page.
func cleanParams(filters models.Params) models.Params {
	out := models.Params{}
	for k, v := range filters {
		if isEmptyValue(v) {
			continue
		}
		out[k] = v
	}
	if _, ok := out["limit"]; !ok {
		out["limit"] = defaultFetchLimit
	}
	if _, ok := out["page"]; !ok {
		out["page"] = 1
	}
	return out
}

func encodeQuery(params models.Params) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, formatValue(v))
	}
	return q.Encode()
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case *string:
		return t == nil || *t == ""
	}
	return false
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return fmt.Sprint(t)
	}
}
