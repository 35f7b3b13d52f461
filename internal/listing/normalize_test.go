package listing

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/lukman83/estate-listings/internal/models"
)

func decodeRaw(t *testing.T, s string) RawProperty {
	t.Helper()
	var raw RawProperty
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		t.Fatalf("unmarshal raw property: %v", err)
	}
	return raw
}

func TestNormalizeListItem_Features(t *testing.T) {
	tests := []struct {
		name string
		json string
		want func(t *testing.T, p featuresView)
	}{
		{
			name: "theater missing defaults to zero",
			json: `{"_id":"a1","features":{"bedrooms":3,"bathrooms":2,"area":1200,"areaUnit":"sqft"}}`,
			want: func(t *testing.T, f featuresView) {
				if f.theater != 0 {
					t.Errorf("theater = %d, want 0", f.theater)
				}
				if f.bedrooms != 3 || f.bathrooms != 2 || f.area != 1200 {
					t.Errorf("got %+v", f)
				}
			},
		},
		{
			name: "features missing entirely",
			json: `{"_id":"a2"}`,
			want: func(t *testing.T, f featuresView) {
				if f != (featuresView{}) {
					t.Errorf("expected zero features, got %+v", f)
				}
			},
		},
		{
			name: "features null",
			json: `{"_id":"a3","features":null}`,
			want: func(t *testing.T, f featuresView) {
				if f != (featuresView{}) {
					t.Errorf("expected zero features, got %+v", f)
				}
			},
		},
		{
			name: "numeric strings are accepted",
			json: `{"_id":"a4","features":{"bedrooms":"4","garages":"2","theater":"1","furnished":true}}`,
			want: func(t *testing.T, f featuresView) {
				if f.bedrooms != 4 || f.garages != 2 || f.theater != 1 || !f.furnished {
					t.Errorf("got %+v", f)
				}
			},
		},
		{
			name: "features of the wrong shape are treated as absent",
			json: `{"_id":"a5","features":"spacious"}`,
			want: func(t *testing.T, f featuresView) {
				if f != (featuresView{}) {
					t.Errorf("expected zero features, got %+v", f)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeListItem(decodeRaw(t, tt.json))
			tt.want(t, featuresView{
				bedrooms:  p.Features.Bedrooms,
				bathrooms: p.Features.Bathrooms,
				area:      p.Features.Area,
				garages:   p.Features.Garages,
				theater:   p.Features.Theater,
				furnished: p.Features.Furnished,
			})
		})
	}
}

type featuresView struct {
	bedrooms, bathrooms int
	area                float64
	garages, theater    int
	furnished           bool
}

func TestNormalizeListItem_PrimaryImage(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "flagged image wins",
			json: `{"images":[{"url":"a.jpg"},{"url":"b.jpg","isPrimary":true},{"url":"c.jpg","isPrimary":true}]}`,
			want: "b.jpg",
		},
		{
			name: "falls back to first image",
			json: `{"images":[{"url":"a.jpg"},{"url":"b.jpg"}]}`,
			want: "a.jpg",
		},
		{
			name: "empty array",
			json: `{"images":[]}`,
			want: "",
		},
		{
			name: "no images field",
			json: `{}`,
			want: "",
		},
		{
			name: "bare url strings",
			json: `{"images":["x.jpg","y.jpg"]}`,
			want: "x.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizeListItem(decodeRaw(t, tt.json))
			if p.PrimaryImage != tt.want {
				t.Errorf("PrimaryImage = %q, want %q", p.PrimaryImage, tt.want)
			}
			if p.Images == nil {
				t.Error("Images should never be nil")
			}
		})
	}
}

func TestNormalizeListItem_Fields(t *testing.T) {
	raw := decodeRaw(t, `{
		"_id": "64f1",
		"title": "Green Acres",
		"description": "<p>Quiet</p>",
		"type": "sale",
		"category": "Farm House",
		"propertyFor": "500 meter",
		"currency": "USD",
		"location": {"city": "Austin", "state": "TX"},
		"status": "available",
		"views": "17",
		"isFeatured": true,
		"isActive": true,
		"createdAt": "2024-03-01T10:00:00Z",
		"updatedAt": "2024-03-02T10:00:00Z"
	}`)

	p := NormalizeListItem(raw)

	if p.ID != "64f1" {
		t.Errorf("ID = %q, want 64f1", p.ID)
	}
	if p.Category != "Farm House" || p.PropertyFor != "500 meter" || p.Currency != "USD" {
		t.Errorf("classification fields not copied: %+v", p)
	}
	if p.Views != 17 {
		t.Errorf("Views = %d, want 17", p.Views)
	}
	if !p.IsFeatured || !p.IsActive {
		t.Error("expected featured and active")
	}
	if string(p.Status) != `"available"` {
		t.Errorf("Status = %s, want pass-through", p.Status)
	}
	if p.Amenities == nil || p.Tags == nil {
		t.Error("Amenities and Tags should never be nil")
	}
	if p.CreatedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q", p.CreatedAt)
	}
}

func TestNormalizeDetail(t *testing.T) {
	raw := decodeRaw(t, `{
		"_id": "d1",
		"title": "Villa",
		"features": {"bedrooms": 5, "pool": true},
		"images": [{"url": "a.jpg"}, {"url": "b.jpg", "isPrimary": true}],
		"documents": [{"name": "deed.pdf"}]
	}`)

	d := NormalizeDetail(raw)

	if d.ID != "d1" {
		t.Errorf("ID = %q, want d1", d.ID)
	}
	if d.Features["bedrooms"] != float64(5) || d.Features["pool"] != true {
		t.Errorf("features not kept verbatim: %v", d.Features)
	}
	if string(d.Documents) != `[{"name": "deed.pdf"}]` {
		t.Errorf("Documents = %s", d.Documents)
	}
	if len(d.Images) != 2 {
		t.Errorf("expected 2 images, got %d", len(d.Images))
	}

	empty := NormalizeDetail(decodeRaw(t, `{"_id":"d2"}`))
	if empty.Features == nil {
		t.Error("detail features should never be nil")
	}
}

func TestNormalizeListItem_LenientScalars(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, p models.Property)
	}{
		{
			name: "boolean views count as zero",
			json: `{"_id":"b","views":true}`,
			check: func(t *testing.T, p models.Property) {
				if p.Views != 0 || p.ID != "b" {
					t.Errorf("got id %q views %d", p.ID, p.Views)
				}
			},
		},
		{
			name: "non-numeric view string counts as zero",
			json: `{"views":"lots"}`,
			check: func(t *testing.T, p models.Property) {
				if p.Views != 0 {
					t.Errorf("Views = %d, want 0", p.Views)
				}
			},
		},
		{
			name: "numeric timestamps keep their text",
			json: `{"createdAt":1700000000,"updatedAt":null}`,
			check: func(t *testing.T, p models.Property) {
				if p.CreatedAt != "1700000000" || p.UpdatedAt != "" {
					t.Errorf("got createdAt %q updatedAt %q", p.CreatedAt, p.UpdatedAt)
				}
			},
		},
		{
			name: "string and numeric flags",
			json: `{"isFeatured":"true","isActive":1}`,
			check: func(t *testing.T, p models.Property) {
				if !p.IsFeatured || !p.IsActive {
					t.Errorf("got featured %v active %v", p.IsFeatured, p.IsActive)
				}
			},
		},
		{
			name: "unparseable flag is false",
			json: `{"isFeatured":"maybe"}`,
			check: func(t *testing.T, p models.Property) {
				if p.IsFeatured {
					t.Error("expected not featured")
				}
			},
		},
		{
			name: "bare tag string becomes a list",
			json: `{"tags":"x","amenities":["pool",3,"gym"]}`,
			check: func(t *testing.T, p models.Property) {
				if !reflect.DeepEqual(p.Tags, []string{"x"}) {
					t.Errorf("Tags = %v", p.Tags)
				}
				if !reflect.DeepEqual(p.Amenities, []string{"pool", "gym"}) {
					t.Errorf("Amenities = %v", p.Amenities)
				}
			},
		},
		{
			name: "object title is empty",
			json: `{"title":{"en":"Loft"},"category":5}`,
			check: func(t *testing.T, p models.Property) {
				if p.Title != "" || p.Category != "5" {
					t.Errorf("got title %q category %q", p.Title, p.Category)
				}
			},
		},
		{
			name: "images of the wrong shape",
			json: `{"images":[42,{"url":"a.jpg"}]}`,
			check: func(t *testing.T, p models.Property) {
				if len(p.Images) != 1 || p.PrimaryImage != "a.jpg" {
					t.Errorf("got images %v primary %q", p.Images, p.PrimaryImage)
				}
			},
		},
		{
			name: "single image object",
			json: `{"images":{"url":"solo.jpg"}}`,
			check: func(t *testing.T, p models.Property) {
				if p.PrimaryImage != "solo.jpg" {
					t.Errorf("PrimaryImage = %q", p.PrimaryImage)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NormalizeListItem(decodeRaw(t, tt.json)))
		})
	}
}
