package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lukman83/estate-listings/internal/models"
)

func TestBanner(t *testing.T) {
	t.Run("hides itself after the timeout", func(t *testing.T) {
		b := NewBanner(20 * time.Millisecond)
		b.Show("network down")
		if msg, ok := b.Current(); !ok || msg != "network down" {
			t.Fatalf("Current() = %q, %v", msg, ok)
		}
		time.Sleep(80 * time.Millisecond)
		if _, ok := b.Current(); ok {
			t.Error("banner should have hidden itself")
		}
	})

	t.Run("a new message restarts the timer", func(t *testing.T) {
		b := NewBanner(60 * time.Millisecond)
		b.Show("first")
		time.Sleep(40 * time.Millisecond)
		b.Show("second")
		time.Sleep(40 * time.Millisecond)
		if msg, ok := b.Current(); !ok || msg != "second" {
			t.Errorf("Current() = %q, %v; want second still visible", msg, ok)
		}
	})

	t.Run("dismiss hides immediately", func(t *testing.T) {
		b := NewBanner(time.Minute)
		b.Show("oops")
		b.Dismiss()
		if _, ok := b.Current(); ok {
			t.Error("banner should be hidden")
		}
	})
}

func TestLocationLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{``, ""},
		{`"  Austin, TX "`, "Austin, TX"},
		{`{"city":"Austin","state":"TX","country":"US","lat":30.2}`, "Austin, TX, US"},
		{`{"address":"1 Main St","zipCode":"78701"}`, "1 Main St, 78701"},
		{`[1,2]`, ""},
	}
	for _, tt := range tests {
		if got := LocationLabel(json.RawMessage(tt.raw)); got != tt.want {
			t.Errorf("LocationLabel(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestPrintCards(t *testing.T) {
	var buf bytes.Buffer
	PrintCards(&buf, []models.Property{{
		ID:           "p1",
		Title:        "Green Acres",
		Category:     "Farm House",
		PropertyFor:  "500 meter",
		Description:  "<p>Quiet <b>country</b> living</p>",
		PrimaryImage: "https://cdn.example.com/a.jpg?sig=abc",
		IsFeatured:   true,
		Views:        12,
		Features:     models.Features{Bedrooms: 1, Bathrooms: 2, Area: 1200},
	}})
	out := buf.String()

	for _, want := range []string{
		"[FEATURED] Green Acres",
		"Farm House (farm-house)",
		"Lot: 500 meter",
		"1 bed · 2 baths · 1200 sqft",
		"Quiet country living",
		"https://cdn.example.com/a.jpg\n",
		"id: p1  views: 12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, models.Stats{
		Total:      3,
		Categories: map[string]int{"Villa": 1, "Apartment": 2},
	})
	out := buf.String()
	if strings.Index(out, "Apartment") > strings.Index(out, "Villa") {
		t.Errorf("largest bucket should come first:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo world", 8); got != "héllo..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestTerminal_Render(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := NewTerminal(&out, &errOut, "table")
		term.ShowEmpty()
		if err := term.Render(); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "No properties match") {
			t.Errorf("expected empty state, got %q", out.String())
		}
		if errOut.Len() != 0 {
			t.Errorf("empty state is not an error, got %q", errOut.String())
		}
	})

	t.Run("error banner with previous listings", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := NewTerminal(&out, &errOut, "table")
		term.ShowListings([]models.Property{{ID: "p1", Title: "Loft"}})
		term.ShowError("Could not reach the listings service.")
		term.Render()
		if !strings.Contains(errOut.String(), "Error: Could not reach") {
			t.Errorf("expected banner on error stream, got %q", errOut.String())
		}
		if !strings.Contains(out.String(), "Loft") {
			t.Errorf("previous listings should still print, got %q", out.String())
		}
	})

	t.Run("featured section", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := NewTerminal(&out, &errOut, "table")
		term.ShowFeatured([]models.Property{})
		term.ShowListings([]models.Property{{ID: "p1", Title: "Loft"}})
		term.Render()
		s := out.String()
		if !strings.Contains(s, "No featured properties") || !strings.Contains(s, "Listings") {
			t.Errorf("unexpected output %q", s)
		}
	})

	t.Run("json", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := NewTerminal(&out, &errOut, "json")
		term.ShowListings([]models.Property{{ID: "p1"}})
		term.Render()
		var got struct {
			Properties []models.Property `json:"properties"`
		}
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(got.Properties) != 1 || got.Properties[0].ID != "p1" {
			t.Errorf("unexpected properties %+v", got.Properties)
		}
	})

	t.Run("loading toggles the spinner", func(t *testing.T) {
		var out, errOut bytes.Buffer
		term := NewTerminal(&out, &errOut, "table")
		term.SetLoading(true)
		if !term.spin.Running() {
			t.Error("spinner should run while loading")
		}
		term.SetLoading(false)
		if term.spin.Running() {
			t.Error("spinner should stop when loading ends")
		}
	})
}
