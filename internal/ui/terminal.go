package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/lukman83/estate-listings/internal/models"
)

// Terminal is a resultset.View for the CLI. Loading toggles a spinner on
// the error stream; listings are kept until Render so that a load followed
// by a filter or sort prints once.
type Terminal struct {
	out    io.Writer
	errOut io.Writer
	format string

	spin   *Spinner
	banner *Banner

	mu          sync.Mutex
	listings    []models.Property
	featured    []models.Property
	hasListings bool
	hasFeatured bool
	empty       bool
}

// NewTerminal creates a Terminal printing results to out and status to
// errOut. format is "table" or "json".
func NewTerminal(out, errOut io.Writer, format string) *Terminal {
	return &Terminal{
		out:    out,
		errOut: errOut,
		format: format,
		spin:   NewSpinner(errOut),
		banner: NewBanner(BannerTimeout),
	}
}

func (t *Terminal) SetLoading(loading bool) {
	if loading {
		t.spin.Start("Loading...")
		return
	}
	t.spin.Stop()
}

// Progress forwards a progress message to the spinner.
func (t *Terminal) Progress(msg string) {
	t.spin.Update(msg)
}

func (t *Terminal) ShowListings(props []models.Property) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listings = props
	t.hasListings = true
	t.empty = false
}

func (t *Terminal) ShowFeatured(props []models.Property) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.featured = props
	t.hasFeatured = true
}

func (t *Terminal) ShowEmpty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listings = []models.Property{}
	t.hasListings = true
	t.empty = true
}

func (t *Terminal) ShowError(msg string) {
	t.banner.Show(msg)
}

// Render prints the current state: a still-visible error banner, the
// featured section, then listings or the no-results state.
func (t *Terminal) Render() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if msg, ok := t.banner.Current(); ok {
		fmt.Fprintf(t.errOut, "Error: %s\n", msg)
	}

	if t.format == "json" {
		out := map[string]any{}
		if t.hasFeatured {
			out["featured"] = t.featured
		}
		if t.hasListings {
			out["properties"] = t.listings
		}
		if len(out) == 0 {
			return nil
		}
		return PrintJSON(t.out, out)
	}

	if t.hasFeatured {
		fmt.Fprintln(t.out, "Featured")
		if len(t.featured) == 0 {
			fmt.Fprintln(t.out, "  No featured properties right now.")
		} else {
			PrintCards(t.out, t.featured)
		}
		if t.hasListings {
			fmt.Fprintln(t.out)
			fmt.Fprintln(t.out, "Listings")
		}
	}
	if t.hasListings {
		if t.empty {
			PrintEmpty(t.out)
		} else {
			PrintCards(t.out, t.listings)
		}
	}
	return nil
}
