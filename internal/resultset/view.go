package resultset

import "github.com/lukman83/estate-listings/internal/models"

// View renders what the controller hands it. Implementations must not call
// back into the Controller from these methods.
type View interface {
	SetLoading(loading bool)
	ShowListings(props []models.Property)
	ShowFeatured(props []models.Property)
	// ShowEmpty renders the "no results" state, distinct from an error.
	ShowEmpty()
	ShowError(msg string)
}

// NopView discards everything. Used when the caller reads results from the
// controller's return values instead (MCP tools).
type NopView struct{}

func (NopView) SetLoading(bool) {}
func (NopView) ShowListings([]models.Property) {}
func (NopView) ShowFeatured([]models.Property) {}
func (NopView) ShowEmpty() {}
func (NopView) ShowError(string) {}
