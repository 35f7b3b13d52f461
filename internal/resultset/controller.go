package resultset

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/progress"
	"golang.org/x/sync/errgroup"
)

const (
	InitialFetchLimit  = 50
	InitialSampleSize  = 8
	FeaturedFetchLimit = 100
	FeaturedSampleSize = 4
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load of the same set started before it finished.
var ErrSuperseded = errors.New("result set superseded by a newer request")

// Fetcher is the part of listing.Client the controller needs.
type Fetcher interface {
	FetchListings(ctx context.Context, filters models.Params) (models.Page, error)
	FetchFeatured(ctx context.Context, limit int) (models.Page, error)
}

// slot tracks the newest in-flight load of one result set.
type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Controller owns the in-memory result set and the active search, filter
// and sort state, and pushes every change to its View.
type Controller struct {
	fetcher Fetcher
	view    View
	logger  *slog.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	loaded   []models.Property
	visible  []models.Property
	featured []models.Property
	criteria models.SearchCriteria
	category string
	sortKey  string
	pending  int
	listSlot slot
	featSlot slot
}

type Option func(*Controller)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a Controller. A nil view discards output.
func NewController(f Fetcher, v View, opts ...Option) *Controller {
	if v == nil {
		v = NopView{}
	}
	c := &Controller{
		fetcher:  f,
		view:     v,
		logger:   slog.New(slog.DiscardHandler),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		loaded:   []models.Property{},
		visible:  []models.Property{},
		featured: []models.Property{},
		criteria: models.SearchCriteria{},
		category: listing.AllCategories,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadInitial fetches up to 50 listings and shows a random sample of 8.
func (c *Controller) LoadInitial(ctx context.Context) ([]models.Property, error) {
	ctx, gen, done := c.begin(ctx, &c.listSlot)
	defer done()

	progress.Report(ctx, "Loading listings...")
	page, err := c.fetcher.FetchListings(ctx, models.Params{"limit": InitialFetchLimit, "page": 1})
	return c.commitList(gen, page, err, InitialSampleSize)
}

// LoadFeatured fetches up to 100 featured listings, keeps only those really
// flagged featured and shows a random sample of at most 4.
func (c *Controller) LoadFeatured(ctx context.Context) ([]models.Property, error) {
	ctx, gen, done := c.begin(ctx, &c.featSlot)
	defer done()

	progress.Report(ctx, "Loading featured listings...")
	page, err := c.fetcher.FetchFeatured(ctx, FeaturedFetchLimit)

	c.mu.Lock()
	if c.featSlot.gen != gen {
		c.mu.Unlock()
		return []models.Property{}, ErrSuperseded
	}
	if err != nil {
		c.mu.Unlock()
		c.fail("featured", err)
		return []models.Property{}, err
	}
	// The API's featured flag is not authoritative.
	featured := Sample(c.rng, listing.FilterFeatured(page.Properties), FeaturedSampleSize)
	c.featured = featured
	c.mu.Unlock()

	c.view.ShowFeatured(slices.Clone(featured))
	return slices.Clone(featured), nil
}

// LoadHome runs LoadInitial and LoadFeatured concurrently. Both always run
// to completion; the first error is returned.
func (c *Controller) LoadHome(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := c.LoadInitial(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.LoadFeatured(ctx)
		return err
	})
	return g.Wait()
}

// Search replaces the result set with the API's answer for criteria.
func (c *Controller) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Property, error) {
	ctx, gen, done := c.begin(ctx, &c.listSlot)
	defer done()

	c.mu.Lock()
	c.criteria = models.SearchCriteria{}
	maps.Copy(c.criteria, criteria)
	c.mu.Unlock()

	progress.Report(ctx, "Searching listings...")
	page, err := c.fetcher.FetchListings(ctx, listing.BuildSearchParams(criteria))
	return c.commitList(gen, page, err, -1)
}

// ApplyFilter narrows the loaded set to one category tag without
// refetching. "*" shows everything. The active sort is kept.
func (c *Controller) ApplyFilter(tag string) []models.Property {
	c.mu.Lock()
	if tag == "" {
		tag = listing.AllCategories
	}
	c.category = tag
	visible := listing.FilterByCategoryClass(c.loaded, tag)
	if c.sortKey != "" {
		key, order := listing.ParseSortKey(c.sortKey)
		visible = listing.SortProperties(visible, key, order)
	}
	c.visible = slices.Clone(visible)
	c.mu.Unlock()

	c.render(visible)
	return slices.Clone(visible)
}

// ApplySort orders the visible set without refetching. A leading '-' on key
// sorts descending.
func (c *Controller) ApplySort(key string) []models.Property {
	c.mu.Lock()
	c.sortKey = key
	field, order := listing.ParseSortKey(key)
	c.visible = listing.SortProperties(c.visible, field, order)
	visible := slices.Clone(c.visible)
	c.mu.Unlock()

	c.render(visible)
	return visible
}

// ApplyLotSize narrows the visible set to lot sizes within [min, max].
func (c *Controller) ApplyLotSize(min, max int) []models.Property {
	c.mu.Lock()
	c.visible = listing.FilterByLotSize(c.visible, min, max)
	visible := slices.Clone(c.visible)
	c.mu.Unlock()

	c.render(visible)
	return visible
}

// ClearFilters resets search, filter and sort state and reloads the initial
// sample.
func (c *Controller) ClearFilters(ctx context.Context) ([]models.Property, error) {
	c.mu.Lock()
	c.criteria = models.SearchCriteria{}
	c.category = listing.AllCategories
	c.sortKey = ""
	c.mu.Unlock()
	return c.LoadInitial(ctx)
}

// Current returns the visible result set.
func (c *Controller) Current() []models.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.visible)
}

// Loaded returns the full loaded set the filters work on.
func (c *Controller) Loaded() []models.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.loaded)
}

func (c *Controller) Featured() []models.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.featured)
}

func (c *Controller) Criteria() models.SearchCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.criteria)
}

func (c *Controller) Category() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

func (c *Controller) SortKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortKey
}

// Loading reports whether any load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// begin starts a load on s, cancelling the load it supersedes. The returned
// func must be deferred; it resolves the loading state.
func (c *Controller) begin(ctx context.Context, s *slot) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	s.cancel = cancel
	c.pending++
	started := c.pending == 1
	c.mu.Unlock()

	if started {
		c.view.SetLoading(true)
	}
	return ctx, gen, func() {
		cancel()
		c.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		c.pending--
		finished := c.pending == 0
		c.mu.Unlock()
		if finished {
			c.view.SetLoading(false)
		}
	}
}

// commitList installs page as the new result set unless gen is stale.
// sampleSize < 0 keeps the whole page.
func (c *Controller) commitList(gen uint64, page models.Page, err error, sampleSize int) ([]models.Property, error) {
	c.mu.Lock()
	if c.listSlot.gen != gen {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded result set", "generation", gen)
		return []models.Property{}, ErrSuperseded
	}
	if err != nil {
		c.mu.Unlock()
		c.fail("listings", err)
		return []models.Property{}, err
	}

	props := page.Properties
	if sampleSize >= 0 {
		props = Sample(c.rng, props, sampleSize)
	}
	c.loaded = slices.Clone(props)
	c.visible = slices.Clone(props)
	c.category = listing.AllCategories
	c.sortKey = ""
	c.mu.Unlock()

	c.render(props)
	return slices.Clone(props), nil
}

func (c *Controller) render(props []models.Property) {
	if len(props) == 0 {
		c.view.ShowEmpty()
		return
	}
	c.view.ShowListings(slices.Clone(props))
}

func (c *Controller) fail(set string, err error) {
	c.logger.Warn("load failed", "set", set, "error", err)
	c.view.ShowError(userMessage(err))
}

func userMessage(err error) string {
	switch {
	case listing.IsNetwork(err):
		return "Could not reach the listings service. Please try again."
	case listing.IsMalformed(err):
		return "The listings service sent an unexpected response."
	default:
		return "Failed to load listings: " + err.Error()
	}
}
