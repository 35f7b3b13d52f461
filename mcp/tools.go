package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/resultset"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Source is what the tools need from the listings API client.
type Source interface {
	resultset.Fetcher
	FetchDetails(ctx context.Context, propertyID string) (models.PropertyDetail, error)
}

// Tools exposes listing operations as MCP tools. Every call gets its own
// result set, so concurrent sessions never share state.
type Tools struct {
	source Source
	logger *slog.Logger
}

func NewTools(source Source, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tools{source: source, logger: logger}
}

// searchArgs are the search form fields accepted by search_listings.
var searchArgs = []struct {
	name, description string
}{
	{"property_type", "Property category, e.g. \"farm house\""},
	{"bedrooms", "Number of bedrooms"},
	{"bathrooms", "Number of bathrooms"},
	{"area", "Covered area"},
	{"lot_size", "Lot size in meters"},
	{"garage", "Number of garages"},
	{"floor_level", "\"single\" or anything else for multi-floor"},
	{"location", "Location text"},
}

func (t *Tools) register(s *server.MCPServer) {
	// search_listings
	searchOpts := []mcp.ToolOption{
		mcp.WithDescription("Search property listings with search form criteria, then optionally filter by category tag and sort"),
	}
	for _, a := range searchArgs {
		searchOpts = append(searchOpts, mcp.WithString(a.name, mcp.Description(a.description)))
	}
	searchOpts = append(searchOpts, viewOptions()...)
	s.AddTool(mcp.NewTool("search_listings", searchOpts...), t.handleSearch)

	// random_listings
	randomOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Get a random selection of 8 current listings"),
	}, viewOptions()...)
	s.AddTool(mcp.NewTool("random_listings", randomOpts...), t.handleRandom)

	// featured_listings
	s.AddTool(mcp.NewTool("featured_listings",
		mcp.WithDescription("Get up to 4 random featured listings"),
	), t.handleFeatured)

	// listing_detail
	s.AddTool(mcp.NewTool("listing_detail",
		mcp.WithDescription("Get full details of one listing by id"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Listing id"),
		),
	), t.handleDetail)

	// listing_stats
	s.AddTool(mcp.NewTool("listing_stats",
		mcp.WithDescription("Aggregate numbers (averages, category histogram, featured count) over current listings"),
		mcp.WithNumber("limit",
			mcp.Description("Listings to sample (default: 100)"),
		),
		mcp.WithString("category",
			mcp.Description("Only count this exact category"),
		),
	), t.handleStats)
}

func viewOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("category_tag",
			mcp.Description("Category tag filter, e.g. farm-house, single-story (default: * for all)"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort key (views, createdAt, features, area, title...); prefix '-' for descending"),
		),
	}
}

func (t *Tools) newController() *resultset.Controller {
	return resultset.NewController(t.source, resultset.NopView{}, resultset.WithLogger(t.logger))
}

func (t *Tools) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	criteria := models.SearchCriteria{}
	for _, a := range searchArgs {
		if v, ok := args[a.name]; ok {
			criteria[a.name] = v
		}
	}

	ctrl := t.newController()
	if _, err := ctrl.Search(ctx, criteria); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	return jsonResult(applyView(ctrl, request))
}

func (t *Tools) handleRandom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl := t.newController()
	if _, err := ctrl.LoadInitial(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listings error: %v", err)), nil
	}
	return jsonResult(applyView(ctrl, request))
}

func (t *Tools) handleFeatured(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	featured, err := t.newController().LoadFeatured(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("featured error: %v", err)), nil
	}
	return jsonResult(featured)
}

func (t *Tools) handleDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	detail, err := t.source.FetchDetails(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detail error: %v", err)), nil
	}
	return jsonResult(detail)
}

func (t *Tools) handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 100)
	category := request.GetString("category", "")

	page, err := t.source.FetchListings(ctx, models.Params{"limit": limit})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats error: %v", err)), nil
	}
	return jsonResult(listing.PropertyStats(listing.FilterByCategory(page.Properties, category)))
}

// applyView applies the optional category_tag and sort arguments.
func applyView(ctrl *resultset.Controller, request mcp.CallToolRequest) []models.Property {
	props := ctrl.Current()
	if tag := request.GetString("category_tag", ""); tag != "" {
		props = ctrl.ApplyFilter(tag)
	}
	if key := request.GetString("sort", ""); key != "" {
		props = ctrl.ApplySort(key)
	}
	return props
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
