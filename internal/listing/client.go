package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lukman83/estate-listings/internal/httputil"
	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/progress"
)

const propertiesPath = "/properties"

// Client talks to the listings REST API and normalizes its payloads.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// MaxRetries bounds retries of transport errors and 5xx responses.
	MaxRetries int
}

// NewClient creates a Client for the API rooted at baseURL
// (e.g. "https://api.example.com/api").
func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil, 0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		MaxRetries: 2,
	}
}

// FetchListings fetches one page of listings. Nil and empty-string filters
// are dropped; limit defaults to 100 and page to 1. On failure the returned
// page is empty, never nil.
func (c *Client) FetchListings(ctx context.Context, filters models.Params) (models.Page, error) {
	const op = "fetch listings"

	endpoint := c.baseURL + propertiesPath + "?" + encodeQuery(cleanParams(filters))
	env, err := c.get(ctx, op, endpoint)
	if err != nil {
		return models.EmptyPage(), err
	}

	var data listData
	if isNullJSON(env.Data) {
		return models.EmptyPage(), &MalformedResponseError{Op: op, Reason: "missing data"}
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return models.EmptyPage(), &MalformedResponseError{Op: op, Reason: "data is not an object", Err: err}
	}
	if isNullJSON(data.Properties) {
		return models.EmptyPage(), &MalformedResponseError{Op: op, Reason: "missing properties array"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data.Properties, &items); err != nil {
		return models.EmptyPage(), &MalformedResponseError{Op: op, Reason: "properties is not an array", Err: err}
	}

	// Records are decoded one by one so a single bad entry only drops itself.
	page := models.Page{Properties: make([]models.Property, 0, len(items))}
	for i, item := range items {
		var raw RawProperty
		if err := json.Unmarshal(item, &raw); err != nil {
			c.logger.Warn("skipping unreadable listing", "index", i, "error", err)
			continue
		}
		page.Properties = append(page.Properties, NormalizeListItem(raw))
	}
	if !isNullJSON(data.Pagination) {
		var pg models.Pagination
		if err := json.Unmarshal(data.Pagination, &pg); err == nil {
			page.Pagination = &pg
		} else {
			c.logger.Warn("ignoring unreadable pagination", "error", err)
		}
	}

	progress.Report(ctx, fmt.Sprintf("Fetched %d listings", len(page.Properties)))
	return page, nil
}

// FetchFeatured fetches up to limit listings the API marks as featured.
// The API flag is not authoritative; callers re-check IsFeatured.
func (c *Client) FetchFeatured(ctx context.Context, limit int) (models.Page, error) {
	return c.FetchListings(ctx, models.Params{
		"featured": "true",
		"limit":    limit,
		"page":     1,
	})
}

// FetchDetails fetches a single listing in the detail shape.
func (c *Client) FetchDetails(ctx context.Context, propertyID string) (models.PropertyDetail, error) {
	const op = "fetch details"

	if strings.TrimSpace(propertyID) == "" {
		return models.PropertyDetail{Features: map[string]any{}}, fmt.Errorf("%s: empty property id", op)
	}

	endpoint := c.baseURL + propertiesPath + "/" + url.PathEscape(propertyID)
	env, err := c.get(ctx, op, endpoint)
	if err != nil {
		return models.PropertyDetail{Features: map[string]any{}}, err
	}

	var raw RawProperty
	if isNullJSON(env.Data) {
		return models.PropertyDetail{Features: map[string]any{}}, &MalformedResponseError{Op: op, Reason: "missing data"}
	}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return models.PropertyDetail{Features: map[string]any{}}, &MalformedResponseError{Op: op, Reason: "data is not a listing", Err: err}
	}
	return NormalizeDetail(raw), nil
}

// get performs the GET and validates the response envelope.
func (c *Client) get(ctx context.Context, op, endpoint string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	for k, v := range httputil.JSONHeaders() {
		req.Header[k] = v
	}

	c.logger.Debug("listings request", "op", op, "url", endpoint)
	resp, err := httputil.DoWithRetry(c.httpClient, req, c.MaxRetries)
	if err != nil {
		c.logger.Warn("listings request failed", "op", op, "url", endpoint, "error", err)
		return nil, &NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("listings request rejected", "op", op, "url", endpoint, "status", resp.StatusCode)
		return nil, &NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	var env apiResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &MalformedResponseError{Op: op, Reason: "invalid JSON", Err: err}
	}
	if env.Success == nil {
		return nil, &MalformedResponseError{Op: op, Reason: "missing success flag"}
	}
	if !*env.Success {
		reason := "success flag is false"
		if env.Message != "" {
			reason += ": " + env.Message
		}
		return nil, &MalformedResponseError{Op: op, Reason: reason}
	}
	return &env, nil
}
