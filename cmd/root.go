package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lukman83/estate-listings/config"
	"github.com/lukman83/estate-listings/internal/httputil"
	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/progress"
	"github.com/lukman83/estate-listings/internal/resultset"
	"github.com/lukman83/estate-listings/internal/transport"
	"github.com/lukman83/estate-listings/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "estate",
	Short:         "Estate Listings - real-estate listings CLI & MCP server",
	Long:          "Browse, search, filter and sort property listings served by a listings REST API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("base-url", "", "Listings API base URL (default from $ESTATE_BASE_URL)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout (default 15s)")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect the API host's robots.txt")
	rootCmd.PersistentFlags().String("proxy-file", "", "Path to proxy list file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	flags := rootCmd.PersistentFlags()
	if v, _ := flags.GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := flags.GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	if v, _ := flags.GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
	if v, _ := flags.GetString("proxy-file"); v != "" {
		cfg.ProxyFile = v
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// buildHTTPClient creates the rate-limited, robots-aware HTTP client from config.
func buildHTTPClient() (*http.Client, error) {
	baseTransport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	var providers []transport.ProxyProvider
	if cfg.ProxyURL != "" {
		p, err := transport.NewHTTPProxyProvider(cfg.ProxyURL)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	if cfg.ProxyFile != "" {
		fromFile, err := transport.LoadProxyFile(cfg.ProxyFile)
		if err != nil {
			return nil, err
		}
		providers = append(providers, fromFile...)
	}

	robots := transport.NewRobotsChecker(&http.Client{Timeout: cfg.Timeout}, cfg.RespectRobots)

	rt := &transport.Transport{
		Base:        baseTransport,
		UserAgent:   cfg.UserAgent,
		Robots:      robots,
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Proxy:       transport.NewProxyRotator(providers),
	}

	return httputil.NewHTTPClient(rt, cfg.Timeout), nil
}

// newClient builds the listings API client from config.
func newClient() (*listing.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	httpClient, err := buildHTTPClient()
	if err != nil {
		return nil, err
	}
	client := listing.NewClient(httpClient, cfg.BaseURL, logger)
	client.MaxRetries = cfg.MaxRetries
	return client, nil
}

// runWithController wires a controller to a terminal view, runs fn and
// renders whatever state fn left behind, including on failure.
func runWithController(cmd *cobra.Command, format string, fn func(ctx context.Context, ctrl *resultset.Controller) error) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	term := ui.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
	ctrl := resultset.NewController(client, term, resultset.WithLogger(logger))
	ctx := progress.With(cmd.Context(), term.Progress)

	runErr := fn(ctx, ctrl)
	if err := term.Render(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// addViewFlags registers the client-side filter/sort/format flags.
func addViewFlags(c *cobra.Command) {
	c.Flags().String("filter", "*", "Category tag to show (e.g. farm-house, single-story; * for all)")
	c.Flags().String("sort", "", "Sort key: views, createdAt, features, bathrooms, area, title... prefix '-' for descending")
	c.Flags().String("format", "table", "Output format: table, json")
}

// applyView applies the --filter and --sort flags to the loaded result set.
func applyView(cmd *cobra.Command, ctrl *resultset.Controller) {
	if tag, _ := cmd.Flags().GetString("filter"); tag != "" && tag != listing.AllCategories {
		ctrl.ApplyFilter(tag)
	}
	if key, _ := cmd.Flags().GetString("sort"); key != "" {
		ctrl.ApplySort(key)
	}
}
