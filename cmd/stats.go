package cmd

import (
	"fmt"

	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/progress"
	"github.com/lukman83/estate-listings/internal/ui"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate numbers over a page of listings",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("limit", 100, "Number of listings to sample")
	statsCmd.Flags().String("category", "", "Only count listings with this exact category")
	statsCmd.Flags().String("format", "table", "Output format: table, json")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	format, _ := cmd.Flags().GetString("format")

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start("Collecting listings...")
	ctx := progress.With(cmd.Context(), spin.Update)
	page, err := client.FetchListings(ctx, models.Params{"limit": limit})
	spin.Stop()
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	stats := listing.PropertyStats(listing.FilterByCategory(page.Properties, category))
	if format == "json" {
		return ui.PrintJSON(cmd.OutOrStdout(), stats)
	}
	ui.PrintStats(cmd.OutOrStdout(), stats)
	return nil
}
