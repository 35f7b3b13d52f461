package cmd

import (
	"fmt"
	"sort"

	"github.com/lukman83/estate-listings/internal/listing"
	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/progress"
	"github.com/lukman83/estate-listings/internal/ui"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories present in current listings and their filter tags",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().Int("limit", 100, "Number of listings to sample")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start("Discovering categories...")
	ctx := progress.With(cmd.Context(), spin.Update)
	page, err := client.FetchListings(ctx, models.Params{"limit": limit})
	spin.Stop()
	if err != nil {
		return fmt.Errorf("categories failed: %w", err)
	}

	categories := listing.UniqueCategories(page.Properties)
	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
		return nil
	}

	counts := listing.PropertyStats(page.Properties).Categories
	sort.SliceStable(categories, func(i, j int) bool {
		return counts[categories[i]] > counts[categories[j]]
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Categories in %d listings:\n\n", len(page.Properties))
	for i, c := range categories {
		fmt.Fprintf(out, " %2d. %-30s  --filter %-14s  (%d listings)\n", i+1, c, listing.CategoryClass(c), counts[c])
	}
	return nil
}
