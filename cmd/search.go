package cmd

import (
	"context"
	"fmt"

	"github.com/lukman83/estate-listings/internal/models"
	"github.com/lukman83/estate-listings/internal/resultset"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search listings with the search form criteria",
	Example: `  estate search --type "farm house" --bedrooms 3
  estate search --lot-size 500 --floor-level single --sort -views`,
	RunE: runSearch,
}

// searchFlags maps flag names to search form keys.
var searchFlags = []struct {
	flag, key, usage string
}{
	{"type", "property_type", "Property category"},
	{"bedrooms", "bedrooms", "Number of bedrooms"},
	{"bathrooms", "bathrooms", "Number of bathrooms"},
	{"area", "area", "Covered area"},
	{"lot-size", "lot_size", "Lot size in meters"},
	{"garage", "garage", "Number of garages"},
	{"floor-level", "floor_level", "Floor level: single or multi"},
	{"location", "location", "Location text"},
}

func init() {
	for _, f := range searchFlags {
		searchCmd.Flags().String(f.flag, "", f.usage)
	}
	searchCmd.Flags().Int("lot-min", 0, "Client-side minimum lot size")
	searchCmd.Flags().Int("lot-max", 0, "Client-side maximum lot size (0 = no range filter)")
	addViewFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria := models.SearchCriteria{}
	for _, f := range searchFlags {
		if v, _ := cmd.Flags().GetString(f.flag); v != "" {
			criteria[f.key] = v
		}
	}
	lotMin, _ := cmd.Flags().GetInt("lot-min")
	lotMax, _ := cmd.Flags().GetInt("lot-max")
	if lotMax != 0 && lotMin > lotMax {
		return fmt.Errorf("--lot-min %d is greater than --lot-max %d", lotMin, lotMax)
	}
	format, _ := cmd.Flags().GetString("format")

	return runWithController(cmd, format, func(ctx context.Context, ctrl *resultset.Controller) error {
		if _, err := ctrl.Search(ctx, criteria); err != nil {
			return err
		}
		applyView(cmd, ctrl)
		if lotMax != 0 {
			ctrl.ApplyLotSize(lotMin, lotMax)
		}
		return nil
	})
}
