package cmd

import (
	"context"

	"github.com/lukman83/estate-listings/internal/resultset"
	"github.com/spf13/cobra"
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Show a random selection of current listings",
	RunE:  runListings,
}

func init() {
	addViewFlags(listingsCmd)
	listingsCmd.Flags().Bool("with-featured", false, "Also load the featured section")
	rootCmd.AddCommand(listingsCmd)
}

func runListings(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	withFeatured, _ := cmd.Flags().GetBool("with-featured")

	return runWithController(cmd, format, func(ctx context.Context, ctrl *resultset.Controller) error {
		if withFeatured {
			if err := ctrl.LoadHome(ctx); err != nil {
				return err
			}
		} else if _, err := ctrl.LoadInitial(ctx); err != nil {
			return err
		}
		applyView(cmd, ctrl)
		return nil
	})
}
