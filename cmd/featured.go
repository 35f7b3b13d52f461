package cmd

import (
	"context"

	"github.com/lukman83/estate-listings/internal/resultset"
	"github.com/spf13/cobra"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show a random selection of featured listings",
	RunE:  runFeatured,
}

func init() {
	featuredCmd.Flags().String("format", "table", "Output format: table, json")
	rootCmd.AddCommand(featuredCmd)
}

func runFeatured(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	return runWithController(cmd, format, func(ctx context.Context, ctrl *resultset.Controller) error {
		_, err := ctrl.LoadFeatured(ctx)
		return err
	})
}
