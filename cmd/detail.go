package cmd

import (
	"github.com/lukman83/estate-listings/internal/ui"
	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail [property-id]",
	Short: "Show full details of one listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func init() {
	detailCmd.Flags().String("format", "table", "Output format: table, json")
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start("Loading listing " + args[0] + "...")
	detail, err := client.FetchDetails(cmd.Context(), args[0])
	spin.Stop()
	if err != nil {
		return err
	}

	if format == "json" {
		return ui.PrintJSON(cmd.OutOrStdout(), detail)
	}
	ui.PrintDetail(cmd.OutOrStdout(), detail)
	return nil
}
