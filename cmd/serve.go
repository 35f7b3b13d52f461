package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/estate-listings/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Estate Listings MCP server on stdio...")

	if err := mcpserver.Serve(mcpserver.NewTools(client, logger)); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
