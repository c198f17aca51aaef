// Command server runs the cinema ticket dashboard API and its helpers.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Cinema ticket dashboard API",
	Long:  `Serves movie metadata, showtime selection, seat maps and the concession cart for the ticket dashboard.`,
	// serving is the default action
	RunE:         runServe,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, consumeCmd, tokenCmd, showtimesCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
