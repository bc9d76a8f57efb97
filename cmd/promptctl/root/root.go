package root

import (
	"os"

	"github.com/spf13/cobra"
)

// DefaultServer is used when neither --server nor PROMPTDESK_URL is set.
const DefaultServer = "http://localhost:8080"

// rootCmd is the base command. Subcommands are attached in wire.go.
var rootCmd = &cobra.Command{
	Use:           "promptctl",
	Short:         "promptdesk command line client",
	Long:          "Slug utilities and record creation against a running promptdesk admin server.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	server := os.Getenv("PROMPTDESK_URL")
	if server == "" {
		server = DefaultServer
	}
	rootCmd.PersistentFlags().String("server", server, "Admin server base URL (env PROMPTDESK_URL)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
