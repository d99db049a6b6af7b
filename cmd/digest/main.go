package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/digest/internal/cli"
	"github.com/cloo-solutions/digest/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "digest",
		Short: "Digest CLI - browse and search aggregated content",
		Long: `Digest CLI reads sources and content from the digest API, or from
built-in sample data when no backend is running.

Environment variables:
  DIGEST_API_URL          API base URL (default: http://localhost:8000/api/v1)
  DIGEST_USE_SAMPLE_DATA  Serve built-in sample data instead of calling the API
  DIGEST_SENTRY_DSN       Enable tracing of API calls`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	client.AddPersistentFlags(rootCmd)
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SourcesCmd())
	rootCmd.AddCommand(client.ContentCmd())
	rootCmd.AddCommand(client.SimilarCmd())
	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.ConfigCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
