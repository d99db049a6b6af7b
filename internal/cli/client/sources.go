package client

import (
	"context"
	"fmt"
	"io"

	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/spf13/cobra"
)

// SourcesCmd creates the sources command.
func SourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List content sources",
		Long:  "Lists every publisher or feed the digest service aggregates from.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSources(cmd.Context(), rt.Facade, cmd.OutOrStdout(), outputJSON)
		},
	}

	return cmd
}

func runSources(ctx context.Context, facade *feed.Facade, w io.Writer, outputJSON bool) error {
	sources, err := facade.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if outputJSON {
		return writeJSON(w, sources)
	}

	if len(sources) == 0 {
		fmt.Fprintln(w, "No sources found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d sources:\n\n", len(sources))
	for i, s := range sources {
		fmt.Fprintf(w, "%d. %s\n", i+1, s.Name)
		fmt.Fprintf(w, "   URL: %s\n", s.URL)
		fmt.Fprintf(w, "   Updated: %s\n", formatTime(s.UpdatedAt))
		fmt.Fprintf(w, "   ID: %s\n", s.ID)
	}

	return nil
}
