package client

import (
	"context"
	"fmt"
	"io"

	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/spf13/cobra"
)

// SimilarCmd creates the similar command.
func SimilarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <content_id>",
		Short: "Show content similar to an item",
		Long:  fmt.Sprintf("Lists up to %d items the service considers similar to the given content.", feed.MaxSimilar),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSimilar(cmd.Context(), rt.Facade, cmd.OutOrStdout(), args[0], outputJSON)
		},
	}

	return cmd
}

func runSimilar(ctx context.Context, facade *feed.Facade, w io.Writer, id string, outputJSON bool) error {
	items, err := facade.SimilarContent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get similar content: %w", err)
	}

	if outputJSON {
		return writeJSON(w, items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No similar content found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d similar items:\n\n", len(items))
	printContentList(w, items, 1)

	return nil
}
