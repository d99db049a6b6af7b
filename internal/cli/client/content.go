package client

import (
	"context"
	"fmt"
	"io"

	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/spf13/cobra"
)

// ContentCmd creates the content parent command.
func ContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Browse aggregated content",
		Long:  "List content page by page or show a single item.",
	}

	cmd.AddCommand(ContentListCmd())
	cmd.AddCommand(ContentGetCmd())

	return cmd
}

// ContentListCmd creates the content list command.
func ContentListCmd() *cobra.Command {
	var (
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List content",
		Long:    "Lists one page of aggregated content. Pages are numbered from 1.",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outputJSON, _ := cmd.Flags().GetBool("output")
			return runContentList(cmd.Context(), rt.Facade, cmd.OutOrStdout(), page, size, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-based)")
	cmd.Flags().IntVarP(&size, "size", "n", 10, "Items per page")

	return cmd
}

// ContentGetCmd creates the content get command.
func ContentGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <content_id>",
		Short:   "Show a content item",
		Long:    "Retrieves a content item by its ID and displays the full text.",
		Aliases: []string{"view"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outputJSON, _ := cmd.Flags().GetBool("output")
			return runContentGet(cmd.Context(), rt.Facade, cmd.OutOrStdout(), args[0], outputJSON)
		},
	}

	return cmd
}

func runContentList(ctx context.Context, facade *feed.Facade, w io.Writer, page, size int, outputJSON bool) error {
	resp, err := facade.ListContent(ctx, page, size)
	if err != nil {
		return fmt.Errorf("failed to list content: %w", err)
	}

	if outputJSON {
		return writeJSON(w, resp)
	}

	if len(resp.Items) == 0 {
		fmt.Fprintf(w, "No content on page %d (%d items total).\n", resp.Page, resp.Total)
		return nil
	}

	fmt.Fprintf(w, "Page %d, showing %d of %d items:\n\n", resp.Page, len(resp.Items), resp.Total)
	printContentList(w, resp.Items, resp.Offset()+1)

	if resp.HasMore() {
		fmt.Fprintf(w, "\n%s\n", separator())
		fmt.Fprintf(w, "More content available. Use --page %d\n", resp.Page+1)
	}

	return nil
}

func runContentGet(ctx context.Context, facade *feed.Facade, w io.Writer, id string, outputJSON bool) error {
	content, err := facade.GetContent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if outputJSON {
		return writeJSON(w, content)
	}

	fmt.Fprintf(w, "Title: %s\n", content.Title)
	fmt.Fprintf(w, "Source: %s\n", content.SourceID)
	if content.URL != "" {
		fmt.Fprintf(w, "URL: %s\n", content.URL)
	}
	fmt.Fprintf(w, "Published: %s\n", formatTime(content.PublishedAt))
	fmt.Fprintf(w, "Updated: %s\n", formatTime(content.UpdatedAt))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Content ---")
	fmt.Fprintln(w, content.Body)

	if len(content.Similar) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "--- Similar ---")
		for _, s := range content.Similar {
			fmt.Fprintf(w, "- %s (ID: %s)\n", s.Title, s.ID)
		}
	}

	return nil
}
