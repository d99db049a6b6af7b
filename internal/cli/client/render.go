package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cloo-solutions/digest/internal/domain"
)

const (
	separatorWidth = 40
	summaryLen     = 100
)

func writeJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func separator() string {
	return strings.Repeat("-", separatorWidth)
}

// summarize truncates body text on a rune boundary.
func summarize(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= summaryLen {
		return body
	}
	return string(runes[:summaryLen-3]) + "..."
}

func formatTime(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04 MST")
}

func printContentList(w io.Writer, items []domain.Content, startIndex int) {
	for i, item := range items {
		fmt.Fprintf(w, "%d. %s\n", startIndex+i, item.Title)
		if item.Body != "" {
			fmt.Fprintf(w, "   %s\n", summarize(item.Body))
		}
		if item.URL != "" {
			fmt.Fprintf(w, "   URL: %s\n", item.URL)
		}
		fmt.Fprintf(w, "   Published: %s\n", formatTime(item.PublishedAt))
		fmt.Fprintf(w, "   ID: %s (source %s)\n", item.ID, item.SourceID)
		if i < len(items)-1 {
			fmt.Fprintln(w, separator())
		}
	}
}
