package client

import (
	"context"
	"fmt"
	"io"

	"github.com/cloo-solutions/digest/internal/domain"
	"github.com/cloo-solutions/digest/internal/feed"
	"github.com/spf13/cobra"
)

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var (
		method    string
		benchmark bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search content",
		Long: `Searches content by full-text (fts) or semantic similarity.

With --benchmark the query is sent to the benchmark endpoint instead and
the response includes a timing breakdown. The benchmark endpoint does not
take a method.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			searchMethod, err := domain.ParseSearchMethod(method)
			if err != nil {
				return err
			}

			rt, err := NewRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			outputJSON, _ := cmd.Flags().GetBool("output")
			if benchmark {
				return runSearchBenchmark(cmd.Context(), rt.Facade, cmd.OutOrStdout(), args[0], outputJSON)
			}
			return runSearch(cmd.Context(), rt.Facade, cmd.OutOrStdout(), args[0], searchMethod, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", string(domain.DefaultSearchMethod), "Search method (fts|semantic)")
	cmd.Flags().BoolVarP(&benchmark, "benchmark", "b", false, "Use the benchmark endpoint and show timings")

	return cmd
}

func runSearch(ctx context.Context, facade *feed.Facade, w io.Writer, query string, method domain.SearchMethod, outputJSON bool) error {
	results, err := facade.SearchContent(ctx, query, method)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputJSON {
		return writeJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d results (%s):\n\n", len(results), method)
	printContentList(w, results, 1)

	return nil
}

func runSearchBenchmark(ctx context.Context, facade *feed.Facade, w io.Writer, query string, outputJSON bool) error {
	bench, err := facade.SearchBenchmark(ctx, query)
	if err != nil {
		return fmt.Errorf("search benchmark failed: %w", err)
	}

	if outputJSON {
		return writeJSON(w, bench)
	}

	a := bench.Analysis
	fmt.Fprintf(w, "Query: %q\n", bench.Query)
	fmt.Fprintf(w, "Total:         %.3fs\n", a.TotalTime)
	fmt.Fprintf(w, "Preprocessing: %.3fs\n", a.PreprocessingTime)
	fmt.Fprintf(w, "Search:        %.3fs\n", a.SearchTime)
	fmt.Fprintf(w, "Ranking:       %.3fs\n", a.RankingTime)
	fmt.Fprintln(w, separator())

	if len(bench.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d results:\n\n", len(bench.Results))
	printContentList(w, bench.Results, 1)

	return nil
}
