package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/otdb/config"
	"github.com/s0up4200/otdb/opentdb"
	"github.com/s0up4200/otdb/opentdb/blocking"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [category...]",
	Short: "Show question counts",
	Long: `Without arguments, show the global question counts. With category ids or
names, show the per difficulty question counts of each category.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		details, err := client.GlobalDetails().Send()
		if err != nil {
			return fmt.Errorf("failed to fetch global stats: %w", err)
		}
		printGlobalStats(cmd.OutOrStdout(), details)
		return nil
	}

	categories := make([]opentdb.Category, 0, len(args))
	for _, arg := range args {
		c, err := config.ResolveCategory(arg)
		if err != nil {
			return err
		}
		if c == opentdb.CategoryAny {
			return fmt.Errorf("stats need a concrete category, got %q", arg)
		}
		categories = append(categories, c)
	}

	details, err := fetchCategoryDetails(cmd.Context(), client, categories, cfg.Stats.Concurrency)
	if err != nil {
		return err
	}

	printCategoryStats(cmd.OutOrStdout(), details)
	return nil
}

// fetchCategoryDetails queries each category on its own cloned client so
// requests run in parallel. Results keep the order of categories.
func fetchCategoryDetails(ctx context.Context, base *blocking.Client, categories []opentdb.Category, limit int) ([]opentdb.CategoryDetails, error) {
	results := make([]opentdb.CategoryDetails, len(categories))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, c := range categories {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			worker := base.Clone()
			defer worker.Close()

			details, err := worker.CategoryDetails(c).Send()
			if err != nil {
				return fmt.Errorf("failed to fetch stats for %s: %w", c, err)
			}

			logger.Debug().
				Int("category", c.ID()).
				Int("total", details.QuestionCount.Total).
				Msg("Fetched category stats")

			results[i] = details
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printGlobalStats(w io.Writer, details opentdb.GlobalDetails) {
	fmt.Fprintln(w, "Overall:")
	printGlobalRow(w, "  all categories", details.Overall)

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range slices.Sorted(maps.Keys(details.Categories)) {
		printGlobalRow(w, fmt.Sprintf("  %2d %s", c.ID(), c), details.Categories[c])
	}
}

func printGlobalRow(w io.Writer, label string, s opentdb.GlobalStats) {
	fmt.Fprintf(w, "%-50s total %6d  verified %6d  pending %5d  rejected %5d\n",
		label, s.Total, s.Verified, s.Pending, s.Rejected)
}

func printCategoryStats(w io.Writer, details []opentdb.CategoryDetails) {
	for _, d := range details {
		q := d.QuestionCount
		fmt.Fprintf(w, "%2d %-45s total %5d  easy %5d  medium %5d  hard %5d\n",
			d.CategoryID.ID(), d.CategoryID, q.Total, q.Easy, q.Medium, q.Hard)
	}
}
