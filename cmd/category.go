package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/crawl"
	"github.com/derickschaefer/fredkit/internal/render"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Browse the FRED category hierarchy",
	Long: `Commands for navigating the FRED category tree.

Every category id is an integer; "root" is accepted for category 0.`,
}

// ─── category get / children / related ───────────────────────────────────────

var categoryGetCmd = &cobra.Command{
	Use:   "get <CATEGORY_ID>",
	Short: "Fetch metadata for a category",
	Example: `  fredkit category get 125
  fredkit category get root`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		return runRequest(cmd, "category get "+id, fred.Category(id))
	},
}

var categoryChildrenRT realtimeFlags

var categoryChildrenCmd = &cobra.Command{
	Use:     "children <CATEGORY_ID>",
	Aliases: []string{"ls"},
	Short:   "List the child categories of a category",
	Example: `  fredkit category children root
  fredkit category ls 32991`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		req := fred.CategoryChildren(id).
			WithRealtimeStart(categoryChildrenRT.start).
			WithRealtimeEnd(categoryChildrenRT.end)
		return runRequest(cmd, "category children "+id, req)
	},
}

var categoryRelatedRT realtimeFlags

var categoryRelatedCmd = &cobra.Command{
	Use:   "related <CATEGORY_ID>",
	Short: "List categories related to a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		req := fred.CategoryRelated(id).
			WithRealtimeStart(categoryRelatedRT.start).
			WithRealtimeEnd(categoryRelatedRT.end)
		return runRequest(cmd, "category related "+id, req)
	},
}

// ─── category series ──────────────────────────────────────────────────────────

var (
	categorySeriesRT     realtimeFlags
	categorySeriesPage   pageFlags
	categorySeriesFilter filterFlags
)

var categorySeriesCmd = &cobra.Command{
	Use:   "series <CATEGORY_ID>",
	Short: "List the series in a category",
	Example: `  fredkit category series 125 --limit 10
  fredkit category series 32991 --filter-variable frequency --filter-value Monthly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		req := fred.CategorySeries(id).
			WithRealtimeStart(categorySeriesRT.start).
			WithRealtimeEnd(categorySeriesRT.end).
			WithLimit(categorySeriesPage.limit).
			WithOffset(categorySeriesPage.offset).
			WithSort(categorySeriesPage.sort).
			WithOrderBy(categorySeriesPage.orderBy).
			WithFilterOn(categorySeriesFilter.variable).
			WithFilter(categorySeriesFilter.value)
		return runRequest(cmd, "category series "+id, req)
	},
}

// ─── category tree ────────────────────────────────────────────────────────────

var categoryTreeDepth int

var categoryTreeCmd = &cobra.Command{
	Use:   "tree <CATEGORY_ID>",
	Short: "Walk the category tree below a category",
	Long: `Walk the category hierarchy below a category, fetching each level
concurrently. The table format draws the tree; other formats list every
category found, parents before children.`,
	Example: `  fredkit category tree root --depth 2
  fredkit category tree 32991 --depth 0 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		deps, err := buildAPIDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()
		root, warnings, err := deps.Crawler.Tree(cmd.Context(), id, categoryTreeDepth)
		if err != nil {
			return err
		}

		if resolveFormat(deps.Config.Format) == render.FormatTable {
			if err := printTree(cmd.OutOrStdout(), root); err != nil {
				return err
			}
			if !deps.Config.Quiet {
				for _, warn := range warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "⚠  %s\n", warn)
				}
			}
			return nil
		}

		result := derivedResult(fmt.Sprintf("category tree %s", id), "category/tree", "categories", flatten(root))
		result.Warnings = warnings
		result.Stats.DurationMs = time.Since(start).Milliseconds()
		return emit(cmd, deps, result)
	},
}

// printTree draws root to the --out file or def.
func printTree(def io.Writer, root *crawl.Node) (err error) {
	w, closeFn, err := outputWriter(def)
	if err != nil {
		return err
	}
	defer closeOutput(closeFn, &err)
	root.Print(w)
	return nil
}

// flatten lists the categories of a tree depth first.
func flatten(n *crawl.Node) []fred.Entity {
	out := []fred.Entity{n.Category}
	for _, c := range n.Children {
		out = append(out, flatten(c)...)
	}
	return out
}

// ─── category series-all ──────────────────────────────────────────────────────

var categorySeriesAllDepth int

var categorySeriesAllCmd = &cobra.Command{
	Use:   "series-all <CATEGORY_ID>",
	Short: "List every series in a category and its subcategories",
	Long: `Walk the category tree below a category and list the series of every
category found. A series filed under several categories is listed once.`,
	Example: `  fredkit category series-all 32991 --depth 1
  fredkit category series-all 125 --format csv --out series.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCategoryID(args[0])
		if err != nil {
			return err
		}
		deps, err := buildAPIDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		start := time.Now()
		root, warnings, err := deps.Crawler.Tree(cmd.Context(), id, categorySeriesAllDepth)
		if err != nil {
			return err
		}
		deps.API.Log().Info("listing series of %d categories", root.Count())

		series, more := deps.Crawler.CategorySeries(cmd.Context(), root.IDs())
		result := derivedResult(fmt.Sprintf("category series-all %s", id), "category/series-all", "seriess", series)
		result.Warnings = append(warnings, more...)
		result.Stats.DurationMs = time.Since(start).Milliseconds()
		return emit(cmd, deps, result)
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryGetCmd, categoryChildrenCmd, categoryRelatedCmd,
		categorySeriesCmd, categoryTreeCmd, categorySeriesAllCmd)

	categoryChildrenRT.register(categoryChildrenCmd)
	categoryRelatedRT.register(categoryRelatedCmd)

	categorySeriesRT.register(categorySeriesCmd)
	categorySeriesPage.register(categorySeriesCmd, true)
	categorySeriesFilter.register(categorySeriesCmd)

	categoryTreeCmd.Flags().IntVar(&categoryTreeDepth, "depth", 2, "levels of children to walk (0 for all)")
	categorySeriesAllCmd.Flags().IntVar(&categorySeriesAllDepth, "depth", 1, "levels of children to walk (0 for all)")
}
