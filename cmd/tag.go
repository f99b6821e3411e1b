package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Search and explore FRED tags",
	Long: `Commands for browsing FRED tags and finding series by tag.

Several tags are given as separate arguments; series must carry all of them.`,
}

// ─── tag list ─────────────────────────────────────────────────────────────────

var (
	tagListRT   realtimeFlags
	tagListPage pageFlags
	tagListOpts struct {
		search, names, group string
	}
)

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"search"},
	Short:   "List or search FRED tags",
	Example: `  fredkit tag list --search inflation
  fredkit tag list --tag-group-id geo --order-by popularity --sort desc --limit 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := tagListOpts
		req := fred.Tags().
			WithRealtimeStart(tagListRT.start).
			WithRealtimeEnd(tagListRT.end).
			WithLimit(tagListPage.limit).
			WithOffset(tagListPage.offset).
			WithSort(tagListPage.sort).
			WithOrderBy(tagListPage.orderBy).
			WithSearch(o.search).
			WithTagNames(o.names).
			WithTagGroupID(o.group)
		return runRequest(cmd, "tag list", req)
	},
}

// ─── tag related ──────────────────────────────────────────────────────────────

var (
	tagRelatedRT    realtimeFlags
	tagRelatedPage  pageFlags
	tagRelatedGroup string
)

var tagRelatedCmd = &cobra.Command{
	Use:     "related <TAG...>",
	Short:   "List tags that appear on series together with the given tags",
	Example: `  fredkit tag related monetary\ aggregates weekly --limit 10`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := joinTags(args)
		req := fred.RelatedTags(names).
			WithRealtimeStart(tagRelatedRT.start).
			WithRealtimeEnd(tagRelatedRT.end).
			WithLimit(tagRelatedPage.limit).
			WithOffset(tagRelatedPage.offset).
			WithSort(tagRelatedPage.sort).
			WithOrderBy(tagRelatedPage.orderBy).
			WithTagGroupID(tagRelatedGroup)
		return runRequest(cmd, "tag related "+names, req)
	},
}

// ─── tag series ───────────────────────────────────────────────────────────────

var (
	tagSeriesRT      realtimeFlags
	tagSeriesPage    pageFlags
	tagSeriesExclude string
)

var tagSeriesCmd = &cobra.Command{
	Use:   "series <TAG...>",
	Short: "List series carrying all of the given tags",
	Example: `  fredkit tag series inflation
  fredkit tag series inflation monthly --exclude-tags discontinued
  fredkit tag series cpi --limit 10 --format csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := joinTags(args)
		req := fred.TagsSeries(names).
			WithExcludeTagNames(tagSeriesExclude).
			WithRealtimeStart(tagSeriesRT.start).
			WithRealtimeEnd(tagSeriesRT.end).
			WithLimit(tagSeriesPage.limit).
			WithOffset(tagSeriesPage.offset).
			WithSort(tagSeriesPage.sort).
			WithOrderBy(tagSeriesPage.orderBy)
		return runRequest(cmd, "tag series "+names, req)
	},
}

// joinTags turns tag arguments into FRED's semicolon separated list.
func joinTags(args []string) string {
	tags := make([]string, 0, len(args))
	for _, a := range args {
		for _, t := range strings.Split(a, ";") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return strings.Join(tags, ";")
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagListCmd, tagRelatedCmd, tagSeriesCmd)

	tagListRT.register(tagListCmd)
	tagListPage.register(tagListCmd, true)
	f := tagListCmd.Flags()
	f.StringVar(&tagListOpts.search, "search", "", "words to match against tag names and notes")
	f.StringVar(&tagListOpts.names, "tag-names", "", "semicolon separated tag names to look up")
	f.StringVar(&tagListOpts.group, "tag-group-id", "", "tag group: freq|gen|geo|geot|rls|seas|src|cc")

	tagRelatedRT.register(tagRelatedCmd)
	tagRelatedPage.register(tagRelatedCmd, true)
	tagRelatedCmd.Flags().StringVar(&tagRelatedGroup, "tag-group-id", "", "only related tags of this group")

	tagSeriesRT.register(tagSeriesCmd)
	tagSeriesPage.register(tagSeriesCmd, true)
	tagSeriesCmd.Flags().StringVar(&tagSeriesExclude, "exclude-tags", "", "semicolon separated tags no series may carry")
}
