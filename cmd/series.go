package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Discover and inspect FRED data series",
	Long: `Commands for finding and inspecting FRED data series.

A series is a named sequence of economic data observations, such as:
  GDP       Gross Domestic Product
  CPIAUCSL  Consumer Price Index for All Urban Consumers
  UNRATE    Unemployment Rate`,
}

// ─── series get ───────────────────────────────────────────────────────────────

var seriesGetRT realtimeFlags

var seriesGetCmd = &cobra.Command{
	Use:   "get <SERIES_ID...>",
	Short: "Fetch metadata for one or more series",
	Example: `  fredkit series get GDP
  fredkit series get GDP CPIAUCSL UNRATE --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := normaliseIDs(args)
		reqs := make([]fred.APIRequest, len(ids))
		for i, id := range ids {
			reqs[i] = fred.Series(id).
				WithRealtimeStart(seriesGetRT.start).
				WithRealtimeEnd(seriesGetRT.end)
		}
		return runBatch(cmd, "series get "+strings.Join(ids, " "), reqs)
	},
}

// ─── series obs ───────────────────────────────────────────────────────────────

var (
	seriesObsRT   realtimeFlags
	seriesObsPage pageFlags
	seriesObsOpts struct {
		start, end, units, frequency, aggregation, outputType, vintageDates string
	}
)

var seriesObsCmd = &cobra.Command{
	Use:     "obs <SERIES_ID...>",
	Aliases: []string{"observations"},
	Short:   "Fetch observations (data values) for one or more series",
	Long: `Fetch observations for one or more series. Missing values are reported
by FRED as "." and kept as-is; jsonl output turns them into null.

Units transform the values on the FRED side:
  lin  levels (default)   chg  change        ch1  change from a year ago
  pch  percent change     pc1  percent change from a year ago
  pca  compounded annual rate of change    cch  continuously compounded change
  cca  continuously compounded annual rate of change    log  natural log`,
	Example: `  fredkit series obs GNPCA --limit 10
  fredkit series obs UNRATE --start 2020-01-01 --end 2020-12-31 --format csv
  fredkit series obs CPIAUCSL --units pc1 --frequency a --aggregation avg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := normaliseIDs(args)
		o := seriesObsOpts
		reqs := make([]fred.APIRequest, len(ids))
		for i, id := range ids {
			reqs[i] = fred.SeriesObservations(id).
				WithRealtimeStart(seriesObsRT.start).
				WithRealtimeEnd(seriesObsRT.end).
				WithLimit(seriesObsPage.limit).
				WithOffset(seriesObsPage.offset).
				WithSort(seriesObsPage.sort).
				WithStart(o.start).
				WithEnd(o.end).
				WithUnits(o.units).
				WithFrequency(o.frequency).
				WithAggregation(o.aggregation).
				WithOutputType(o.outputType).
				WithVintageDates(o.vintageDates)
		}
		return runBatch(cmd, "series obs "+strings.Join(ids, " "), reqs)
	},
}

// ─── series search ────────────────────────────────────────────────────────────

var (
	seriesSearchRT     realtimeFlags
	seriesSearchPage   pageFlags
	seriesSearchFilter filterFlags
	seriesSearchOpts   struct {
		searchType, tags, excludeTags string
	}
)

var seriesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for series by keyword",
	Example: `  fredkit series search "consumer price index"
  fredkit series search unemployment --limit 5 --order-by popularity --sort desc
  fredkit series search inflation --tags monthly --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := seriesSearchOpts
		req := fred.SeriesSearch(args[0]).
			WithSearchType(o.searchType).
			WithRealtimeStart(seriesSearchRT.start).
			WithRealtimeEnd(seriesSearchRT.end).
			WithLimit(seriesSearchPage.limit).
			WithOffset(seriesSearchPage.offset).
			WithSort(seriesSearchPage.sort).
			WithOrderBy(seriesSearchPage.orderBy).
			WithFilterOn(seriesSearchFilter.variable).
			WithFilter(seriesSearchFilter.value).
			WithTagNames(o.tags).
			WithExcludeTagNames(o.excludeTags)
		return runRequest(cmd, fmt.Sprintf("series search %q", args[0]), req)
	},
}

// ─── series release / categories / tags / vintagedates ───────────────────────

var seriesReleaseRT realtimeFlags

var seriesReleaseCmd = &cobra.Command{
	Use:   "release <SERIES_ID>",
	Short: "Show the release a series belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := normaliseIDs(args)[0]
		req := fred.SeriesRelease(id).
			WithRealtimeStart(seriesReleaseRT.start).
			WithRealtimeEnd(seriesReleaseRT.end)
		return runRequest(cmd, "series release "+id, req)
	},
}

var seriesCategoriesRT realtimeFlags

var seriesCategoriesCmd = &cobra.Command{
	Use:   "categories <SERIES_ID>",
	Short: "List the categories a series is filed under",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := normaliseIDs(args)[0]
		req := fred.SeriesCategories(id).
			WithRealtimeStart(seriesCategoriesRT.start).
			WithRealtimeEnd(seriesCategoriesRT.end)
		return runRequest(cmd, "series categories "+id, req)
	},
}

var (
	seriesTagsRT   realtimeFlags
	seriesTagsPage pageFlags
)

var seriesTagsCmd = &cobra.Command{
	Use:   "tags <SERIES_ID>",
	Short: "List the tags of a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := normaliseIDs(args)[0]
		req := fred.SeriesTags(id).
			WithRealtimeStart(seriesTagsRT.start).
			WithRealtimeEnd(seriesTagsRT.end).
			WithLimit(seriesTagsPage.limit).
			WithOffset(seriesTagsPage.offset).
			WithSort(seriesTagsPage.sort).
			WithOrderBy(seriesTagsPage.orderBy)
		return runRequest(cmd, "series tags "+id, req)
	},
}

var (
	seriesVintageRT   realtimeFlags
	seriesVintagePage pageFlags
)

var seriesVintageCmd = &cobra.Command{
	Use:     "vintagedates <SERIES_ID>",
	Aliases: []string{"vintages"},
	Short:   "List the dates a series was revised or released",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := normaliseIDs(args)[0]
		req := fred.SeriesVintageDates(id).
			WithRealtimeStart(seriesVintageRT.start).
			WithRealtimeEnd(seriesVintageRT.end).
			WithLimit(seriesVintagePage.limit).
			WithOffset(seriesVintagePage.offset).
			WithSort(seriesVintagePage.sort)
		return runRequest(cmd, "series vintagedates "+id, req)
	},
}

// ─── series updates ───────────────────────────────────────────────────────────

var (
	seriesUpdatesRT     realtimeFlags
	seriesUpdatesPage   pageFlags
	seriesUpdatesFilter string
)

var seriesUpdatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List recently updated series",
	Example: `  fredkit series updates --limit 20
  fredkit series updates --filter macro`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := fred.SeriesUpdates().
			WithRealtimeStart(seriesUpdatesRT.start).
			WithRealtimeEnd(seriesUpdatesRT.end).
			WithLimit(seriesUpdatesPage.limit).
			WithOffset(seriesUpdatesPage.offset).
			WithFilter(seriesUpdatesFilter)
		return runRequest(cmd, "series updates", req)
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.AddCommand(seriesGetCmd, seriesObsCmd, seriesSearchCmd, seriesReleaseCmd,
		seriesCategoriesCmd, seriesTagsCmd, seriesVintageCmd, seriesUpdatesCmd)

	seriesGetRT.register(seriesGetCmd)

	seriesObsRT.register(seriesObsCmd)
	seriesObsPage.register(seriesObsCmd, false)
	f := seriesObsCmd.Flags()
	f.StringVar(&seriesObsOpts.start, "start", "", "first observation date (YYYY-MM-DD)")
	f.StringVar(&seriesObsOpts.end, "end", "", "last observation date (YYYY-MM-DD)")
	f.StringVar(&seriesObsOpts.units, "units", "", "value transformation: lin|chg|ch1|pch|pc1|pca|cch|cca|log")
	f.StringVar(&seriesObsOpts.frequency, "frequency", "", "aggregate to a lower frequency: d|w|bw|m|q|sa|a|...")
	f.StringVar(&seriesObsOpts.aggregation, "aggregation", "", "aggregation method with --frequency: avg|sum|eop")
	f.StringVar(&seriesObsOpts.outputType, "output-type", "", "1 real-time period, 2 vintage all, 3 vintage new, 4 initial release")
	f.StringVar(&seriesObsOpts.vintageDates, "vintage-dates", "", "comma separated vintage dates (YYYY-MM-DD)")

	seriesSearchRT.register(seriesSearchCmd)
	seriesSearchPage.register(seriesSearchCmd, true)
	seriesSearchFilter.register(seriesSearchCmd)
	f = seriesSearchCmd.Flags()
	f.StringVar(&seriesSearchOpts.searchType, "search-type", "", "full_text (default) or series_id")
	f.StringVar(&seriesSearchOpts.tags, "tags", "", "semicolon separated tags every result must carry")
	f.StringVar(&seriesSearchOpts.excludeTags, "exclude-tags", "", "semicolon separated tags no result may carry")

	seriesReleaseRT.register(seriesReleaseCmd)
	seriesCategoriesRT.register(seriesCategoriesCmd)
	seriesTagsRT.register(seriesTagsCmd)
	seriesTagsPage.register(seriesTagsCmd, true)
	seriesVintageRT.register(seriesVintageCmd)
	seriesVintagePage.register(seriesVintageCmd, false)

	seriesUpdatesRT.register(seriesUpdatesCmd)
	seriesUpdatesPage.register(seriesUpdatesCmd, false)
	seriesUpdatesCmd.Flags().StringVar(&seriesUpdatesFilter, "filter", "", "macro|regional|all")
}
