package cmd

import (
	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Explore FRED data releases",
	Long:  `Commands for browsing FRED data releases and their publication schedules.`,
}

// ─── release list ─────────────────────────────────────────────────────────────

var (
	releaseListRT   realtimeFlags
	releaseListPage pageFlags
)

var releaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all FRED releases",
	Example: `  fredkit release list
  fredkit release list --limit 20 --format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := fred.Releases().
			WithRealtimeStart(releaseListRT.start).
			WithRealtimeEnd(releaseListRT.end).
			WithLimit(releaseListPage.limit).
			WithOffset(releaseListPage.offset).
			WithSort(releaseListPage.sort).
			WithOrderBy(releaseListPage.orderBy)
		return runRequest(cmd, "release list", req)
	},
}

// ─── release calendar ─────────────────────────────────────────────────────────

var (
	releaseCalRT     realtimeFlags
	releaseCalPage   pageFlags
	releaseCalNoData string
)

var releaseCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "List release dates across all releases",
	Example: `  fredkit release calendar --realtime-start 2024-01-01 --limit 50
  fredkit release calendar --include-no-data true`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := fred.ReleasesDates().
			WithRealtimeStart(releaseCalRT.start).
			WithRealtimeEnd(releaseCalRT.end).
			WithLimit(releaseCalPage.limit).
			WithOffset(releaseCalPage.offset).
			WithSort(releaseCalPage.sort).
			WithOrderBy(releaseCalPage.orderBy).
			WithIncludeNoData(releaseCalNoData)
		return runRequest(cmd, "release calendar", req)
	},
}

// ─── release get ──────────────────────────────────────────────────────────────

var releaseGetRT realtimeFlags

var releaseGetCmd = &cobra.Command{
	Use:   "get <RELEASE_ID>",
	Short: "Fetch metadata for a release",
	Example: `  fredkit release get 53
  fredkit release get 53 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "release ID")
		if err != nil {
			return err
		}
		req := fred.Release(id).
			WithRealtimeStart(releaseGetRT.start).
			WithRealtimeEnd(releaseGetRT.end)
		return runRequest(cmd, "release get "+id, req)
	},
}

// ─── release series ───────────────────────────────────────────────────────────

var (
	releaseSeriesRT     realtimeFlags
	releaseSeriesPage   pageFlags
	releaseSeriesFilter filterFlags
)

var releaseSeriesCmd = &cobra.Command{
	Use:   "series <RELEASE_ID>",
	Short: "List the series in a release",
	Example: `  fredkit release series 53 --limit 25
  fredkit release series 53 --filter-variable frequency --filter-value Quarterly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "release ID")
		if err != nil {
			return err
		}
		req := fred.ReleaseSeries(id).
			WithRealtimeStart(releaseSeriesRT.start).
			WithRealtimeEnd(releaseSeriesRT.end).
			WithLimit(releaseSeriesPage.limit).
			WithOffset(releaseSeriesPage.offset).
			WithSort(releaseSeriesPage.sort).
			WithOrderBy(releaseSeriesPage.orderBy).
			WithFilterOn(releaseSeriesFilter.variable).
			WithFilter(releaseSeriesFilter.value)
		return runRequest(cmd, "release series "+id, req)
	},
}

// ─── release sources ──────────────────────────────────────────────────────────

var releaseSourcesRT realtimeFlags

var releaseSourcesCmd = &cobra.Command{
	Use:   "sources <RELEASE_ID>",
	Short: "List the sources of a release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "release ID")
		if err != nil {
			return err
		}
		req := fred.ReleaseSources(id).
			WithRealtimeStart(releaseSourcesRT.start).
			WithRealtimeEnd(releaseSourcesRT.end)
		return runRequest(cmd, "release sources "+id, req)
	},
}

// ─── release dates ────────────────────────────────────────────────────────────

var (
	releaseDatesRT     realtimeFlags
	releaseDatesPage   pageFlags
	releaseDatesNoData string
)

var releaseDatesCmd = &cobra.Command{
	Use:   "dates <RELEASE_ID>",
	Short: "List the publication dates of a release",
	Example: `  fredkit release dates 53 --sort desc --limit 10`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "release ID")
		if err != nil {
			return err
		}
		req := fred.ReleaseDates(id).
			WithRealtimeStart(releaseDatesRT.start).
			WithRealtimeEnd(releaseDatesRT.end).
			WithLimit(releaseDatesPage.limit).
			WithOffset(releaseDatesPage.offset).
			WithSort(releaseDatesPage.sort).
			WithIncludeNoData(releaseDatesNoData)
		return runRequest(cmd, "release dates "+id, req)
	},
}

// ─── Registration ─────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(releaseCmd)
	releaseCmd.AddCommand(releaseListCmd, releaseCalendarCmd, releaseGetCmd,
		releaseSeriesCmd, releaseSourcesCmd, releaseDatesCmd)

	releaseListRT.register(releaseListCmd)
	releaseListPage.register(releaseListCmd, true)

	releaseCalRT.register(releaseCalendarCmd)
	releaseCalPage.register(releaseCalendarCmd, true)
	releaseCalendarCmd.Flags().StringVar(&releaseCalNoData, "include-no-data", "", "include dates without data: true|false")

	releaseGetRT.register(releaseGetCmd)

	releaseSeriesRT.register(releaseSeriesCmd)
	releaseSeriesPage.register(releaseSeriesCmd, true)
	releaseSeriesFilter.register(releaseSeriesCmd)

	releaseSourcesRT.register(releaseSourcesCmd)

	releaseDatesRT.register(releaseDatesCmd)
	releaseDatesPage.register(releaseDatesCmd, false)
	releaseDatesCmd.Flags().StringVar(&releaseDatesNoData, "include-no-data", "", "include dates without data: true|false")
}
