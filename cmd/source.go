package cmd

import (
	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Explore FRED data sources",
	Long:  `Commands for browsing the agencies and institutions that publish FRED data.`,
}

var (
	sourceListRT   realtimeFlags
	sourceListPage pageFlags
)

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all FRED data sources",
	Example: `  fredkit source list
  fredkit source list --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := fred.Sources().
			WithRealtimeStart(sourceListRT.start).
			WithRealtimeEnd(sourceListRT.end).
			WithLimit(sourceListPage.limit).
			WithOffset(sourceListPage.offset).
			WithSort(sourceListPage.sort).
			WithOrderBy(sourceListPage.orderBy)
		return runRequest(cmd, "source list", req)
	},
}

var sourceGetRT realtimeFlags

var sourceGetCmd = &cobra.Command{
	Use:   "get <SOURCE_ID>",
	Short: "Fetch metadata for a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "source ID")
		if err != nil {
			return err
		}
		req := fred.Source(id).
			WithRealtimeStart(sourceGetRT.start).
			WithRealtimeEnd(sourceGetRT.end)
		return runRequest(cmd, "source get "+id, req)
	},
}

var (
	sourceReleasesRT   realtimeFlags
	sourceReleasesPage pageFlags
)

var sourceReleasesCmd = &cobra.Command{
	Use:     "releases <SOURCE_ID>",
	Short:   "List the releases published by a source",
	Example: `  fredkit source releases 1 --order-by name`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIntID(args[0], "source ID")
		if err != nil {
			return err
		}
		req := fred.SourceReleases(id).
			WithRealtimeStart(sourceReleasesRT.start).
			WithRealtimeEnd(sourceReleasesRT.end).
			WithLimit(sourceReleasesPage.limit).
			WithOffset(sourceReleasesPage.offset).
			WithSort(sourceReleasesPage.sort).
			WithOrderBy(sourceReleasesPage.orderBy)
		return runRequest(cmd, "source releases "+id, req)
	},
}

func init() {
	rootCmd.AddCommand(sourceCmd)
	sourceCmd.AddCommand(sourceListCmd, sourceGetCmd, sourceReleasesCmd)

	sourceListRT.register(sourceListCmd)
	sourceListPage.register(sourceListCmd, true)
	sourceGetRT.register(sourceGetCmd)
	sourceReleasesRT.register(sourceReleasesCmd)
	sourceReleasesPage.register(sourceReleasesCmd, true)
}
