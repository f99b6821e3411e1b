package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
)

// ─── get ──────────────────────────────────────────────────────────────────────

var getParams []string

var getCmd = &cobra.Command{
	Use:   "get <resource> [id]",
	Short: "Send a request to any FRED resource",
	Long: `Send a request to any FRED resource by path. The id, when given, is
stored under the resource's id parameter (series_id, release_id, ...).
Extra parameters are passed with --param key=value and are not checked
against the resource; FRED itself rejects unknown keys.

Run 'fredkit resources' for the list of paths.`,
	Example: `  fredkit get series GNPCA
  fredkit get series/observations GNPCA --param limit=5 --param sort_order=desc
  fredkit get releases/dates --param include_release_dates_with_no_data=true
  fredkit get tags --param tag_group_id=geo --format csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, ok := fred.LookupResource(args[0])
		if !ok {
			return fmt.Errorf("unknown resource %q (run 'fredkit resources')", args[0])
		}
		id := ""
		if len(args) == 2 {
			id = args[1]
		}
		if res.IDParam != "" && id == "" {
			return fmt.Errorf("resource %s needs an id (%s)", res.Path, res.IDParam)
		}
		if res.IDParam == "" && id != "" {
			return fmt.Errorf("resource %s takes no id", res.Path)
		}

		params, err := parseParams(getParams)
		if err != nil {
			return err
		}
		req := res.New(id)
		for _, kv := range params {
			req.With(kv[0], kv[1])
		}
		return runRequest(cmd, "get "+strings.Join(args, " "), req)
	},
}

// ─── resources ────────────────────────────────────────────────────────────────

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the FRED resources fredkit knows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSimpleTable(cmd.OutOrStdout(), []string{"PATH", "ID PARAMETER"}, func(add func(...string)) {
			for _, r := range fred.Resources() {
				idParam := r.IDParam
				if idParam == "" {
					idParam = "-"
				}
				add(r.Path, idParam)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(resourcesCmd)
	getCmd.Flags().StringArrayVarP(&getParams, "param", "p", nil, "extra request parameter as key=value (repeatable)")
}
