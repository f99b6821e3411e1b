package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/internal/model"
	"github.com/derickschaefer/fredkit/internal/render"
	"github.com/derickschaefer/fredkit/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect locally accumulated data",
	Long: `Commands for inspecting the responses accumulated in the local database.

Responses are stored with --store on any fetching command, keyed by the
request: its path, "?", then its sorted parameters as key=value| pairs,
without the API key.`,
}

// ─── store list ───────────────────────────────────────────────────────────────

var storeListCmd = &cobra.Command{
	Use:   "list [PREFIX]",
	Short: "List stored responses",
	Example: `  fredkit store list
  fredkit store list series/observations
  fredkit store list --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		s, err := deps.RequireStore()
		if err != nil {
			return err
		}

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		summaries, err := s.List(prefix)
		if err != nil {
			return fmt.Errorf("reading store: %w", err)
		}

		w, closeFn, err := outputWriter(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeOutput(closeFn, &err)

		if resolveFormat(deps.Config.Format) != render.FormatTable {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(summaries)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(w, "No stored responses.")
			fmt.Fprintln(w, "  Use: fredkit series obs <ID...> --store")
			return nil
		}
		printSimpleTable(w, []string{"KEY", "KIND", "ROOT", "ITEMS", "FETCHED AT"}, func(add func(...string)) {
			for _, m := range summaries {
				add(m.Key, m.Kind, m.Root, strconv.Itoa(m.Items), m.FetchedAt.Format("2006-01-02 15:04"))
			}
		})
		fmt.Fprintf(w, "\n%d responses  •  %s\n", len(summaries), s.Path())
		return nil
	},
}

// ─── store show ───────────────────────────────────────────────────────────────

var storeShowCmd = &cobra.Command{
	Use:     "show <KEY>",
	Aliases: []string{"get"},
	Short:   "Print a stored response",
	Example: `  fredkit store show 'series/observations?series_id=GNPCA|'
  fredkit store show 'series?series_id=GDP|' --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		s, err := deps.RequireStore()
		if err != nil {
			return err
		}

		rec, ok, err := s.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no stored response under %q (see 'fredkit store list')", args[0])
		}
		resp := rec.Response
		result := &model.Result{
			Kind:        rec.Kind,
			Command:     rec.Command,
			Request:     rec.Key,
			GeneratedAt: rec.FetchedAt,
			Response:    &resp,
			Stats:       model.ResultStats{FromStore: true, Items: len(resp.Entities)},
		}
		return emit(cmd, deps, result)
	},
}

// ─── store delete ─────────────────────────────────────────────────────────────

var storeDeleteCmd = &cobra.Command{
	Use:     "delete <KEY...>",
	Aliases: []string{"rm"},
	Short:   "Delete stored responses",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		s, err := deps.RequireStore()
		if err != nil {
			return err
		}

		for _, key := range args {
			existed, err := s.Delete(key)
			if err != nil {
				return fmt.Errorf("deleting %q: %w", key, err)
			}
			if !existed {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠  %q was not stored\n", key)
				continue
			}
			if !deps.Config.Quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", key)
			}
		}
		return nil
	},
}

// ─── store stats ──────────────────────────────────────────────────────────────

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts and sizes of the local database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		s, err := deps.RequireStore()
		if err != nil {
			return err
		}

		stats, err := s.Stats()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		printSimpleTable(w, []string{"BUCKET", "RECORDS", "SIZE"}, func(add func(...string)) {
			for _, b := range stats {
				add(b.Name, strconv.Itoa(b.Count), formatBytes(b.Bytes))
			}
		})
		fmt.Fprintf(w, "\n%s\n", s.Path())
		return nil
	},
}

// ─── store clear ──────────────────────────────────────────────────────────────

var (
	storeClearBucket string
	storeClearYes    bool
)

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored response",
	Example: `  fredkit store clear --yes
  fredkit store clear --bucket results --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !storeClearYes {
			return fmt.Errorf("refusing to clear the store without --yes")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		s, err := deps.RequireStore()
		if err != nil {
			return err
		}

		if storeClearBucket == "" {
			err = s.ClearAll()
		} else {
			err = clearBucket(s, storeClearBucket)
		}
		if err != nil {
			return err
		}
		if !deps.Config.Quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Store cleared.")
		}
		return nil
	},
}

func clearBucket(s *store.Store, name string) error {
	for _, b := range store.AllBuckets {
		if b == name {
			return s.ClearBucket(name)
		}
	}
	return fmt.Errorf("unknown bucket %q (valid: %v)", name, store.AllBuckets)
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeShowCmd, storeDeleteCmd, storeStatsCmd, storeClearCmd)

	storeClearCmd.Flags().StringVar(&storeClearBucket, "bucket", "", "clear only this bucket")
	storeClearCmd.Flags().BoolVar(&storeClearYes, "yes", false, "confirm deletion")
}
