package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/analyze"
	"github.com/derickschaefer/fredkit/internal/model"
	"github.com/derickschaefer/fredkit/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize and fit trends to series observations",
	Long: `Analyze operators fetch the observations of one or more series and print
one row of statistics per series. Missing values are counted, not used.

Use --units to analyze a transformed series, for example pc1 for the
percent change from a year ago.

With "-" (or no argument and a pipe on stdin) the observations are read
as JSONL, the format 'series obs --format jsonl' writes.`,
}

// obsWindow selects the observations an analysis runs on.
type obsWindow struct {
	start, end, units, frequency string
}

func (w *obsWindow) register(c *cobra.Command) {
	c.Flags().StringVar(&w.start, "start", "", "first observation date (YYYY-MM-DD)")
	c.Flags().StringVar(&w.end, "end", "", "last observation date (YYYY-MM-DD)")
	c.Flags().StringVar(&w.units, "units", "", "value transformation applied by FRED: lin|chg|ch1|pch|pc1|pca|cch|cca|log")
	c.Flags().StringVar(&w.frequency, "frequency", "", "aggregate to a lower frequency first: m|q|sa|a|...")
}

func (w *obsWindow) request(id string) fred.APIRequest {
	return fred.SeriesObservations(id).
		WithStart(w.start).
		WithEnd(w.end).
		WithUnits(w.units).
		WithFrequency(w.frequency)
}

type analyzer func(id string, obs []model.Observation) (fred.Entity, error)

// fromStdin reports whether observations come from a pipe: the only
// argument is "-", or there are none and stdin is not a terminal.
func fromStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == "-" {
		return true
	}
	if len(args) > 0 {
		return false
	}
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && !pipeline.IsTerminal(f)
}

// runAnalysis analyzes piped observations or fetches the series named
// in args.
func runAnalysis(cmd *cobra.Command, verb, root string, args []string, win *obsWindow, fn analyzer) error {
	if fromStdin(cmd, args) {
		return analyzeStdin(cmd, "analyze "+verb+" -", root, fn)
	}
	if len(args) == 0 {
		return fmt.Errorf("give one or more series IDs, or pipe observations in (see 'fredkit analyze --help')")
	}
	ids := normaliseIDs(args)
	return analyzeEach(cmd, "analyze "+verb+" "+strings.Join(ids, " "), root, ids, win, fn)
}

// analyzeStdin reads one observation stream from stdin.
func analyzeStdin(cmd *cobra.Command, command, root string, fn analyzer) error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	id, obs, err := pipeline.ReadObservations(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading observations: %w", err)
	}
	if id == "" {
		id = "-"
	}
	e, err := fn(id, obs)
	if err != nil {
		return err
	}
	return emit(cmd, deps, derivedResult(command, "analyze/"+root, root, []fred.Entity{e}))
}

// analyzeEach fetches the observations of every id and turns each good
// answer into one entity with fn. Failed fetches and failed analyses
// become warnings.
func analyzeEach(cmd *cobra.Command, command, root string, ids []string, win *obsWindow, fn analyzer) error {
	deps, err := buildAPIDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	start := time.Now()
	reqs := make([]fred.APIRequest, len(ids))
	for i, id := range ids {
		reqs[i] = win.request(id)
	}

	var entities []fred.Entity
	var warnings []string
	for i, o := range deps.Crawler.FetchAll(cmd.Context(), reqs) {
		if !o.Good() {
			warnings = append(warnings, fmt.Sprintf("%s: %s", ids[i], o.Response.Error))
			continue
		}
		e, err := fn(ids[i], model.Observations(o.Response.Entities))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", ids[i], err))
			continue
		}
		entities = append(entities, e)
	}
	if len(entities) == 0 {
		return fmt.Errorf("nothing to analyze:\n  %s", strings.Join(warnings, "\n  "))
	}

	result := derivedResult(command, "analyze/"+root, root, entities)
	result.Warnings = warnings
	result.Stats.DurationMs = time.Since(start).Milliseconds()
	return emit(cmd, deps, result)
}

// ─── analyze summary ─────────────────────────────────────────────────────────

var analyzeSummaryWin obsWindow

var analyzeSummaryCmd = &cobra.Command{
	Use:   "summary [SERIES_ID...|-]",
	Short: "Descriptive statistics: count, mean, std, min, quartiles, max, change",
	Example: `  fredkit analyze summary GDP
  fredkit analyze summary UNRATE CPIAUCSL --start 2000-01-01 --format csv
  fredkit analyze summary CPIAUCSL --units pc1
  fredkit series obs GDP --format jsonl | fredkit analyze summary -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, "summary", "summaries", args, &analyzeSummaryWin,
			func(id string, obs []model.Observation) (fred.Entity, error) {
				return analyze.Summarize(id, obs).Entity(), nil
			})
	},
}

// ─── analyze trend ────────────────────────────────────────────────────────────

var (
	analyzeTrendWin    obsWindow
	analyzeTrendMethod string
)

var analyzeTrendCmd = &cobra.Command{
	Use:   "trend [SERIES_ID...|-]",
	Short: "Fit a trend: slope, intercept, R², direction",
	Long: `Fit a trend line to each series against time in days. The linear method
is ordinary least squares; theil-sen takes the median of pairwise slopes
and is robust to outliers. slope_per_year is the slope scaled to 365.25 days.`,
	Example: `  fredkit analyze trend UNRATE --start 2010-01-01
  fredkit analyze trend GDP --method theil-sen --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := analyze.ParseTrendMethod(analyzeTrendMethod)
		if err != nil {
			return err
		}
		return runAnalysis(cmd, "trend", "trends", args, &analyzeTrendWin,
			func(id string, obs []model.Observation) (fred.Entity, error) {
				tr, err := analyze.Trend(id, obs, method)
				if err != nil {
					return fred.Entity{}, err
				}
				return tr.Entity(), nil
			})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeSummaryCmd, analyzeTrendCmd)

	analyzeSummaryWin.register(analyzeSummaryCmd)
	analyzeTrendWin.register(analyzeTrendCmd)
	analyzeTrendCmd.Flags().StringVar(&analyzeTrendMethod, "method", "linear", "fit method: linear|theil-sen")
}
