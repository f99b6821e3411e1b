package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/app"
	"github.com/derickschaefer/fredkit/internal/crawl"
	"github.com/derickschaefer/fredkit/internal/model"
	"github.com/derickschaefer/fredkit/internal/render"
)

// ─── Output ───────────────────────────────────────────────────────────────────

// outputWriter returns the --out file when set, otherwise def. The returned
// close function is always safe to call.
func outputWriter(def io.Writer) (io.Writer, func() error, error) {
	if globalFlags.Out == "" {
		return def, func() error { return nil }, nil
	}
	f, err := os.Create(globalFlags.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// closeOutput calls closeFn and reports its error through errp unless an
// earlier error is already there.
func closeOutput(closeFn func() error, errp *error) {
	if err := closeFn(); err != nil && *errp == nil {
		*errp = fmt.Errorf("closing output: %w", err)
	}
}

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// emit renders result to the output writer and the footer to stderr.
func emit(cmd *cobra.Command, deps *app.Deps, result *model.Result) (err error) {
	w, closeFn, err := outputWriter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOutput(closeFn, &err)

	if err := render.Render(w, result, resolveFormat(deps.Config.Format)); err != nil {
		return err
	}
	if !deps.Config.Quiet {
		render.PrintFooter(cmd.ErrOrStderr(), result, deps.Config.Verbose)
	}
	return nil
}

// ─── Fetching ─────────────────────────────────────────────────────────────────

// runRequest sends a single request and prints the answer. With --store
// the result is also saved to the local database.
func runRequest(cmd *cobra.Command, command string, req fred.APIRequest) error {
	deps, err := buildAPIDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	start := time.Now()
	resp, err := deps.API.Fetch(cmd.Context(), req)
	if err != nil {
		return err
	}
	result := model.NewResult(command, req, resp)
	result.Stats.DurationMs = time.Since(start).Milliseconds()

	if err := storeResults(deps, result); err != nil {
		return err
	}
	return emit(cmd, deps, result)
}

// runBatch sends reqs concurrently and prints the entities of every good
// answer as one result, in request order. Failed requests become warnings;
// the command fails only when every request failed.
func runBatch(cmd *cobra.Command, command string, reqs []fred.APIRequest) error {
	if len(reqs) == 1 {
		return runRequest(cmd, command, reqs[0])
	}

	deps, err := buildAPIDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	start := time.Now()
	outcomes := deps.Crawler.FetchAll(cmd.Context(), reqs)
	merged, good, warnings := mergeOutcomes(command, outcomes)
	if len(good) == 0 {
		return fmt.Errorf("all %d requests failed:\n  %s", len(reqs), strings.Join(warnings, "\n  "))
	}
	merged.Warnings = warnings
	merged.Stats.DurationMs = time.Since(start).Milliseconds()

	if err := storeResults(deps, good...); err != nil {
		return err
	}
	merged.Stats.Stored = globalFlags.Store
	return emit(cmd, deps, merged)
}

// mergeOutcomes folds the good outcomes into one result keyed by the
// first good request. Each good outcome is also returned as its own
// result for storage.
func mergeOutcomes(command string, outcomes []crawl.Outcome) (*model.Result, []*model.Result, []string) {
	var merged *model.Result
	var good []*model.Result
	var warnings []string
	for _, o := range outcomes {
		if !o.Good() {
			warnings = append(warnings, o.Warning())
			continue
		}
		good = append(good, model.NewResult(command, o.Request, o.Response))
		if merged == nil {
			resp := &fred.Response{Result: o.Response.Result, Error: o.Response.Error}
			merged = model.NewResult(command, o.Request, resp)
		}
		merged.Response.Entities = append(merged.Response.Entities, o.Response.Entities...)
	}
	if merged != nil {
		merged.Stats.Items = len(merged.Response.Entities)
	}
	return merged, good, warnings
}

// storeResults saves results when --store is set.
func storeResults(deps *app.Deps, results ...*model.Result) error {
	if !globalFlags.Store || len(results) == 0 {
		return nil
	}
	s, err := deps.RequireStore()
	if err != nil {
		return err
	}
	if err := s.PutBatch(results); err != nil {
		return fmt.Errorf("storing results: %w", err)
	}
	for _, r := range results {
		r.Stats.Stored = true
	}
	return nil
}

// ─── Argument parsing ─────────────────────────────────────────────────────────

// normaliseIDs upper-cases all series IDs and removes duplicates while
// preserving order.
func normaliseIDs(ids []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// parseIntID checks that s is a non-negative integer and returns it in
// canonical form, with a descriptive label for errors.
func parseIntID(s, label string) (string, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return "", fmt.Errorf("invalid %s %q: expected a non-negative integer", label, s)
	}
	return strconv.Itoa(id), nil
}

// parseCategoryID is parseIntID for categories; "root" means 0.
func parseCategoryID(s string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(s), "root") {
		return "0", nil
	}
	return parseIntID(s, "category ID")
}

// parseParams splits key=value pairs from --param flags.
func parseParams(pairs []string) ([][2]string, error) {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", p)
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}

// ─── Shared flag sets ─────────────────────────────────────────────────────────

// realtimeFlags are accepted by every resource.
type realtimeFlags struct {
	start, end string
}

func (f *realtimeFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.start, "realtime-start", "", "start of the real-time period (YYYY-MM-DD)")
	c.Flags().StringVar(&f.end, "realtime-end", "", "end of the real-time period (YYYY-MM-DD)")
}

// pageFlags cover the paging and ordering parameters of list resources.
type pageFlags struct {
	limit, offset, sort, orderBy string
}

func (f *pageFlags) register(c *cobra.Command, orderBy bool) {
	c.Flags().StringVar(&f.limit, "limit", "", "maximum number of results")
	c.Flags().StringVar(&f.offset, "offset", "", "number of results to skip")
	c.Flags().StringVar(&f.sort, "sort", "", "sort order: asc|desc")
	if orderBy {
		c.Flags().StringVar(&f.orderBy, "order-by", "", "field to order results by")
	}
}

// filterFlags select series by one attribute.
type filterFlags struct {
	variable, value string
}

func (f *filterFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.variable, "filter-variable", "", "attribute to filter on: frequency|units|seasonal_adjustment")
	c.Flags().StringVar(&f.value, "filter-value", "", "value the filter attribute must have")
}

// ─── Tables ───────────────────────────────────────────────────────────────────

// printSimpleTable renders a simple table with headers using tablewriter.
// The add callback is called with row values as variadic strings.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}

// printKVTable renders a two-column key/value listing using aligned columns.
func printKVTable(w io.Writer, rows [][2]string) {
	maxKey := 0
	for _, r := range rows {
		maxKey = max(maxKey, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %s\n", maxKey, r[0], r[1])
	}
}

// derivedResult wraps entities that were assembled locally (a walked tree,
// a merged listing, an analysis) in a result rendered like any response.
func derivedResult(command, kind, root string, entities []fred.Entity) *model.Result {
	resp := &fred.Response{Result: fred.Entity{Name: root}, Entities: entities}
	resp.SetErrorFromResult()
	return &model.Result{
		Kind:        kind,
		Command:     command,
		Request:     command,
		GeneratedAt: time.Now().UTC(),
		Response:    resp,
		Stats:       model.ResultStats{Items: len(entities)},
	}
}
