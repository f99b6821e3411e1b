// Package render converts Result values into human-readable or machine-parseable
// output. Each format is a separate function; the top-level Render dispatcher
// selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/model"
	"github.com/derickschaefer/fredkit/internal/pipeline"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatMD    = "md"
	FormatText  = "text"
)

// Formats lists every supported format.
var Formats = []string{FormatTable, FormatJSON, FormatJSONL, FormatCSV, FormatTSV, FormatMD, FormatText}

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatJSONL:
		return renderJSONL(w, result)
	case FormatCSV:
		return renderDelimited(w, result, ',')
	case FormatTSV:
		return renderDelimited(w, result, '\t')
	case FormatMD:
		return renderMarkdown(w, result)
	case FormatText:
		return renderText(w, result)
	case FormatTable, "":
		return renderTable(w, result)
	default:
		return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}

// RenderTo writes to stdout by default; if path is non-empty, writes to file.
func RenderTo(path string, result *model.Result, format string) error {
	if path == "" {
		return Render(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Render(f, result, format)
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── JSONL ────────────────────────────────────────────────────────────────────

// renderJSONL writes one entity per line. Observations use the pipe
// format of package pipeline, so the output feeds 'analyze ... -';
// other entities are flattened to their attributes plus name and text.
func renderJSONL(w io.Writer, result *model.Result) error {
	if result.Kind == fred.PathSeriesObservations {
		return pipeline.WriteObservations(w, "", model.Observations(result.Entities()))
	}
	enc := json.NewEncoder(w)
	for _, e := range result.Entities() {
		rec := make(map[string]string, len(e.Attributes)+2)
		for k, v := range e.Attributes {
			rec[k] = v
		}
		rec["_name"] = e.Name
		if e.Value != "" {
			rec[model.TextColumn] = e.Value
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// ─── Table ────────────────────────────────────────────────────────────────────

func renderTable(w io.Writer, result *model.Result) error {
	entities := result.Entities()
	if len(entities) == 0 {
		fmt.Fprintln(w, "(no results)")
		return nil
	}
	cols := model.Columns(entities)
	rows := model.Rows(entities, cols)

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(cols)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.SetColWidth(60)

	for _, row := range rows {
		for i, cell := range row {
			row[i] = truncate(cell, 60)
		}
		tw.Append(row)
	}
	tw.Render()
	return nil
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

func renderDelimited(w io.Writer, result *model.Result, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	entities := result.Entities()
	cols := model.Columns(entities)
	if len(cols) > 0 {
		_ = cw.Write(cols)
	}
	for _, row := range model.Rows(entities, cols) {
		if sep == '\t' {
			for i, cell := range row {
				row[i] = oneLine(cell)
			}
		}
		_ = cw.Write(row)
	}

	cw.Flush()
	return cw.Error()
}

// ─── Markdown ─────────────────────────────────────────────────────────────────

func renderMarkdown(w io.Writer, result *model.Result) error {
	entities := result.Entities()
	cols := model.Columns(entities)
	if len(cols) == 0 {
		fmt.Fprintln(w, "_no results_")
		return nil
	}

	fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("----|", len(cols)))
	for _, row := range model.Rows(entities, cols) {
		for i, cell := range row {
			row[i] = mdEscape(truncate(cell, 80))
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	return nil
}

// ─── Text ─────────────────────────────────────────────────────────────────────

// renderText writes the response in the library's own print format.
func renderText(w io.Writer, result *model.Result) error {
	if result.Response == nil {
		return nil
	}
	_, err := fmt.Fprintln(w, result.Response.String())
	return err
}

// ─── Data file ────────────────────────────────────────────────────────────────

// RenderDataFile writes df in the layout of the FRED series text files:
// a header block followed by DATE/VALUE rows. Missing values are skipped.
func RenderDataFile(w io.Writer, df *model.DataFile) error {
	s := df.Series
	header := [][2]string{
		{"Title", s.Attribute("title")},
		{"Series ID", s.Attribute("id")},
		{"Source", df.Source.Attribute("name")},
		{"Release", df.Release.Attribute("name")},
		{"Seasonal Adjustment", s.Attribute("seasonal_adjustment")},
		{"Frequency", s.Attribute("frequency")},
		{"Units", s.Attribute("units")},
		{"Date Range", s.Attribute("observation_start") + " to " + s.Attribute("observation_end")},
		{"Last Updated", s.Attribute("last_updated")},
		{"Notes", s.Attribute("notes")},
	}
	for _, h := range header {
		if _, err := fmt.Fprintf(w, "%-21s%s\n", h[0]+":", h[1]); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nDATE         VALUE\n")
	for _, obs := range df.Observations {
		if obs.IsMissing() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", obs.Date.Format("2006-01-02"), obs.ValueRaw); err != nil {
			return err
		}
	}
	return nil
}

// ─── Warnings / Stats Footer ─────────────────────────────────────────────────

// PrintFooter writes warnings and stats to w when verbose mode is on.
func PrintFooter(w io.Writer, result *model.Result, verbose bool) {
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "⚠  %s\n", warn)
	}
	if verbose {
		src := "live"
		if result.Stats.FromStore {
			src = "store"
		}
		root := ""
		if result.Response != nil {
			root = " • " + result.Response.Result.String()
		}
		fmt.Fprintf(w, "\n[%s • %d items • %dms • %s%s]\n",
			result.GeneratedAt.Format(time.RFC3339),
			result.Stats.Items,
			result.Stats.DurationMs,
			src,
			root,
		)
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func truncate(s string, n int) string {
	s = oneLine(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
