// Package model defines the result envelope every fredkit command returns,
// plus a few typed views over the generic fred entities.
package model

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/derickschaefer/fredkit/fred"
)

// ─── Result Envelope ─────────────────────────────────────────────────────────

// ResultStats carries timing and storage metadata for a command result.
type ResultStats struct {
	Stored     bool  `json:"stored"`
	FromStore  bool  `json:"from_store"`
	DurationMs int64 `json:"duration_ms"`
	Items      int   `json:"items"`
}

// Result is the uniform envelope returned by every command.
// Kind is the resource path of the request that produced Response.
// Renderers work on the entities, so any resource renders the same way.
type Result struct {
	Kind        string         `json:"kind"`
	Command     string         `json:"command"`
	Request     string         `json:"request"`
	GeneratedAt time.Time      `json:"generated_at"`
	Response    *fred.Response `json:"response"`
	Warnings    []string       `json:"warnings,omitempty"`
	Stats       ResultStats    `json:"stats"`
}

// NewResult wraps resp, fetched for req, in a Result envelope.
func NewResult(command string, req fred.APIRequest, resp *fred.Response) *Result {
	return &Result{
		Kind:        req.Path(),
		Command:     command,
		Request:     RequestKey(req),
		GeneratedAt: time.Now().UTC(),
		Response:    resp,
		Stats:       ResultStats{Items: len(resp.Entities)},
	}
}

// Entities returns the response entities, or nil for an empty result.
func (r *Result) Entities() []fred.Entity {
	if r == nil || r.Response == nil {
		return nil
	}
	return r.Response.Entities
}

// RequestKey is the canonical identity of a request: its path and its
// parameters in key order, without the API key.
// Format: <path>?<key>=<value>|<key>=<value>|
func RequestKey(req fred.APIRequest) string {
	p := req.Params()
	p.Erase(fred.ParamAPIKey)
	return req.Path() + "?" + p.String()
}

// ─── Tabular view ─────────────────────────────────────────────────────────────

// TextColumn is the column holding an entity's element text, for
// resources such as series/vintagedates that carry data as text.
const TextColumn = "text"

// leading attributes are placed first, in this order, when present.
var leading = []string{"id", "date", "value", "name", "title"}

// Columns returns the attribute names found across entities: identifying
// attributes first, the rest sorted, then TextColumn if any entity has text.
func Columns(entities []fred.Entity) []string {
	seen := make(map[string]bool)
	hasText := false
	for _, e := range entities {
		for k := range e.Attributes {
			seen[k] = true
		}
		if e.Value != "" {
			hasText = true
		}
	}

	cols := make([]string, 0, len(seen)+1)
	for _, k := range leading {
		if seen[k] {
			cols = append(cols, k)
			delete(seen, k)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	cols = append(cols, rest...)
	if hasText {
		cols = append(cols, TextColumn)
	}
	return cols
}

// Rows lays entities out under columns. Missing attributes are "".
func Rows(entities []fred.Entity, columns []string) [][]string {
	rows := make([][]string, len(entities))
	for i, e := range entities {
		row := make([]string, len(columns))
		for j, c := range columns {
			if c == TextColumn {
				row[j] = e.Value
				continue
			}
			row[j] = e.Attribute(c)
		}
		rows[i] = row
	}
	return rows
}

// ─── Time Series Types ────────────────────────────────────────────────────────

// Observation is a single data point in a time series.
// Value is NaN when the raw value is "." or empty (missing data).
// ValueRaw preserves the original string from the API response.
type Observation struct {
	Date          time.Time `json:"date"`
	Value         float64   `json:"value"`
	ValueRaw      string    `json:"value_raw"`
	RealtimeStart string    `json:"realtime_start,omitempty"`
	RealtimeEnd   string    `json:"realtime_end,omitempty"`
}

// IsMissing returns true if the observation value is NaN (missing data).
func (o Observation) IsMissing() bool {
	return math.IsNaN(o.Value)
}

// Observations converts observation entities into typed observations.
// Entities without a parsable date are skipped.
func Observations(entities []fred.Entity) []Observation {
	obs := make([]Observation, 0, len(entities))
	for _, e := range entities {
		d, err := time.Parse("2006-01-02", e.Attribute("date"))
		if err != nil {
			continue
		}
		raw := e.Attribute("value")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v = math.NaN()
		}
		obs = append(obs, Observation{
			Date:          d,
			Value:         v,
			ValueRaw:      raw,
			RealtimeStart: e.Attribute("realtime_start"),
			RealtimeEnd:   e.Attribute("realtime_end"),
		})
	}
	return obs
}

// ─── Data file ────────────────────────────────────────────────────────────────

// DataFile bundles what is needed to write a FRED-style series text file:
// the series, its release and the release's first source, plus the
// observations.
type DataFile struct {
	Series       fred.Entity   `json:"series"`
	Release      fred.Entity   `json:"release"`
	Source       fred.Entity   `json:"source"`
	Observations []Observation `json:"observations"`
}
