// Package pipeline reads and writes observation streams in JSONL, the
// format fredkit commands use to pass series data through a shell pipe:
//
//	fredkit series obs UNRATE --format jsonl | fredkit analyze trend -
package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/derickschaefer/fredkit/internal/model"
)

// maxLine bounds a single JSONL record.
const maxLine = 1 << 20

// ErrNoInput is returned when a stream holds no observations.
var ErrNoInput = errors.New("no observations in input")

// Row is one line of the stream. Value is null for a missing observation;
// ValueRaw keeps FRED's text, "." when missing.
type Row struct {
	SeriesID string   `json:"series_id,omitempty"`
	Date     string   `json:"date"`
	Value    *float64 `json:"value"`
	ValueRaw string   `json:"value_raw,omitempty"`
}

// NewRow converts an observation to its stream form.
func NewRow(seriesID string, o model.Observation) Row {
	r := Row{SeriesID: seriesID, Date: o.Date.Format("2006-01-02"), ValueRaw: o.ValueRaw}
	if !o.IsMissing() {
		v := o.Value
		r.Value = &v
	}
	return r
}

// WriteObservations writes obs to w, one Row per line.
func WriteObservations(w io.Writer, seriesID string, obs []model.Observation) error {
	enc := json.NewEncoder(w)
	for _, o := range obs {
		if err := enc.Encode(NewRow(seriesID, o)); err != nil {
			return err
		}
	}
	return nil
}

// ReadObservations reads a stream written by WriteObservations. Blank
// lines and lines starting with "//" are skipped. The series id is taken
// from the first row that carries one.
func ReadObservations(r io.Reader) (string, []model.Observation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		seriesID string
		obs      []model.Observation
	)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		var row Row
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return "", nil, fmt.Errorf("line %d: %w", n, err)
		}
		o, err := row.observation()
		if err != nil {
			return "", nil, fmt.Errorf("line %d: %w", n, err)
		}
		if seriesID == "" {
			seriesID = row.SeriesID
		}
		obs = append(obs, o)
	}
	if err := sc.Err(); err != nil {
		return "", nil, fmt.Errorf("reading input: %w", err)
	}
	if len(obs) == 0 {
		return "", nil, ErrNoInput
	}
	return seriesID, obs, nil
}

func (r Row) observation() (model.Observation, error) {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return model.Observation{}, fmt.Errorf("invalid date %q", r.Date)
	}
	o := model.Observation{Date: d, ValueRaw: r.ValueRaw}
	switch {
	case r.Value != nil:
		o.Value = *r.Value
		if o.ValueRaw == "" {
			o.ValueRaw = strconv.FormatFloat(o.Value, 'f', -1, 64)
		}
	case r.ValueRaw != "" && r.ValueRaw != ".":
		// Streams cut by hand may carry only the raw text.
		v, err := strconv.ParseFloat(r.ValueRaw, 64)
		if err != nil {
			return model.Observation{}, fmt.Errorf("invalid value %q", r.ValueRaw)
		}
		o.Value = v
	default:
		o.Value = math.NaN()
		o.ValueRaw = "."
	}
	return o, nil
}

// IsTerminal reports whether f is attached to a terminal rather than a
// pipe or a file.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
