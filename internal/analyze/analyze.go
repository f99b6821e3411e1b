// Package analyze computes summaries and trends over series observations.
// All functions are pure; no I/O.
package analyze

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/model"
)

// ─── Summary ──────────────────────────────────────────────────────────────────

// Summary holds descriptive statistics for a series.
type Summary struct {
	SeriesID   string  `json:"series_id"`
	Count      int     `json:"count"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missing_pct"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	P25        float64 `json:"p25"`
	Median     float64 `json:"median"`
	P75        float64 `json:"p75"`
	Max        float64 `json:"max"`
	First      float64 `json:"first"` // first non-missing value
	Last       float64 `json:"last"`
	Change     float64 `json:"change"`
	ChangePct  float64 `json:"change_pct"`
}

// Summarize computes descriptive statistics over obs. Missing values are
// counted but excluded from every numeric field.
func Summarize(seriesID string, obs []model.Observation) Summary {
	s := Summary{SeriesID: seriesID, Count: len(obs)}

	var vals []float64
	for _, o := range obs {
		if o.IsMissing() {
			s.Missing++
			continue
		}
		vals = append(vals, o.Value)
	}
	if s.Count > 0 {
		s.MissingPct = float64(s.Missing) / float64(s.Count) * 100
	}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Max = nan, nan, nan, nan
		s.P25, s.Median, s.P75 = nan, nan, nan
		s.First, s.Last, s.Change, s.ChangePct = nan, nan, nan, nan
		return s
	}

	s.First = vals[0]
	s.Last = vals[len(vals)-1]

	s.Mean, s.Std = stat.MeanStdDev(vals, nil)
	if len(vals) < 2 {
		s.Std = 0
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)

	s.Change = s.Last - s.First
	if s.First != 0 {
		s.ChangePct = s.Change / math.Abs(s.First) * 100
	} else {
		s.ChangePct = math.NaN()
	}
	return s
}

// Entity renders s as a "summary" entity so the generic renderers can
// print it. Floats use the shortest representation; NaN prints as ".",
// FRED's own marker for a missing value.
func (s Summary) Entity() fred.Entity {
	e := fred.Entity{Name: "summary"}
	e.SetAttribute("series_id", s.SeriesID)
	e.SetAttribute("count", strconv.Itoa(s.Count))
	e.SetAttribute("missing", strconv.Itoa(s.Missing))
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"missing_pct", s.MissingPct},
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"p25", s.P25},
		{"median", s.Median},
		{"p75", s.P75},
		{"max", s.Max},
		{"first", s.First},
		{"last", s.Last},
		{"change", s.Change},
		{"change_pct", s.ChangePct},
	} {
		e.SetAttribute(f.key, formatFloat(f.v))
	}
	return e
}

// ─── Trend ────────────────────────────────────────────────────────────────────

// TrendMethod selects the regression algorithm.
type TrendMethod string

const (
	TrendLinear   TrendMethod = "linear"
	TrendTheilSen TrendMethod = "theil-sen"
)

// ParseTrendMethod accepts "linear" (or "") and "theil-sen".
func ParseTrendMethod(s string) (TrendMethod, error) {
	switch TrendMethod(s) {
	case "", TrendLinear:
		return TrendLinear, nil
	case TrendTheilSen:
		return TrendTheilSen, nil
	}
	return "", fmt.Errorf("unknown trend method %q (want linear or theil-sen)", s)
}

// TrendResult holds the output of a trend analysis.
type TrendResult struct {
	SeriesID     string      `json:"series_id"`
	Method       TrendMethod `json:"method"`
	Slope        float64     `json:"slope"` // units per day
	Intercept    float64     `json:"intercept"`
	R2           float64     `json:"r2"`
	Direction    string      `json:"direction"` // up, down or flat
	SlopePerYear float64     `json:"slope_per_year"`
}

// Trend fits a straight line through the non-missing observations.
// x is measured in days since the first of them.
func Trend(seriesID string, obs []model.Observation, method TrendMethod) (TrendResult, error) {
	tr := TrendResult{SeriesID: seriesID, Method: method}

	var xs, ys []float64
	var t0 int64
	for _, o := range obs {
		if o.IsMissing() {
			continue
		}
		unix := o.Date.Unix()
		if len(xs) == 0 {
			t0 = unix
		}
		xs = append(xs, float64(unix-t0)/86400)
		ys = append(ys, o.Value)
	}
	if len(xs) < 2 {
		return tr, fmt.Errorf("trend: need at least 2 non-missing observations, got %d", len(xs))
	}

	switch method {
	case TrendTheilSen:
		tr.Slope = theilSenSlope(xs, ys)
		tr.Intercept = stat.Mean(ys, nil) - tr.Slope*stat.Mean(xs, nil)
	default:
		tr.Method = TrendLinear
		tr.Intercept, tr.Slope = stat.LinearRegression(xs, ys, nil, false)
	}

	tr.R2 = rSquared(xs, ys, tr.Intercept, tr.Slope)
	tr.SlopePerYear = tr.Slope * 365.25

	switch {
	case tr.SlopePerYear > 0.01:
		tr.Direction = "up"
	case tr.SlopePerYear < -0.01:
		tr.Direction = "down"
	default:
		tr.Direction = "flat"
	}
	return tr, nil
}

// Entity renders tr as a "trend" entity.
func (tr TrendResult) Entity() fred.Entity {
	e := fred.Entity{Name: "trend"}
	e.SetAttribute("series_id", tr.SeriesID)
	e.SetAttribute("method", string(tr.Method))
	e.SetAttribute("direction", tr.Direction)
	e.SetAttribute("slope", formatFloat(tr.Slope))
	e.SetAttribute("slope_per_year", formatFloat(tr.SlopePerYear))
	e.SetAttribute("intercept", formatFloat(tr.Intercept))
	e.SetAttribute("r2", formatFloat(tr.R2))
	return e
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func theilSenSlope(xs, ys []float64) float64 {
	var slopes []float64
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			dx := xs[j] - xs[i]
			if dx == 0 {
				continue
			}
			slopes = append(slopes, (ys[j]-ys[i])/dx)
		}
	}
	if len(slopes) == 0 {
		return 0
	}
	sort.Float64s(slopes)
	return stat.Quantile(0.5, stat.Empirical, slopes, nil)
}

// rSquared is 1 for a constant series, where stat.RSquared would divide
// by zero.
func rSquared(xs, ys []float64, alpha, beta float64) float64 {
	if stat.Variance(ys, nil) == 0 {
		return 1
	}
	return stat.RSquared(xs, ys, nil, alpha, beta)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "."
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
