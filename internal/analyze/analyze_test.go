package analyze_test

import (
	"math"
	"testing"
	"time"

	"github.com/derickschaefer/fredkit/internal/analyze"
	"github.com/derickschaefer/fredkit/internal/model"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// makeAnnual builds annual observations (Jan 1) starting at startYear.
func makeAnnual(startYear int, values ...float64) []model.Observation {
	out := make([]model.Observation, len(values))
	for i, v := range values {
		out[i] = model.Observation{
			Date:  time.Date(startYear+i, 1, 1, 0, 0, 0, 0, time.UTC),
			Value: v,
		}
	}
	return out
}

// makeDaily builds observations one day apart starting 2020-01-01.
func makeDaily(values ...float64) []model.Observation {
	out := make([]model.Observation, len(values))
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = model.Observation{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// ─── Summarize ────────────────────────────────────────────────────────────────

func TestSummarizeBasicCounts(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, 1, 2, math.NaN(), 4, 5))

	if s.SeriesID != "TEST" || s.Count != 5 || s.Missing != 1 {
		t.Errorf("summary = %+v", s)
	}
	if !approxEqual(s.MissingPct, 20, 1e-9) {
		t.Errorf("MissingPct: expected 20, got %g", s.MissingPct)
	}
}

func TestSummarizeMoments(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, 1, 2, 3, 4, 5))

	if !approxEqual(s.Mean, 3, 1e-9) {
		t.Errorf("Mean: expected 3, got %g", s.Mean)
	}
	// Sample std of [1,2,3,4,5] = sqrt(2.5)
	if !approxEqual(s.Std, math.Sqrt(2.5), 1e-9) {
		t.Errorf("Std: expected %g, got %g", math.Sqrt(2.5), s.Std)
	}
}

func TestSummarizeOrderStatistics(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, 5, 1, 4, 2, 3))

	checks := []struct {
		name      string
		got, want float64
	}{
		{"Min", s.Min, 1},
		{"P25", s.P25, 2},
		{"Median", s.Median, 3},
		{"P75", s.P75, 4},
		{"Max", s.Max, 5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %g, got %g", c.name, c.want, c.got)
		}
	}
}

func TestSummarizeFirstLastChange(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, math.NaN(), 50, 60, 75, math.NaN()))

	if s.First != 50 || s.Last != 75 {
		t.Errorf("First/Last: got %g/%g", s.First, s.Last)
	}
	if s.Change != 25 || !approxEqual(s.ChangePct, 50, 1e-9) {
		t.Errorf("Change: got %g (%g%%)", s.Change, s.ChangePct)
	}
}

func TestSummarizeChangeZeroFirst(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, 0, 10))
	if !math.IsNaN(s.ChangePct) {
		t.Errorf("ChangePct from zero should be NaN, got %g", s.ChangePct)
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	s := analyze.Summarize("TEST", makeAnnual(2000, 7))
	if s.Mean != 7 || s.Std != 0 || s.Median != 7 {
		t.Errorf("summary = %+v", s)
	}
}

func TestSummarizeNoValues(t *testing.T) {
	for name, obs := range map[string][]model.Observation{
		"empty":   nil,
		"all NaN": makeAnnual(2000, math.NaN(), math.NaN()),
	} {
		t.Run(name, func(t *testing.T) {
			s := analyze.Summarize("TEST", obs)
			for _, v := range []float64{s.Mean, s.Std, s.Min, s.Max, s.Median, s.First, s.Last} {
				if !math.IsNaN(v) {
					t.Errorf("expected NaN fields, got %+v", s)
					break
				}
			}
		})
	}
}

func TestSummaryEntity(t *testing.T) {
	e := analyze.Summarize("GDP", makeAnnual(2000, 1, math.NaN(), 2.5)).Entity()

	if e.Name != "summary" {
		t.Errorf("Name = %q", e.Name)
	}
	want := map[string]string{
		"series_id":  "GDP",
		"count":      "3",
		"missing":    "1",
		"first":      "1",
		"last":       "2.5",
		"change_pct": "150",
	}
	for k, v := range want {
		if got := e.Attribute(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	empty := analyze.Summarize("X", nil).Entity()
	if empty.Attribute("mean") != "." {
		t.Errorf("NaN should render as '.', got %q", empty.Attribute("mean"))
	}
}

// ─── Trend ────────────────────────────────────────────────────────────────────

func TestParseTrendMethod(t *testing.T) {
	for in, want := range map[string]analyze.TrendMethod{
		"":          analyze.TrendLinear,
		"linear":    analyze.TrendLinear,
		"theil-sen": analyze.TrendTheilSen,
	} {
		got, err := analyze.ParseTrendMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseTrendMethod(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := analyze.ParseTrendMethod("spline"); err == nil {
		t.Error("unknown method should fail")
	}
}

func TestTrendLinearExactLine(t *testing.T) {
	// y = 10 + 2x, one observation per day
	tr, err := analyze.Trend("TEST", makeDaily(10, 12, 14, 16, 18), analyze.TrendLinear)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(tr.Slope, 2, 1e-9) || !approxEqual(tr.Intercept, 10, 1e-9) {
		t.Errorf("slope/intercept = %g/%g", tr.Slope, tr.Intercept)
	}
	if !approxEqual(tr.R2, 1, 1e-9) {
		t.Errorf("R2 = %g", tr.R2)
	}
	if tr.Direction != "up" || !approxEqual(tr.SlopePerYear, 730.5, 1e-9) {
		t.Errorf("direction=%s slope/year=%g", tr.Direction, tr.SlopePerYear)
	}
}

func TestTrendDownAndFlat(t *testing.T) {
	down, err := analyze.Trend("TEST", makeAnnual(2000, 100, 90, 80, 70), analyze.TrendLinear)
	if err != nil {
		t.Fatal(err)
	}
	if down.Direction != "down" {
		t.Errorf("Direction = %s, want down", down.Direction)
	}

	flat, err := analyze.Trend("TEST", makeAnnual(2000, 5, 5, 5, 5), analyze.TrendLinear)
	if err != nil {
		t.Fatal(err)
	}
	if flat.Direction != "flat" || flat.R2 != 1 {
		t.Errorf("flat = %+v", flat)
	}
}

func TestTrendSkipsMissing(t *testing.T) {
	obs := makeDaily(0, math.NaN(), 2, 3)
	tr, err := analyze.Trend("TEST", obs, analyze.TrendLinear)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(tr.Slope, 1, 1e-9) {
		t.Errorf("Slope = %g, want 1", tr.Slope)
	}
}

func TestTrendTooFewObservations(t *testing.T) {
	for name, obs := range map[string][]model.Observation{
		"one":           makeAnnual(2000, 1),
		"one after NaN": makeAnnual(2000, math.NaN(), 1),
		"none":          nil,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := analyze.Trend("TEST", obs, analyze.TrendLinear); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTrendTheilSenRobustToOutlier(t *testing.T) {
	// y = x with one wild outlier
	obs := makeDaily(0, 1, 2, 3, 400, 5, 6)

	ts, err := analyze.Trend("TEST", obs, analyze.TrendTheilSen)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Method != analyze.TrendTheilSen {
		t.Errorf("Method = %s", ts.Method)
	}
	if !approxEqual(ts.Slope, 1, 1e-9) {
		t.Errorf("Theil-Sen slope = %g, want 1", ts.Slope)
	}

	ols, _ := analyze.Trend("TEST", obs, analyze.TrendLinear)
	if math.Abs(ols.Slope-1) <= math.Abs(ts.Slope-1) {
		t.Errorf("OLS slope %g should be pulled further by the outlier than %g", ols.Slope, ts.Slope)
	}
}

func TestTrendEntity(t *testing.T) {
	tr, _ := analyze.Trend("GDP", makeDaily(1, 2), analyze.TrendLinear)
	e := tr.Entity()
	if e.Name != "trend" || e.Attribute("method") != "linear" || e.Attribute("direction") != "up" {
		t.Errorf("entity = %s", e)
	}
	if e.Attribute("slope") != "1" {
		t.Errorf("slope = %q", e.Attribute("slope"))
	}
}
