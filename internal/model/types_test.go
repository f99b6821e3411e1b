package model_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/model"
)

func entity(name string, attrs ...string) fred.Entity {
	e := fred.Entity{Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttribute(attrs[i], attrs[i+1])
	}
	return e
}

// ─── RequestKey ───────────────────────────────────────────────────────────────

func TestRequestKeyDropsAPIKey(t *testing.T) {
	req := fred.SeriesObservations("GNPCA").WithLimit("3")
	req.With("API_KEY", "secret")

	got := model.RequestKey(req)
	want := "series/observations?limit=3|series_id=GNPCA|"
	if got != want {
		t.Errorf("RequestKey() = %q, want %q", got, want)
	}
	if req.Param("api_key") != "secret" {
		t.Error("RequestKey must not modify the request")
	}
}

func TestRequestKeyIgnoresBuildOrder(t *testing.T) {
	a := fred.CategorySeries("106").WithLimit("10").WithSort("desc")
	b := fred.CategorySeries("106").WithSort("desc").WithLimit("10")
	if model.RequestKey(a) != model.RequestKey(b) {
		t.Errorf("keys differ: %q vs %q", model.RequestKey(a), model.RequestKey(b))
	}
}

func TestNewResult(t *testing.T) {
	resp := &fred.Response{Entities: []fred.Entity{entity("series"), entity("series")}}
	r := model.NewResult("series search gdp", fred.SeriesSearch("gdp"), resp)

	if r.Kind != fred.PathSeriesSearch || r.Stats.Items != 2 {
		t.Errorf("result = %+v", r)
	}
	if r.Request != "series/search?search_text=gdp|" {
		t.Errorf("Request = %q", r.Request)
	}
	if time.Since(r.GeneratedAt) > time.Minute {
		t.Error("GeneratedAt not stamped")
	}
	var empty *model.Result
	if empty.Entities() != nil {
		t.Error("nil result should have no entities")
	}
}

// ─── Columns / Rows ───────────────────────────────────────────────────────────

func TestColumnsOrder(t *testing.T) {
	ents := []fred.Entity{
		entity("series", "title", "GDP", "units", "Billions", "id", "GDP"),
		entity("series", "frequency", "Quarterly", "id", "GDPC1"),
	}
	want := []string{"id", "title", "frequency", "units"}
	if diff := cmp.Diff(want, model.Columns(ents)); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnsWithText(t *testing.T) {
	ents := []fred.Entity{{Name: "vintage_date", Value: "2013-07-31"}}
	cols := model.Columns(ents)
	if diff := cmp.Diff([]string{model.TextColumn}, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	rows := model.Rows(ents, cols)
	if rows[0][0] != "2013-07-31" {
		t.Errorf("rows = %v", rows)
	}
}

func TestRowsFillMissing(t *testing.T) {
	ents := []fred.Entity{
		entity("observation", "date", "1929-01-01", "value", "1065.9"),
		entity("observation", "date", "1930-01-01"),
	}
	got := model.Rows(ents, model.Columns(ents))
	want := [][]string{{"1929-01-01", "1065.9"}, {"1930-01-01", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

// ─── Observations ─────────────────────────────────────────────────────────────

func TestObservations(t *testing.T) {
	ents := []fred.Entity{
		entity("observation", "date", "1929-01-01", "value", "1065.9", "realtime_start", "2013-08-14"),
		entity("observation", "date", "1930-01-01", "value", "."),
		entity("observation", "date", "bad", "value", "1"),
	}
	obs := model.Observations(ents)
	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if obs[0].Value != 1065.9 || obs[0].IsMissing() || obs[0].RealtimeStart != "2013-08-14" {
		t.Errorf("first = %+v", obs[0])
	}
	if !obs[1].IsMissing() || obs[1].ValueRaw != "." {
		t.Errorf("second = %+v", obs[1])
	}
	if obs[1].Date.Year() != 1930 {
		t.Errorf("date = %v", obs[1].Date)
	}
}
