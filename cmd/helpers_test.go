package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/fred/fredtest"
	"github.com/derickschaefer/fredkit/internal/crawl"
)

// ─── Output ───────────────────────────────────────────────────────────────────

func TestOutputWriterDefault(t *testing.T) {
	globalFlags.Out = ""
	w, closeFn, err := outputWriter(os.Stdout)
	if err != nil {
		t.Fatalf("outputWriter default: %v", err)
	}
	if w != os.Stdout {
		t.Fatalf("expected stdout writer passthrough")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("default closer should be nil error, got: %v", err)
	}
}

func TestOutputWriterFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	globalFlags.Out = p
	t.Cleanup(func() { globalFlags.Out = "" })

	w, closeFn, err := outputWriter(os.Stdout)
	if err != nil {
		t.Fatalf("outputWriter file: %v", err)
	}
	if w == os.Stdout {
		t.Fatalf("expected file writer, got stdout")
	}
	if err := closeFn(); err != nil {
		t.Fatalf("closing output writer: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
}

func TestCloseOutputReportsCloseError(t *testing.T) {
	diskFull := errors.New("disk full")
	failing := func() error { return diskFull }

	var err error
	closeOutput(failing, &err)
	if !errors.Is(err, diskFull) {
		t.Errorf("err = %v, want the close error", err)
	}

	earlier := errors.New("render failed")
	err = earlier
	closeOutput(failing, &err)
	if err != earlier {
		t.Errorf("err = %v, the earlier error should win", err)
	}

	err = nil
	closeOutput(func() error { return nil }, &err)
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestCloseOutputOnClosedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	globalFlags.Out = p
	t.Cleanup(func() { globalFlags.Out = "" })

	_, closeFn, err := outputWriter(os.Stdout)
	if err != nil {
		t.Fatal(err)
	}
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	// a second close of the same file fails and must surface
	var got error
	closeOutput(closeFn, &got)
	if got == nil {
		t.Error("closing an already closed --out file should report an error")
	}
}

func TestResolveFormat(t *testing.T) {
	t.Cleanup(func() { globalFlags.Format = "" })

	globalFlags.Format = ""
	if got := resolveFormat(""); got != "table" {
		t.Errorf("no format = %q, want table", got)
	}
	if got := resolveFormat("csv"); got != "csv" {
		t.Errorf("config format = %q, want csv", got)
	}
	globalFlags.Format = "json"
	if got := resolveFormat("csv"); got != "json" {
		t.Errorf("flag format = %q, want json", got)
	}
}

// ─── Argument parsing ─────────────────────────────────────────────────────────

func TestParseIntID(t *testing.T) {
	cases := map[string]string{
		"0":   "0",
		"53":  "53",
		" 7 ": "7",
		"007": "7",
	}
	for in, want := range cases {
		got, err := parseIntID(in, "release ID")
		if err != nil {
			t.Errorf("parseIntID(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseIntID(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "-1", "abc", "1.5"} {
		if _, err := parseIntID(bad, "release ID"); err == nil {
			t.Errorf("parseIntID(%q) should fail", bad)
		} else if !strings.Contains(err.Error(), "release ID") {
			t.Errorf("error %q should name the label", err)
		}
	}
}

func TestParseCategoryID(t *testing.T) {
	for in, want := range map[string]string{"root": "0", "ROOT": "0", "125": "125"} {
		got, err := parseCategoryID(in)
		if err != nil || got != want {
			t.Errorf("parseCategoryID(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parseCategoryID("top"); err == nil {
		t.Error("parseCategoryID(top) should fail")
	}
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"limit=5", " sort_order =desc", "search_text=a=b", "empty="})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"limit", "5"}, {"sort_order", "desc"}, {"search_text", "a=b"}, {"empty", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"limit", "=5"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("parseParams(%q) should fail", bad)
		}
	}
}

func TestNormaliseIDs(t *testing.T) {
	got := normaliseIDs([]string{"gdp", " UNRATE ", "GDP", "", "cpiaucsl"})
	want := []string{"GDP", "UNRATE", "CPIAUCSL"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinTags(t *testing.T) {
	got := joinTags([]string{"Inflation", "monthly;usa", " ;"})
	if got != "inflation;monthly;usa" {
		t.Errorf("joinTags = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		1 << 20: "1.0 MiB",
	}
	for n, want := range cases {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

// ─── Batch merging ────────────────────────────────────────────────────────────

func seriesOutcome(ids ...string) crawl.Outcome {
	resp := &fred.Response{Result: fred.Entity{Name: "seriess"}}
	for _, id := range ids {
		e := fred.Entity{Name: "series"}
		e.SetAttribute("id", id)
		resp.Entities = append(resp.Entities, e)
	}
	resp.SetErrorFromResult()
	return crawl.Outcome{Request: fred.Series(ids[0]), Response: resp}
}

func failedOutcome(id string) crawl.Outcome {
	resp := &fred.Response{Result: fred.Entity{Name: "error"}}
	resp.Result.SetAttribute("code", "400")
	resp.Result.SetAttribute("message", "Bad Request.")
	resp.SetErrorFromResult()
	return crawl.Outcome{Request: fred.Series(id), Response: resp}
}

func TestMergeOutcomes(t *testing.T) {
	outcomes := []crawl.Outcome{
		failedOutcome("NOPE"),
		seriesOutcome("GDP"),
		seriesOutcome("UNRATE"),
	}
	merged, good, warnings := mergeOutcomes("series get", outcomes)
	if merged == nil {
		t.Fatal("merged result is nil")
	}

	var ids []string
	for _, e := range merged.Entities() {
		ids = append(ids, e.Attribute("id"))
	}
	if diff := cmp.Diff([]string{"GDP", "UNRATE"}, ids); diff != "" {
		t.Errorf("merged ids (-want +got):\n%s", diff)
	}
	if merged.Stats.Items != 2 {
		t.Errorf("items = %d, want 2", merged.Stats.Items)
	}
	if merged.Request != "series?series_id=GDP|" {
		t.Errorf("merged request = %q", merged.Request)
	}
	if len(good) != 2 {
		t.Errorf("good = %d, want 2", len(good))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "400") {
		t.Errorf("warnings = %v", warnings)
	}
	// The first good response keeps its own entities.
	if n := len(outcomes[1].Response.Entities); n != 1 {
		t.Errorf("source response mutated: %d entities", n)
	}
}

func TestMergeOutcomesAllFailed(t *testing.T) {
	merged, good, warnings := mergeOutcomes("series get", []crawl.Outcome{failedOutcome("A"), failedOutcome("B")})
	if merged != nil || len(good) != 0 {
		t.Errorf("merged = %v, good = %v", merged, good)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestDerivedResult(t *testing.T) {
	r := derivedResult("category tree 0", "category/tree", "categories", []fred.Entity{{Name: "category"}})
	if !r.Response.Good() {
		t.Errorf("derived result should be good: %v", r.Response.Error)
	}
	if r.Kind != "category/tree" || r.Stats.Items != 1 || r.Response.Result.Name != "categories" {
		t.Errorf("result = %+v", r)
	}
}

// ─── End to end ───────────────────────────────────────────────────────────────

// fakeFRED answers the fixture documents by path and counts requests.
type fakeFRED struct {
	*httptest.Server
	hits atomic.Int32
}

func newFakeFRED(t *testing.T) *fakeFRED {
	t.Helper()
	f := &fakeFRED{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		w.Header().Set("Content-Type", "text/xml; charset=UTF-8")
		if r.URL.Query().Get("api_key") != "testkey" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(fredtest.ErrorXML))
			return
		}
		switch {
		case r.URL.Path == "/fred/series/observations":
			_, _ = w.Write([]byte(fredtest.ObservationsXML))
		case r.URL.Path == "/fred/series" && r.URL.Query().Get("series_id") == "DEXUSEU":
			_, _ = w.Write([]byte(fredtest.SeriesXML))
		case r.URL.Path == "/fred/category/children":
			if r.URL.Query().Get("category_id") == "0" {
				_, _ = w.Write([]byte(fredtest.CategoryChildrenXML))
				return
			}
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?><categories></categories>`))
		case r.URL.Path == "/fred/category":
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?><categories><category id="0" name="Categories" parent_id="0"/></categories>`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?><error code="400" message="Bad Request.  The series does not exist."/>`))
		}
	}))
	t.Cleanup(f.Close)
	return f
}

// runCLI executes the root command with the fake server wired in and
// returns stdout and stderr.
func runCLI(t *testing.T, srv *fakeFRED, args ...string) (string, string, error) {
	t.Helper()
	globalFlags = rootFlags{}

	base := []string{
		"--api-key", "testkey",
		"--base-url", srv.URL + "/fred",
		"--retry-max", "-1",
		"--rate", "-1",
		"--db-path", filepath.Join(t.TempDir(), "fredkit.db"),
	}
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(base, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLISeriesObsCSV(t *testing.T) {
	srv := newFakeFRED(t)
	out, _, err := runCLI(t, srv, "series", "obs", "gnpca", "--format", "csv", "--quiet")
	if err != nil {
		t.Fatalf("series obs: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "date,value,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1929-01-01,1065.9,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestCLIOutFile(t *testing.T) {
	srv := newFakeFRED(t)
	p := filepath.Join(t.TempDir(), "series.json")
	out, _, err := runCLI(t, srv, "series", "get", "DEXUSEU", "--format", "json", "--out", p, "--quiet")
	if err != nil {
		t.Fatalf("series get: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty with --out, got %q", out)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"DEXUSEU"`) {
		t.Errorf("output file lacks the series:\n%s", data)
	}
}

func TestCLIBatchWarnsOnFailure(t *testing.T) {
	srv := newFakeFRED(t)
	out, errOut, err := runCLI(t, srv, "series", "get", "DEXUSEU", "NOSUCH", "--format", "csv")
	if err != nil {
		t.Fatalf("batch with one good id should succeed: %v", err)
	}
	if !strings.Contains(out, "DEXUSEU") {
		t.Errorf("stdout lacks the good series:\n%s", out)
	}
	if !strings.Contains(errOut, "400") {
		t.Errorf("stderr should carry the failure warning:\n%s", errOut)
	}
}

func TestCLIDomainError(t *testing.T) {
	srv := newFakeFRED(t)
	_, _, err := runCLI(t, srv, "series", "get", "NOSUCH")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("err = %v, want the FRED error message", err)
	}
}

func TestCLIGenericGet(t *testing.T) {
	srv := newFakeFRED(t)
	out, _, err := runCLI(t, srv, "get", "series/observations", "GNPCA", "-p", "limit=3", "--format", "jsonl", "--quiet")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("jsonl lines = %d, want 3:\n%s", n, out)
	}

	if _, _, err := runCLI(t, srv, "get", "series"); err == nil {
		t.Error("get series without an id should fail")
	}
	if _, _, err := runCLI(t, srv, "get", "no/such/path", "1"); err == nil {
		t.Error("unknown resource should fail")
	}
}

func TestCLICategoryTree(t *testing.T) {
	srv := newFakeFRED(t)
	out, _, err := runCLI(t, srv, "category", "tree", "root", "--depth", "1")
	if err != nil {
		t.Fatalf("category tree: %v", err)
	}
	want := "[0] Categories\n" +
		"├── [32991] Money, Banking, & Finance\n" +
		"├── [10] Population, Employment, & Labor Markets\n" +
		"└── [32992] National Accounts\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCLIStoreRoundTrip(t *testing.T) {
	srv := newFakeFRED(t)
	db := filepath.Join(t.TempDir(), "store.db")

	if _, _, err := runCLI(t, srv, "series", "obs", "GNPCA", "--store", "--db-path", db, "--quiet"); err != nil {
		t.Fatalf("series obs --store: %v", err)
	}
	hits := srv.hits.Load()

	out, _, err := runCLI(t, srv, "store", "show", "series/observations?series_id=GNPCA|", "--db-path", db, "--format", "csv", "--quiet")
	if err != nil {
		t.Fatalf("store show: %v", err)
	}
	if !strings.Contains(out, "1930-01-01,975.5") {
		t.Errorf("stored observations missing:\n%s", out)
	}
	if srv.hits.Load() != hits {
		t.Error("store show should not call the API")
	}

	if _, _, err := runCLI(t, srv, "store", "delete", "series/observations?series_id=GNPCA|", "--db-path", db, "--quiet"); err != nil {
		t.Fatalf("store delete: %v", err)
	}
	if _, _, err := runCLI(t, srv, "store", "show", "series/observations?series_id=GNPCA|", "--db-path", db); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestCLIMissingAPIKey(t *testing.T) {
	t.Setenv("FRED_API_KEY", "")
	srv := newFakeFRED(t)
	_, _, err := runCLI(t, srv, "series", "get", "GDP", "--api-key", "")
	if err == nil || !strings.Contains(err.Error(), "API key not found") {
		t.Fatalf("err = %v, want missing key error", err)
	}
	if srv.hits.Load() != 0 {
		t.Error("no request should be sent without a key")
	}
}

func TestCLIAnalyzeFromPipe(t *testing.T) {
	srv := newFakeFRED(t)
	rootCmd.SetIn(strings.NewReader(`{"date":"2020-01-01","value":1}
{"date":"2021-01-01","value":3}
{"date":"2022-01-01","value":null,"value_raw":"."}
`))
	out, _, err := runCLI(t, srv, "analyze", "summary", "-", "--format", "jsonl", "--quiet")
	if err != nil {
		t.Fatalf("analyze summary -: %v", err)
	}
	var rec map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	want := map[string]string{"series_id": "-", "count": "3", "missing": "1", "mean": "2", "first": "1", "last": "3"}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %q, want %q", k, rec[k], v)
		}
	}
	if srv.hits.Load() != 0 {
		t.Error("piped analysis should not call the API")
	}
}

func TestCLIAnalyzeFetches(t *testing.T) {
	srv := newFakeFRED(t)
	out, _, err := runCLI(t, srv, "analyze", "trend", "GNPCA", "--format", "jsonl", "--quiet")
	if err != nil {
		t.Fatalf("analyze trend: %v", err)
	}
	var rec map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if rec["series_id"] != "GNPCA" || rec["direction"] != "down" || rec["_name"] != "trend" {
		t.Errorf("trend = %v", rec)
	}
}
