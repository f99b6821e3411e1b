package config_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/internal/config"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// writeConfig writes a config.json into dir and changes the working directory
// to dir for the duration of the test.
func writeConfig(t *testing.T, dir string, f config.File) {
	t.Helper()
	if err := config.WriteFile(filepath.Join(dir, "config.json"), f); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// clearEnv blanks every environment variable Load reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvAPIKey, config.EnvBaseURL, config.EnvDBPath, config.EnvLogLevel, config.EnvFileType} {
		t.Setenv(k, "")
	}
}

// ─── Defaults ─────────────────────────────────────────────────────────────────

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Format != config.DefaultFormat {
		t.Errorf("Format: expected %q, got %q", config.DefaultFormat, cfg.Format)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("Timeout: expected %v, got %v", config.DefaultTimeout, cfg.Timeout)
	}
	if cfg.RetryMax != config.DefaultRetryMax || cfg.RetryWait != config.DefaultRetryWait {
		t.Errorf("retry: got %d/%v", cfg.RetryMax, cfg.RetryWait)
	}
	if cfg.Rate != config.DefaultRate {
		t.Errorf("Rate: expected %g, got %g", config.DefaultRate, cfg.Rate)
	}
	if cfg.BaseURL != fred.DefaultBaseURI {
		t.Errorf("BaseURL: expected %q, got %q", fred.DefaultBaseURI, cfg.BaseURL)
	}
	if cfg.FileType != "" {
		t.Errorf("FileType should default to empty, got %q", cfg.FileType)
	}
	if cfg.LogFormat != "text" || cfg.LogLevel != "warn" {
		t.Errorf("log: got %s/%s", cfg.LogFormat, cfg.LogLevel)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should have a default (home dir based) value")
	}
	if cfg.ConfigPath != "" {
		t.Errorf("ConfigPath should be empty when no file found, got %q", cfg.ConfigPath)
	}
}

// ─── Config file loading ──────────────────────────────────────────────────────

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{
		APIKey:        "filekey123",
		BaseURL:       "https://custom.example.com/fred",
		FileType:      "xml",
		DefaultFormat: "json",
		Timeout:       "60s",
		RetryMax:      5,
		RetryWait:     "2s",
		Rate:          2.5,
		UserAgent:     "custom-agent",
		LogFormat:     "json",
		DBPath:        "/tmp/test.db",
	})

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := *cfg
	got.ConfigPath = ""
	want := config.Config{
		APIKey:      "filekey123",
		BaseURL:     "https://custom.example.com/fred",
		FileType:    "xml",
		Format:      "json",
		Timeout:     time.Minute,
		RetryMax:    5,
		RetryWait:   2 * time.Second,
		Rate:        2.5,
		Concurrency: config.DefaultConcurrency,
		UserAgent:   "custom-agent",
		LogFormat:   "json",
		LogLevel:    config.DefaultLogLevel,
		DBPath:      "/tmp/test.db",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasSuffix(cfg.ConfigPath, "config.json") {
		t.Errorf("ConfigPath should end with config.json, got %q", cfg.ConfigPath)
	}
}

func TestLoadInvalidDurationsIgnored(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{
		APIKey:    "k",
		Timeout:   "not-a-duration",
		RetryWait: "soon",
	})

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != config.DefaultTimeout || cfg.RetryWait != config.DefaultRetryWait {
		t.Errorf("invalid durations should keep defaults, got %v/%v", cfg.Timeout, cfg.RetryWait)
	}
}

func TestLoadMalformedFileIgnored(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigPath != "" {
		t.Errorf("malformed file should not be recorded, got %q", cfg.ConfigPath)
	}
}

// ─── Environment priority ─────────────────────────────────────────────────────

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{APIKey: "filekey", BaseURL: "http://file/fred", DBPath: "/file.db"})
	t.Setenv(config.EnvAPIKey, "envkey")
	t.Setenv(config.EnvBaseURL, "http://env/fred")
	t.Setenv(config.EnvDBPath, "/env.db")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvFileType, "xml")

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "envkey" || cfg.BaseURL != "http://env/fred" || cfg.DBPath != "/env.db" {
		t.Errorf("env should override file: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.FileType != "xml" {
		t.Errorf("env log level/file type not applied: %s/%s", cfg.LogLevel, cfg.FileType)
	}
}

func TestLoadEmptyEnvDoesNotOverride(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{APIKey: "filekey"})

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "filekey" {
		t.Errorf("empty env should not override file value: got %q", cfg.APIKey)
	}
}

// ─── CLI flag priority ────────────────────────────────────────────────────────

func TestLoadFlagsOverrideEnvAndFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{APIKey: "filekey", DefaultFormat: "csv"})
	t.Setenv(config.EnvAPIKey, "envkey")

	cfg, err := config.Load(config.Flags{
		APIKey:    "flagkey",
		Format:    "json",
		Timeout:   "3s",
		RetryMax:  1,
		Rate:      0.5,
		LogFormat: "json",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "flagkey" || cfg.Format != "json" {
		t.Errorf("flags should win: key=%q format=%q", cfg.APIKey, cfg.Format)
	}
	if cfg.Timeout != 3*time.Second || cfg.RetryMax != 1 || cfg.Rate != 0.5 || cfg.LogFormat != "json" {
		t.Errorf("flag values not applied: %+v", cfg)
	}
}

func TestLoadBadFlagTimeout(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	if _, err := config.Load(config.Flags{Timeout: "fast"}); err == nil {
		t.Error("invalid --timeout should fail")
	}
}

// ─── Validate ─────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	ok := &config.Config{APIKey: "somekey", LogFormat: "text"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate with API key should not error: %v", err)
	}

	err := (&config.Config{LogFormat: "text"}).Validate()
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("missing key error should mention API key, got: %v", err)
	}

	if err := (&config.Config{APIKey: "k", LogFormat: "xml"}).Validate(); err == nil {
		t.Error("unknown log format should fail")
	}
}

// ─── RedactedAPIKey ───────────────────────────────────────────────────────────

func TestRedactedAPIKey(t *testing.T) {
	cfg := &config.Config{APIKey: "abcdefghij"}
	if got := cfg.RedactedAPIKey(); got != "ab****ij" {
		t.Errorf("RedactedAPIKey() = %q, want ab****ij", got)
	}
	for _, key := range []string{"", "a", "ab", "abc", "abcd"} {
		cfg := &config.Config{APIKey: key}
		if cfg.RedactedAPIKey() != "****" {
			t.Errorf("short key %q should redact to '****', got %q", key, cfg.RedactedAPIKey())
		}
	}
}

// ─── WriteFile / Template ─────────────────────────────────────────────────────

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	f := config.File{
		APIKey:        "testkey",
		DefaultFormat: "csv",
		Timeout:       "45s",
		RetryMax:      2,
		Rate:          3.0,
		DBPath:        "/data/fredkit.db",
	}
	if err := config.WriteFile(path, f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := config.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(f, *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file permissions: expected 0600, got %04o", info.Mode().Perm())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := config.ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestTemplateDefaults(t *testing.T) {
	tmpl := config.Template()
	if tmpl.APIKey != "" {
		t.Errorf("Template.APIKey should be empty (user fills it in), got %q", tmpl.APIKey)
	}
	if tmpl.DefaultFormat != "table" || tmpl.Timeout != "15s" || tmpl.RetryWait != "5s" {
		t.Errorf("template = %+v", tmpl)
	}
	if !strings.HasPrefix(tmpl.BaseURL, "https://") {
		t.Errorf("Template.BaseURL should be an https URL, got %q", tmpl.BaseURL)
	}

	data, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"api_key":""`) {
		t.Errorf("api_key should always be written: %s", data)
	}
}

func TestLoadFromTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	toml := "api_key = \"tomlkey\"\ndefault_format = \"jsonl\"\nconcurrency = 3\ntimeout = \"20s\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "tomlkey" || cfg.Format != "jsonl" || cfg.Concurrency != 3 || cfg.Timeout != 20*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if filepath.Base(cfg.ConfigPath) != "config.toml" {
		t.Errorf("ConfigPath = %q", cfg.ConfigPath)
	}
}

func TestJSONWinsOverTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := config.WriteFile(filepath.Join(dir, "config.toml"), config.File{APIKey: "fromtoml"}); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, config.File{APIKey: "fromjson"})

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "fromjson" {
		t.Errorf("APIKey = %q, config.json should be preferred", cfg.APIKey)
	}
}

func TestWriteReadTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := config.Template()
	f.APIKey = "abc"
	f.Concurrency = 4
	if err := config.WriteFile(path, f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "api_key = 'abc'") && !strings.Contains(string(data), `api_key = "abc"`) {
		t.Errorf("not TOML:\n%s", data)
	}
	got, err := config.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(f, *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrencyLayers(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{APIKey: "k", Concurrency: 2})

	cfg, _ := config.Load(config.Flags{})
	if cfg.Concurrency != 2 {
		t.Errorf("file layer: Concurrency = %d", cfg.Concurrency)
	}
	cfg, _ = config.Load(config.Flags{Concurrency: 16})
	if cfg.Concurrency != 16 {
		t.Errorf("flag layer: Concurrency = %d", cfg.Concurrency)
	}
}

// ─── Set ──────────────────────────────────────────────────────────────────────

func TestFileSet(t *testing.T) {
	var f config.File
	for k, v := range map[string]string{
		"API_KEY":    "k",
		"format":     "md",
		"timeout":    "20s",
		"retry_max":  "4",
		"retry_wait": "1s",
		"rate":       "1.5",
		"log_format": "json",
		"file_type":  "xml",
	} {
		if err := f.Set(k, v); err != nil {
			t.Errorf("Set(%q, %q): %v", k, v, err)
		}
	}
	want := config.File{
		APIKey: "k", DefaultFormat: "md", Timeout: "20s", RetryMax: 4,
		RetryWait: "1s", Rate: 1.5, LogFormat: "json", FileType: "xml",
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Set mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSetRejects(t *testing.T) {
	var f config.File
	for k, v := range map[string]string{
		"colour":      "blue",
		"timeout":     "soon",
		"retry_max":   "three",
		"rate":        "fast",
		"log_format":  "yaml",
		"concurrency": "0",
	} {
		if err := f.Set(k, v); err == nil {
			t.Errorf("Set(%q, %q) should fail", k, v)
		}
	}
	if f != (config.File{}) {
		t.Errorf("rejected values were stored: %+v", f)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := config.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
	if len(keys) != 12 {
		t.Errorf("got %d keys, want 12", len(keys))
	}
}
