// Package config handles loading and resolving fredkit configuration.
// Resolution order (later layers win when they carry a non-empty value):
//  1. built-in defaults
//  2. config.json (or config.toml) in the current working directory
//  3. environment variables (FRED_API_KEY, FREDKIT_*)
//  4. CLI flags
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/derickschaefer/fredkit/fred"
)

const (
	DefaultConfigFile  = "config.json"
	TOMLConfigFile     = "config.toml"
	DefaultFormat      = "table"
	DefaultTimeout     = 15 * time.Second
	DefaultRetryMax    = 3
	DefaultRetryWait   = 5 * time.Second
	DefaultRate        = 5.0
	DefaultConcurrency = 8
	DefaultLogFormat   = "text"
	DefaultLogLevel    = "warn"

	EnvAPIKey   = "FRED_API_KEY"
	EnvBaseURL  = "FREDKIT_BASE_URL"
	EnvDBPath   = "FREDKIT_DB_PATH"
	EnvLogLevel = "FREDKIT_LOG_LEVEL"
	EnvFileType = "FREDKIT_FILE_TYPE"
)

// File is the on-disk representation of config.json. The same keys are
// read from config.toml.
type File struct {
	APIKey        string  `json:"api_key" toml:"api_key"`
	BaseURL       string  `json:"base_url,omitempty" toml:"base_url,omitempty"`
	FileType      string  `json:"file_type,omitempty" toml:"file_type,omitempty"`
	DefaultFormat string  `json:"default_format,omitempty" toml:"default_format,omitempty"`
	Timeout       string  `json:"timeout,omitempty" toml:"timeout,omitempty"`
	RetryMax      int     `json:"retry_max,omitempty" toml:"retry_max,omitempty"`
	RetryWait     string  `json:"retry_wait,omitempty" toml:"retry_wait,omitempty"`
	Rate          float64 `json:"rate,omitempty" toml:"rate,omitempty"`
	Concurrency   int     `json:"concurrency,omitempty" toml:"concurrency,omitempty"`
	UserAgent     string  `json:"user_agent,omitempty" toml:"user_agent,omitempty"`
	LogFormat     string  `json:"log_format,omitempty" toml:"log_format,omitempty"`
	DBPath        string  `json:"db_path,omitempty" toml:"db_path,omitempty"`
}

// env is the environment layer, filled by envconfig.
type env struct {
	APIKey   string `envconfig:"FRED_API_KEY"`
	BaseURL  string `envconfig:"FREDKIT_BASE_URL"`
	DBPath   string `envconfig:"FREDKIT_DB_PATH"`
	LogLevel string `envconfig:"FREDKIT_LOG_LEVEL"`
	FileType string `envconfig:"FREDKIT_FILE_TYPE"`
}

// Flags carries the CLI flag layer. Zero fields mean "not set".
type Flags struct {
	APIKey      string
	BaseURL     string
	FileType    string
	Format      string
	Timeout     string
	RetryMax    int
	Rate        float64
	Concurrency int
	LogFormat   string
	DBPath      string
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	APIKey      string
	BaseURL     string
	FileType    string
	Format      string
	Timeout     time.Duration
	RetryMax    int
	RetryWait   time.Duration
	Rate        float64
	Concurrency int
	UserAgent   string
	LogFormat   string
	LogLevel    string
	DBPath      string
	ConfigPath  string // path of the config file that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool
	Debug   bool
}

// Load resolves configuration from all sources.
func Load(flags Flags) (*Config, error) {
	cfg := defaults()

	// Layer 1: config file (lowest priority)
	if f, path, err := loadFile(); err == nil {
		applyFile(cfg, f, path)
	}

	// Layer 2: environment
	var e env
	if err := envconfig.Process("", &e); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	applyEnv(cfg, e)

	// Layer 3: CLI flags (highest priority)
	if err := applyFlags(cfg, flags); err != nil {
		return nil, err
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.DBPath = filepath.Join(home, ".fredkit", "fredkit.db")
		}
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		BaseURL:     fred.DefaultBaseURI,
		Format:      DefaultFormat,
		Timeout:     DefaultTimeout,
		RetryMax:    DefaultRetryMax,
		RetryWait:   DefaultRetryWait,
		Rate:        DefaultRate,
		Concurrency: DefaultConcurrency,
		LogFormat:   DefaultLogFormat,
		LogLevel:    DefaultLogLevel,
	}
}

// Validate returns an error if required fields are missing or malformed.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New(
			"API key not found.\n\n" +
				"Set it one of these ways:\n" +
				"  1. CLI flag:        fredkit --api-key YOUR_KEY ...\n" +
				"  2. Environment:     export FRED_API_KEY=YOUR_KEY\n" +
				"  3. config.json:     {\"api_key\": \"YOUR_KEY\"}\n\n" +
				"Get a free key at https://fred.stlouisfed.org/docs/api/api_key.html",
		)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// RedactedAPIKey returns the API key with most characters replaced by asterisks.
// Safe for logging and display.
func (c *Config) RedactedAPIKey() string {
	if len(c.APIKey) <= 4 {
		return "****"
	}
	return c.APIKey[:2] + "****" + c.APIKey[len(c.APIKey)-2:]
}

// loadFile reads config.json from the current working directory, falling
// back to config.toml.
func loadFile() (*File, string, error) {
	var lastErr error
	for _, name := range []string{DefaultConfigFile, TOMLConfigFile} {
		path, err := filepath.Abs(name)
		if err != nil {
			return nil, "", err
		}
		f, err := ReadFile(path)
		if err == nil {
			return f, path, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// isTOML reports whether path names a TOML config file.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ReadFile parses the config file at path. Files ending in .toml are
// decoded as TOML, anything else as JSON.
func ReadFile(path string) (*File, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found at %s: %w", name, path, err)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var f File
	if isTOML(path) {
		err = toml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return &f, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	setString(&cfg.APIKey, f.APIKey)
	setString(&cfg.BaseURL, f.BaseURL)
	setString(&cfg.FileType, f.FileType)
	setString(&cfg.Format, f.DefaultFormat)
	setString(&cfg.UserAgent, f.UserAgent)
	setString(&cfg.LogFormat, f.LogFormat)
	setString(&cfg.DBPath, f.DBPath)
	if d, err := time.ParseDuration(f.Timeout); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if d, err := time.ParseDuration(f.RetryWait); err == nil && d > 0 {
		cfg.RetryWait = d
	}
	if f.RetryMax != 0 {
		cfg.RetryMax = f.RetryMax
	}
	if f.Rate != 0 {
		cfg.Rate = f.Rate
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
}

func applyEnv(cfg *Config, e env) {
	setString(&cfg.APIKey, e.APIKey)
	setString(&cfg.BaseURL, e.BaseURL)
	setString(&cfg.DBPath, e.DBPath)
	setString(&cfg.LogLevel, e.LogLevel)
	setString(&cfg.FileType, e.FileType)
}

func applyFlags(cfg *Config, fl Flags) error {
	setString(&cfg.APIKey, fl.APIKey)
	setString(&cfg.BaseURL, fl.BaseURL)
	setString(&cfg.FileType, fl.FileType)
	setString(&cfg.Format, fl.Format)
	setString(&cfg.LogFormat, fl.LogFormat)
	setString(&cfg.DBPath, fl.DBPath)
	if fl.Timeout != "" {
		d, err := time.ParseDuration(fl.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout %q: %w", fl.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fl.RetryMax != 0 {
		cfg.RetryMax = fl.RetryMax
	}
	if fl.Rate != 0 {
		cfg.Rate = fl.Rate
	}
	if fl.Concurrency > 0 {
		cfg.Concurrency = fl.Concurrency
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config.json via `fredkit config init`.
func Template() File {
	return File{
		APIKey:        "",
		BaseURL:       fred.DefaultBaseURI,
		DefaultFormat: DefaultFormat,
		Timeout:       DefaultTimeout.String(),
		RetryMax:      DefaultRetryMax,
		RetryWait:     DefaultRetryWait.String(),
		Rate:          DefaultRate,
		Concurrency:   DefaultConcurrency,
		LogFormat:     DefaultLogFormat,
	}
}

// WriteFile serialises a File to the given path, as TOML when the path
// ends in .toml and as indented JSON otherwise.
func WriteFile(path string, f File) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Keys lists the names accepted by File.Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var setters = map[string]func(f *File, v string) error{
	"api_key":        func(f *File, v string) error { f.APIKey = v; return nil },
	"base_url":       func(f *File, v string) error { f.BaseURL = v; return nil },
	"file_type":      func(f *File, v string) error { f.FileType = v; return nil },
	"default_format": func(f *File, v string) error { f.DefaultFormat = v; return nil },
	"user_agent":     func(f *File, v string) error { f.UserAgent = v; return nil },
	"db_path":        func(f *File, v string) error { f.DBPath = v; return nil },
	"log_format": func(f *File, v string) error {
		if v != "text" && v != "json" {
			return fmt.Errorf("log_format must be text or json")
		}
		f.LogFormat = v
		return nil
	},
	"timeout": func(f *File, v string) error {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("timeout must be a duration (e.g. 15s): %w", err)
		}
		f.Timeout = v
		return nil
	},
	"retry_wait": func(f *File, v string) error {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("retry_wait must be a duration (e.g. 5s): %w", err)
		}
		f.RetryWait = v
		return nil
	},
	"retry_max": func(f *File, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("retry_max must be an integer")
		}
		f.RetryMax = n
		return nil
	},
	"concurrency": func(f *File, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("concurrency must be a positive integer")
		}
		f.Concurrency = n
		return nil
	},
	"rate": func(f *File, v string) error {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("rate must be a number")
		}
		f.Rate = r
		return nil
	},
}

// Set assigns the config.json field named key. "format" is accepted as
// an alias of default_format.
func (f *File) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "format" {
		key = "default_format"
	}
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s", key, strings.Join(Keys(), ", "))
	}
	return set(f, value)
}
