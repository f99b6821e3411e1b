// Package cmd implements the fredkit CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/derickschaefer/fredkit/internal/app"
	"github.com/derickschaefer/fredkit/internal/config"
)

// rootFlags holds the parsed values of all persistent (global) flags.
type rootFlags struct {
	APIKey      string
	BaseURL     string
	FileType    string
	Format      string
	Out         string
	Timeout     string
	RetryMax    int
	Rate        float64
	Concurrency int
	LogFormat   string
	DBPath      string
	Store       bool
	Quiet       bool
	Verbose     bool
	Debug       bool
}

var globalFlags rootFlags

// rootCmd is the base command. Running `fredkit` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "fredkit",
	Short: "fredkit: typed access to the FRED® API",
	Long: `fredkit sends typed requests to the Federal Reserve Bank of St. Louis
FRED® API and prints the answers as tables, JSON, CSV and more.

Data sourced from FRED®, Federal Reserve Bank of St. Louis;
https://fred.stlouisfed.org/

Get a free API key at: https://fred.stlouisfed.org/docs/api/api_key.html

Quick start:
  fredkit config init                    # create a config.json with your API key
  fredkit series get GDP                 # fetch GDP series metadata
  fredkit series obs GNPCA --limit 10    # fetch observations
  fredkit category tree 0 --depth 2      # walk the category hierarchy
  fredkit get release/dates 53           # any resource, any parameter`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves config with the global flags as the top layer.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Flags{
		APIKey:      globalFlags.APIKey,
		BaseURL:     globalFlags.BaseURL,
		FileType:    globalFlags.FileType,
		Format:      globalFlags.Format,
		Timeout:     globalFlags.Timeout,
		RetryMax:    globalFlags.RetryMax,
		Rate:        globalFlags.Rate,
		Concurrency: globalFlags.Concurrency,
		LogFormat:   globalFlags.LogFormat,
		DBPath:      globalFlags.DBPath,
	})
	if err != nil {
		return nil, err
	}
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug
	return cfg, nil
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE; the caller closes it.
func buildDeps() (*app.Deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, Version)
}

// buildAPIDeps is buildDeps for commands that talk to FRED and therefore
// need a valid API key.
func buildAPIDeps() (*app.Deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.New(cfg, Version)
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.APIKey, "api-key", "",
		"FRED API key (overrides env FRED_API_KEY and config.json)")
	pf.StringVar(&globalFlags.BaseURL, "base-url", "",
		"FRED API root (default: https://api.stlouisfed.org/fred)")
	pf.StringVar(&globalFlags.FileType, "file-type", "",
		"file_type parameter sent with every request (the parser expects xml)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|jsonl|csv|tsv|md|text (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m)")
	pf.IntVar(&globalFlags.RetryMax, "retry-max", 0,
		"retries on connection errors, 429 and 5xx; -1 disables (default: 3)")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max API requests per second; -1 disables the limiter (default: 5.0)")
	pf.IntVar(&globalFlags.Concurrency, "concurrency", 0,
		"max parallel requests for batch operations (default: 8)")
	pf.StringVar(&globalFlags.LogFormat, "log-format", "",
		"log output on stderr: text|json (default: text)")
	pf.StringVar(&globalFlags.DBPath, "db-path", "",
		"local store path (default: ~/.fredkit/fredkit.db)")
	pf.BoolVar(&globalFlags.Store, "store", false,
		"save successful results to the local store")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show timing stats after output and log at info level")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses (API key redacted)")
}
