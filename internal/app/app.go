// Package app wires together configuration, logging, the FRED API and the
// local store into a single Deps struct that commands receive at runtime.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/fred/httpclient"
	"github.com/derickschaefer/fredkit/fred/logging"
	"github.com/derickschaefer/fredkit/fred/xmlparser"
	"github.com/derickschaefer/fredkit/internal/config"
	"github.com/derickschaefer/fredkit/internal/crawl"
	"github.com/derickschaefer/fredkit/internal/store"
)

// Deps holds all runtime dependencies injected into command Run functions.
// The store is opened on first use; call Close when the command is done.
type Deps struct {
	Config  *config.Config
	Logger  logging.Logger
	Client  *httpclient.Client
	API     *fred.API
	Crawler *crawl.Crawler

	store   *store.Store
	closers []func() error
}

// New builds a Deps from resolved config. version ends up in the
// User-Agent header unless the config sets one.
func New(cfg *config.Config, version string) (*Deps, error) {
	logger, closeLog, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	log := logging.NewLog(logger)

	ua := cfg.UserAgent
	if ua == "" {
		ua = "fredkit/" + version
	}
	client := httpclient.New(httpclient.Options{
		Timeout:      cfg.Timeout,
		RetryMax:     cfg.RetryMax,
		RetryWaitMin: cfg.RetryWait,
		Rate:         cfg.Rate,
		UserAgent:    ua,
		Log:          log,
	})

	debugDepth := 0
	if cfg.Debug {
		debugDepth = 2
	}
	api := fred.New(fred.Config{
		BaseURI:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		FileType:   cfg.FileType,
		Executor:   client,
		Parser:     xmlparser.New(),
		Logger:     logger,
		DebugDepth: debugDepth,
	})

	d := &Deps{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		API:     api,
		Crawler: &crawl.Crawler{API: api, Concurrency: cfg.Concurrency},
	}
	d.closers = append(d.closers, closeLog, func() error {
		client.CloseIdleConnections()
		return nil
	})
	return d, nil
}

// NewLogger builds the logger selected by cfg.LogFormat: slog text lines
// or zap JSON, both on stderr. The threshold comes from cfg.LogLevel (warn
// when empty, an error when unknown) and is lowered by --verbose (info) and --debug (debug); --quiet keeps only
// errors.
func NewLogger(cfg *config.Config) (logging.Logger, func() error, error) {
	threshold := logging.LevelWarn
	if cfg.LogLevel != "" {
		var err error
		if threshold, err = logging.ParseLevel(cfg.LogLevel); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", config.EnvLogLevel, err)
		}
	}
	switch {
	case cfg.Debug:
		threshold = logging.LevelDebug
	case cfg.Verbose:
		threshold = logging.LevelInfo
	case cfg.Quiet:
		threshold = logging.LevelError
	}

	switch cfg.LogFormat {
	case "json":
		z, err := logging.NewZap(logging.ZapConfig{Level: threshold.String()})
		if err != nil {
			return nil, nil, fmt.Errorf("building zap logger: %w", err)
		}
		// Sync on stderr fails with EINVAL on some platforms; nothing to report.
		return z, func() error { _ = z.Sync(); return nil }, nil
	case "", "text":
		s := logging.NewSimpleLogger()
		s.SetOutput(os.Stderr)
		logging.SetThreshold(s, threshold)
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.LogFormat)
}

// RequireStore opens the local store on first call and returns it.
func (d *Deps) RequireStore() (*store.Store, error) {
	if d.store != nil {
		return d.store, nil
	}
	if d.Config.DBPath == "" {
		return nil, errors.New("no database path configured (set db_path or FREDKIT_DB_PATH)")
	}
	s, err := store.Open(d.Config.DBPath)
	if err != nil {
		return nil, err
	}
	d.store = s
	return s, nil
}

// Close releases the store, idle connections and log files.
func (d *Deps) Close() error {
	var errs []error
	if d.store != nil {
		errs = append(errs, d.store.Close())
		d.store = nil
	}
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	d.closers = nil
	return errors.Join(errs...)
}
