// Package fredtest provides deterministic Executor, Parser and Logger
// implementations for testing code built on package fred.
package fredtest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/fred/logging"
)

// Canned FRED documents.
const (
	SeriesXML = `<?xml version="1.0" encoding="utf-8" ?>
<seriess realtime_start="2013-08-14" realtime_end="2013-08-14">
  <series id="DEXUSEU" realtime_start="2013-08-14" realtime_end="2013-08-14" title="U.S. / Euro Foreign Exchange Rate" observation_start="1999-01-04" observation_end="2013-08-09" frequency="Daily" frequency_short="D" units="U.S. Dollars to One Euro" units_short="U.S. $ to 1 Euro" seasonal_adjustment="Not Seasonally Adjusted" seasonal_adjustment_short="NSA" last_updated="2013-08-12 08:56:06-05" popularity="77" notes="Noon buying rates in New York City for cable transfers payable in foreign currencies."/>
</seriess>`

	ObservationsXML = `<?xml version="1.0" encoding="utf-8" ?>
<observations realtime_start="2013-08-14" realtime_end="2013-08-14" observation_start="1776-07-04" observation_end="9999-12-31" units="lin" output_type="1" file_type="xml" order_by="observation_date" sort_order="asc" count="3" offset="0" limit="100000">
  <observation realtime_start="2013-08-14" realtime_end="2013-08-14" date="1929-01-01" value="1065.9"/>
  <observation realtime_start="2013-08-14" realtime_end="2013-08-14" date="1930-01-01" value="975.5"/>
  <observation realtime_start="2013-08-14" realtime_end="2013-08-14" date="1931-01-01" value="."/>
</observations>`

	CategoryChildrenXML = `<?xml version="1.0" encoding="utf-8" ?>
<categories>
  <category id="32991" name="Money, Banking, &amp; Finance" parent_id="0"/>
  <category id="10" name="Population, Employment, &amp; Labor Markets" parent_id="0"/>
  <category id="32992" name="National Accounts" parent_id="0"/>
</categories>`

	ErrorXML = `<?xml version="1.0" encoding="utf-8" ?>
<error code="400" message="Bad Request.  The value for variable api_key is not registered.  Read https://research.stlouisfed.org/docs/api/api_key.html for more information."/>`
)

// ─── Executor ─────────────────────────────────────────────────────────────────

// ExecuteMode selects what MockExecutor answers.
type ExecuteMode int

const (
	// ExecuteOK answers 200 text/xml with Content.
	ExecuteOK ExecuteMode = iota
	// ExecuteError answers 400 text/xml with Content, as FRED does for API errors.
	ExecuteError
	// ExecuteFail answers nothing: no status, no content type.
	ExecuteFail
	// ExecuteBadContentType answers 200 with ContentType and Content.
	ExecuteBadContentType
)

// MockExecutor is a fred.Executor that never touches the network. It
// records every request it receives.
type MockExecutor struct {
	Mode        ExecuteMode
	Content     string
	ContentType string // used by ExecuteBadContentType; "text/html" when empty

	mu       sync.Mutex
	requests []*fred.HTTPRequest
}

// NewMockExecutor returns an executor answering with content in mode.
func NewMockExecutor(mode ExecuteMode, content string) *MockExecutor {
	return &MockExecutor{Mode: mode, Content: content}
}

// WithContentFile loads Content from a file.
func (m *MockExecutor) WithContentFile(path string) (*MockExecutor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	m.Content = string(b)
	return m, nil
}

func (m *MockExecutor) Execute(ctx context.Context, req *fred.HTTPRequest, resp *fred.HTTPResponse) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	resp.Clear()
	switch m.Mode {
	case ExecuteOK:
		resp.Status = http.StatusOK
		resp.ContentType = "text/xml; charset=UTF-8"
		resp.Content.WriteString(m.Content)
	case ExecuteError:
		resp.Status = http.StatusBadRequest
		resp.ContentType = "text/xml; charset=UTF-8"
		resp.Content.WriteString(m.Content)
	case ExecuteBadContentType:
		resp.Status = http.StatusOK
		resp.ContentType = m.ContentType
		if resp.ContentType == "" {
			resp.ContentType = "text/html"
		}
		resp.Content.WriteString(m.Content)
	case ExecuteFail:
		return errConnect
	}
	return nil
}

// EncodeURI returns raw unchanged.
func (m *MockExecutor) EncodeURI(raw string) string { return raw }

// Requests returns the requests received so far.
func (m *MockExecutor) Requests() []*fred.HTTPRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*fred.HTTPRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (m *MockExecutor) LastRequest() *fred.HTTPRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

var errConnect = errors.New("mock: could not connect")

// ─── Parser ───────────────────────────────────────────────────────────────────

// ParseMode selects what MockParser produces.
type ParseMode int

const (
	// ParseOK yields a "seriess" result with one series entity id=TEST-ID.
	ParseOK ParseMode = iota
	// ParseError yields an "error" result with code 400.
	ParseError
	// ParseFail fails without touching the response.
	ParseFail
	// ParseEmpty succeeds with an empty result name.
	ParseEmpty
)

// MockParser is a fred.Parser that ignores its input.
type MockParser struct {
	Mode ParseMode
}

func NewMockParser(mode ParseMode) *MockParser {
	return &MockParser{Mode: mode}
}

func (p *MockParser) Parse(r io.Reader, resp *fred.Response) error {
	switch p.Mode {
	case ParseOK:
		resp.Result = fred.Entity{Name: "seriess"}
		e := fred.Entity{Name: "series"}
		e.SetAttribute("id", "TEST-ID")
		resp.Entities = []fred.Entity{e}
	case ParseError:
		resp.Result = fred.Entity{Name: "error"}
		resp.Result.SetAttribute("code", "400")
		resp.Result.SetAttribute("message", "Bad Request.  Error description.")
		resp.Entities = nil
	case ParseFail:
		return io.ErrUnexpectedEOF
	case ParseEmpty:
		resp.Result = fred.Entity{}
		resp.Entities = nil
	}
	return nil
}

// ─── Logger ───────────────────────────────────────────────────────────────────

// Entry is one message recorded by Logger.
type Entry struct {
	Level   logging.Level
	Message string
	Context logging.Context
}

// Logger records messages of enabled levels. All levels start disabled.
type Logger struct {
	mu      sync.Mutex
	on      map[logging.Level]bool
	entries []Entry
}

func NewLogger() *Logger {
	return &Logger{on: make(map[logging.Level]bool)}
}

// EnableAll switches every level on.
func (l *Logger) EnableAll() *Logger {
	for _, lvl := range []logging.Level{logging.LevelInfo, logging.LevelWarn, logging.LevelError, logging.LevelFatal, logging.LevelDebug} {
		l.EnableLevel(lvl)
	}
	return l
}

func (l *Logger) LogMessage(level logging.Level, message string, ctx logging.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on[level] {
		return
	}
	l.entries = append(l.entries, Entry{Level: level, Message: message, Context: ctx})
}

func (l *Logger) LevelEnabled(level logging.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on[level]
}

func (l *Logger) EnableLevel(level logging.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.on[level]
	l.on[level] = true
	return prev
}

func (l *Logger) DisableLevel(level logging.Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.on[level]
	l.on[level] = false
	return prev
}

// Entries returns the recorded messages of level, oldest first.
func (l *Logger) Entries(level logging.Level) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns the recorded message texts of level.
func (l *Logger) Messages(level logging.Level) []string {
	var out []string
	for _, e := range l.Entries(level) {
		out = append(out, e.Message)
	}
	return out
}

// Reset drops all recorded messages.
func (l *Logger) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
