// Package httpclient is the production fred.Executor. Requests go through
// a shared rate limiter and hashicorp/go-retryablehttp, which retries
// connection failures, 429 and 5xx answers.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/derickschaefer/fredkit/fred"
	"github.com/derickschaefer/fredkit/fred/logging"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 5 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
	DefaultRate         = 5.0 // requests per second
	DefaultUserAgent    = "fredkit"
)

// Options configures a Client. Zero fields take the defaults above;
// set RetryMax to -1 to disable retries and Rate to -1 to disable the
// limiter.
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Rate         float64
	UserAgent    string
	Log          *logging.Log
}

// Client executes fred HTTP requests. It is safe for concurrent use.
type Client struct {
	rc        *retryablehttp.Client
	limiter   *rate.Limiter
	userAgent string
	log       *logging.Log
}

// New creates a Client from opts.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch {
	case opts.RetryMax < 0:
		opts.RetryMax = 0
	case opts.RetryMax == 0:
		opts.RetryMax = DefaultRetryMax
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = DefaultRetryWaitMin
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = max(DefaultRetryWaitMax, opts.RetryWaitMin)
	}
	if opts.Rate == 0 {
		opts.Rate = DefaultRate
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = opts.RetryWaitMin
	rc.RetryWaitMax = opts.RetryWaitMax
	rc.CheckRetry = retryablehttp.DefaultRetryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = nil
	if opts.Log != nil {
		rc.Logger = leveledLog{opts.Log}
	}

	c := &Client{
		rc:        rc,
		userAgent: opts.UserAgent,
		log:       opts.Log,
	}
	if opts.Rate > 0 {
		burst := int(opts.Rate)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}
	return c
}

// Execute sends req and fills resp. When the exchange fails before an
// answer arrives resp keeps fred.HTTPStatusNone and an empty body. When
// retries are exhausted on 429 or 5xx the last answer is passed through.
func (c *Client) Execute(ctx context.Context, req *fred.HTTPRequest, resp *fred.HTTPResponse) error {
	resp.Clear()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	uri := req.URL(c.EncodeURI)
	c.log.Debug("http:uri:%s", redact(uri))

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	r, err := retryablehttp.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	r.Header.Set("User-Agent", c.userAgent)

	// With the passthrough handler an exhausted retry returns both the
	// last answer and the policy error; the answer wins.
	res, err := c.rc.Do(r)
	if res == nil {
		if err == nil {
			err = fmt.Errorf("no response from %s", redact(uri))
		}
		err = &requestError{err}
		c.log.Debug("http:request failed: %v", err)
		return err
	}
	defer res.Body.Close()
	if err != nil {
		c.log.Debug("http:retries exhausted: %s", redact(err.Error()))
	}

	if _, err := io.Copy(&resp.Content, res.Body); err != nil {
		resp.Content.Reset()
		return fmt.Errorf("reading body: %w", err)
	}
	resp.Status = res.StatusCode
	resp.ContentType = res.Header.Get("Content-Type")

	c.log.Debug("http:response:%d content-type:%s bytes:%d", resp.Status, resp.ContentType, resp.Content.Len())
	return nil
}

// EncodeURI percent-encodes raw for use in a query string. Unreserved
// characters (letters, digits, '-', '_', '.', '~') are kept; space
// becomes %20.
func (c *Client) EncodeURI(raw string) string {
	return strings.ReplaceAll(url.QueryEscape(raw), "+", "%20")
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.rc.HTTPClient.CloseIdleConnections()
}

var apiKeyParam = regexp.MustCompile(`(?i)(api_key=)[^&\s]*`)

func redact(s string) string {
	return apiKeyParam.ReplaceAllString(s, "${1}REDACTED")
}

// requestError hides the API key that net/http errors carry in the URL.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return "http: " + redact(e.err.Error()) }
func (e *requestError) Unwrap() error { return e.err }

// ─── Logging ──────────────────────────────────────────────────────────────────

// leveledLog forwards retryablehttp's messages to the fred log at DEBUG.
type leveledLog struct {
	log *logging.Log
}

func (l leveledLog) Error(msg string, kv ...interface{}) { l.log.Debug("retry:error:%s%s", msg, pairs(kv)) }
func (l leveledLog) Info(msg string, kv ...interface{})  { l.log.Debug("retry:info:%s%s", msg, pairs(kv)) }
func (l leveledLog) Debug(msg string, kv ...interface{}) { l.log.Debug("retry:debug:%s%s", msg, pairs(kv)) }
func (l leveledLog) Warn(msg string, kv ...interface{})  { l.log.Debug("retry:warn:%s%s", msg, pairs(kv)) }

func pairs(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%s", kv[i], redact(fmt.Sprint(kv[i+1])))
	}
	return b.String()
}
