package fred

import (
	"context"
	"strings"

	"github.com/derickschaefer/fredkit/fred/logging"
)

// DefaultBaseURI is the FRED API root.
const DefaultBaseURI = "https://api.stlouisfed.org/fred"

// Config holds everything an API needs. Executor and Parser are required
// for Get to do anything; the rest have defaults.
type Config struct {
	BaseURI  string // DefaultBaseURI when empty
	APIKey   string
	FileType string // sent as file_type when set, e.g. "xml"

	Executor Executor
	Parser   Parser

	Logger     logging.Logger // logging.Nop when nil
	DebugDepth int            // 2 includes response bodies
}

// API sends typed requests to FRED and normalizes the answers. It holds
// only configuration and is safe for concurrent use when its Executor and
// Parser are.
type API struct {
	baseURI  string
	apiKey   string
	fileType string
	executor Executor
	parser   Parser
	log      *logging.Log
}

// New returns an API configured by cfg.
func New(cfg Config) *API {
	base := strings.TrimRight(cfg.BaseURI, "/")
	if base == "" {
		base = DefaultBaseURI
	}
	return &API{
		baseURI:  base,
		apiKey:   cfg.APIKey,
		fileType: cfg.FileType,
		executor: cfg.Executor,
		parser:   cfg.Parser,
		log:      logging.NewLog(cfg.Logger).WithDebugDepth(cfg.DebugDepth),
	}
}

// BaseURI returns the API root requests are sent to.
func (a *API) BaseURI() string { return a.baseURI }

// Log returns the logging facility of the API.
func (a *API) Log() *logging.Log { return a.log }

// Get sends req and writes the outcome into resp, which is cleared first.
// It reports resp.Good(). Failures are classified in resp.Error:
//
//   - StatusInternalError: no Executor or Parser configured
//   - StatusTransportFailure: the answer was not XML (including no answer)
//   - StatusParseFailure: the XML could not be decoded
//   - StatusDomainError: FRED answered with an error document
func (a *API) Get(ctx context.Context, req APIRequest, resp *Response) bool {
	resp.Clear()

	if a.executor == nil {
		resp.SetError(internalError("Api Executor is not set."))
		a.log.Error("%s", resp.Error.Message)
		return resp.Good()
	}
	if a.parser == nil {
		resp.SetError(internalError("Api Parser is not set."))
		a.log.Error("%s", resp.Error.Message)
		return resp.Good()
	}

	a.log.Debug("request:%s?%s", req.Path(), paramsString(req))

	params := req.Params()
	params.With(ParamAPIKey, a.apiKey)
	if a.fileType != "" {
		params.With(ParamFileType, a.fileType)
	}
	httpReq := NewHTTPRequest(a.baseURI+"/"+req.Path(), params)

	a.log.Debug("http-request:%s", httpReq)

	var httpResp HTTPResponse
	if err := a.executor.Execute(ctx, httpReq, &httpResp); err != nil {
		a.log.Debug("http-error:%v", err)
	}

	if !httpResp.IsXML() {
		resp.SetError(httpFailure(httpReq, &httpResp))
		a.log.Error("%s", resp.Error.Message)
		return resp.Good()
	}

	a.log.Debug("http-response:%d content-type:%s", httpResp.Status, httpResp.ContentType)
	a.log.DebugN(2, "content:{\n%s\n}", httpResp.Content.String())

	if err := a.parser.Parse(httpResp.Reader(), resp); err != nil {
		resp.SetError(parseFailure(req, httpResp.Content.String(), err))
		a.log.Error("%s", resp.Error.Message)
		return resp.Good()
	}

	resp.SetErrorFromResult()
	return resp.Good()
}

// Fetch is Get with a fresh Response and the outcome as a Go error.
// The response is returned even on failure so callers can inspect it.
func (a *API) Fetch(ctx context.Context, req APIRequest) (*Response, error) {
	resp := &Response{}
	a.Get(ctx, req, resp)
	return resp, resp.Err()
}
