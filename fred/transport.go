package fred

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
)

// HTTPStatusNone is the status of an HTTPResponse that never received an
// answer from the server.
const HTTPStatusNone = 0

// HTTPRequest is the wire form of an APIRequest: method, absolute URI and
// the full parameter set including api_key.
type HTTPRequest struct {
	Method string
	URI    string
	Params Params
}

// NewHTTPRequest returns a GET request for uri with params.
func NewHTTPRequest(uri string, params Params) *HTTPRequest {
	return &HTTPRequest{Method: http.MethodGet, URI: uri, Params: params}
}

// IsHTTPS reports whether the URI uses the https scheme.
func (r *HTTPRequest) IsHTTPS() bool {
	uri := strings.TrimSpace(r.URI)
	return len(uri) >= 6 && strings.EqualFold(uri[:6], "https:")
}

// URL returns URI followed by the query string, with every key and value
// passed through encode. Parameters appear in ascending key order.
func (r *HTTPRequest) URL(encode func(string) string) string {
	var b strings.Builder
	b.WriteString(r.URI)
	for i, p := range r.Params.All() {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(encode(p.Key))
		b.WriteByte('=')
		b.WriteString(encode(p.Value))
	}
	return b.String()
}

// String formats the request as "METHOD URI|key=value|..." with the API
// key redacted.
func (r *HTTPRequest) String() string {
	var b strings.Builder
	b.WriteString(r.Method)
	b.WriteByte(' ')
	b.WriteString(r.URI)
	if r.Params.Len() == 0 {
		return b.String()
	}
	b.WriteByte('|')
	for _, p := range r.Params.All() {
		v := p.Value
		if strings.EqualFold(p.Key, ParamAPIKey) && v != "" {
			v = "REDACTED"
		}
		b.WriteString(p.Key + "=" + v + "|")
	}
	return b.String()
}

// HTTPResponse is what an Executor writes back: status code, content type
// and body.
type HTTPResponse struct {
	Status      int
	ContentType string
	Content     bytes.Buffer
}

// Clear resets the response to HTTPStatusNone with no content.
func (r *HTTPResponse) Clear() {
	r.Status = HTTPStatusNone
	r.ContentType = ""
	r.Content.Reset()
}

// OK reports whether the server answered 200.
func (r *HTTPResponse) OK() bool {
	return r.Status == http.StatusOK
}

// IsXML reports whether the content type names an XML document
// (text/xml, application/xml or a +xml subtype).
func (r *HTTPResponse) IsXML() bool {
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.Contains(strings.ToLower(r.ContentType), "text/xml")
	}
	return mediaType == "text/xml" ||
		mediaType == "application/xml" ||
		strings.HasSuffix(mediaType, "+xml")
}

// Reader returns a reader over the content that leaves the buffer intact.
func (r *HTTPResponse) Reader() io.Reader {
	return bytes.NewReader(r.Content.Bytes())
}

// Executor performs HTTP requests for the API facade. Execute fills resp
// and may retry internally. When no answer was received resp.Status stays
// HTTPStatusNone; the returned error only describes why.
type Executor interface {
	Execute(ctx context.Context, req *HTTPRequest, resp *HTTPResponse) error
	EncodeURI(raw string) string
}
