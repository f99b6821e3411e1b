package fred

import (
	"errors"
	"fmt"
)

// Status classifies the outcome of an API call.
type Status int

// The zero value is StatusInternalError so that an unclassified response
// is never good.
const (
	StatusInternalError    Status = iota // misconfiguration, or nothing was classified yet
	StatusSuccess
	StatusDomainError      // the API answered with an error document
	StatusTransportFailure // no usable HTTP answer
	StatusParseFailure     // the answer was not a valid XML document
)

var statusNames = [...]string{
	StatusInternalError:    "internal-error",
	StatusSuccess:          "success",
	StatusDomainError:      "error",
	StatusTransportFailure: "fail-http",
	StatusParseFailure:     "fail-parse",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// Sentinel errors returned by Response.Err, one per failure status.
var (
	ErrDomain    = errors.New("fred: api error")
	ErrInternal  = errors.New("fred: internal error")
	ErrTransport = errors.New("fred: bad http response")
	ErrParse     = errors.New("fred: bad xml response")
)

// Error is the classified outcome of a call. The zero value, like a cleared
// Error, is an internal error with no code or message.
type Error struct {
	Status  Status `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Clear resets e to an unclassified internal error.
func (e *Error) Clear() {
	*e = Error{Status: StatusInternalError}
}

// OK reports whether the status is StatusSuccess.
func (e Error) OK() bool { return e.Status == StatusSuccess }

// String formats e as "code:message status:name".
func (e Error) String() string {
	return fmt.Sprintf("%s:%s status:%s", e.Code, e.Message, e.Status)
}

// Err converts e into a Go error wrapping the sentinel of its status, or
// nil on success.
func (e Error) Err() error {
	var sentinel error
	switch e.Status {
	case StatusSuccess:
		return nil
	case StatusDomainError:
		sentinel = ErrDomain
	case StatusTransportFailure:
		sentinel = ErrTransport
	case StatusParseFailure:
		sentinel = ErrParse
	default:
		sentinel = ErrInternal
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Errorf("%w: %s: %s", sentinel, e.Code, e.Message)
	case e.Message != "":
		return fmt.Errorf("%w: %s", sentinel, e.Message)
	case e.Code != "":
		return fmt.Errorf("%w: %s", sentinel, e.Code)
	}
	return sentinel
}

// ─── Constructors ─────────────────────────────────────────────────────────────

func internalError(reason string) Error {
	return Error{
		Status:  StatusInternalError,
		Message: "fredkit internal error. " + reason,
	}
}

func httpFailure(req *HTTPRequest, resp *HTTPResponse) Error {
	return Error{
		Status: StatusTransportFailure,
		Code:   fmt.Sprintf("%d", resp.Status),
		Message: fmt.Sprintf("Bad Response. Could not connect to API URI or received unexpected content type."+
			" http-status:%d content-type:%s http-request:%s", resp.Status, resp.ContentType, req),
	}
}

func parseFailure(req APIRequest, content string, cause error) Error {
	msg := fmt.Sprintf("Bad Response. XML response from API is invalid or has unexpected XML schema."+
		" request:%s?%s content-begin:{\n%s\n}:content-end", req.Path(), paramsString(req), content)
	if cause != nil {
		msg += " cause:" + cause.Error()
	}
	return Error{Status: StatusParseFailure, Message: msg}
}

func paramsString(req APIRequest) string {
	p := req.Params()
	return p.String()
}
