package fred

import (
	"fmt"
	"sort"
	"strings"
)

// Entity is one XML element of a response: its tag, its text and its
// attributes. The shape is the same for every resource.
type Entity struct {
	Name       string            `json:"name"`
	Value      string            `json:"value,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Attribute returns the attribute named key, or "".
func (e Entity) Attribute(key string) string {
	return e.Attributes[key]
}

// AttributeNames returns the attribute names in sorted order.
func (e Entity) AttributeNames() []string {
	names := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetAttribute stores an attribute, allocating the map on first use.
func (e *Entity) SetAttribute(key, value string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[key] = value
}

func (e *Entity) Clear() {
	*e = Entity{}
}

// String formats e as "name:{key=value|...|value}".
func (e Entity) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteString(":{")
	for _, k := range e.AttributeNames() {
		fmt.Fprintf(&b, "%s=%s|", k, e.Attributes[k])
	}
	b.WriteString(e.Value)
	b.WriteByte('}')
	return b.String()
}

// Response is the normalized result of one API call. Result is the root
// element of the document, Entities its child elements in document order.
type Response struct {
	Result   Entity   `json:"result"`
	Entities []Entity `json:"entities"`
	Error    Error    `json:"error"`
}

// Good reports whether the call succeeded.
func (r *Response) Good() bool {
	return r.Error.Status == StatusSuccess
}

// Err returns nil for a good response, otherwise an error wrapping one of
// ErrDomain, ErrInternal, ErrTransport or ErrParse.
func (r *Response) Err() error {
	return r.Error.Err()
}

func (r *Response) SetError(e Error) {
	r.Error = e
}

// SetErrorFromResult classifies the parsed result. A root named "error"
// is an API error carrying the code and message attributes; any other
// root is a success. Without a root the response stays an internal error.
func (r *Response) SetErrorFromResult() {
	r.Error.Clear()

	switch {
	case r.Result.Name == "error":
		r.Error.Status = StatusDomainError
		r.Error.Code = r.Result.Attribute("code")
		r.Error.Message = r.Result.Attribute("message")
	case r.Result.Name != "":
		r.Error.Status = StatusSuccess
	}
}

// Clear resets the response to its initial state.
func (r *Response) Clear() {
	r.Error.Clear()
	r.Result.Clear()
	r.Entities = nil
}

// String formats the response as the result followed by its entities,
// one per line.
func (r *Response) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{%s\n", r.Result)
	fmt.Fprintf(&b, "%d:[\n", len(r.Entities))
	for _, e := range r.Entities {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	b.WriteString("]\n}")
	return b.String()
}
