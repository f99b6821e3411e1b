package fred

import "io"

// Parser decodes an XML document into resp: the root element becomes
// resp.Result and each child element one entry of resp.Entities, in
// document order. On error resp must be left untouched.
type Parser interface {
	Parse(r io.Reader, resp *Response) error
}
