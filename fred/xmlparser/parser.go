// Package xmlparser is the production fred.Parser, built on the
// antchfx/xmlquery DOM.
package xmlparser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/derickschaefer/fredkit/fred"
)

// ErrNoRoot is returned for documents without a root element.
var ErrNoRoot = errors.New("xml document has no root element")

// Parser decodes FRED XML documents. The zero value is ready to use and
// safe for concurrent use.
type Parser struct{}

// New returns a Parser.
func New() *Parser { return &Parser{} }

// Parse reads one XML document from r. The root element becomes
// resp.Result and each of its child elements, in document order, an
// entry of resp.Entities. An element's value is its first non-blank text
// or CDATA child. resp is only written when the whole document parsed.
func (p *Parser) Parse(r io.Reader, resp *fred.Response) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading xml: %w", err)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		if !hasElement(data) {
			return ErrNoRoot
		}
		return fmt.Errorf("parsing xml: %w", err)
	}

	root := firstElement(doc)
	if root == nil {
		return ErrNoRoot
	}

	result := entity(root)
	var entities []fred.Entity
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			entities = append(entities, entity(n))
		}
	}

	resp.Result = result
	resp.Entities = entities
	return nil
}

// hasElement reports whether data starts an element before it ends.
// Malformed input counts as having one so its syntax error is kept.
func hasElement(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return !errors.Is(err, io.EOF)
		}
		if _, ok := tok.(xml.StartElement); ok {
			return true
		}
	}
}

func firstElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func entity(n *xmlquery.Node) fred.Entity {
	e := fred.Entity{Name: n.Data, Value: childValue(n)}
	for _, a := range n.Attr {
		e.SetAttribute(a.Name.Local, a.Value)
	}
	return e
}

func childValue(n *xmlquery.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.TextNode && c.Type != xmlquery.CharDataNode {
			continue
		}
		if strings.TrimSpace(c.Data) != "" {
			return c.Data
		}
	}
	return ""
}
