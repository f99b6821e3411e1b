// Package crawl runs many FRED requests with bounded concurrency: batch
// fetches, the category tree walk and the series listing of a subtree.
package crawl

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/derickschaefer/fredkit/fred"
)

// DefaultConcurrency is used when Crawler.Concurrency is not positive.
const DefaultConcurrency = 8

// Getter is the part of *fred.API the crawler needs.
type Getter interface {
	Get(ctx context.Context, req fred.APIRequest, resp *fred.Response) bool
}

// Crawler fans requests out to a Getter.
type Crawler struct {
	API         Getter
	Concurrency int
}

// Outcome pairs a request with the response it produced.
type Outcome struct {
	Request  fred.APIRequest
	Response *fred.Response
}

// Good reports whether the request succeeded.
func (o Outcome) Good() bool { return o.Response != nil && o.Response.Good() }

// Warning describes a failed outcome, or "" for a good one.
func (o Outcome) Warning() string {
	if o.Good() {
		return ""
	}
	return fmt.Sprintf("%s: %s", o.Request.Path(), o.Response.Error)
}

// FetchAll sends every request and returns the outcomes in request order.
// Failures are recorded in the responses; FetchAll itself only stops
// early when ctx is done.
func (c *Crawler) FetchAll(ctx context.Context, reqs []fred.APIRequest) []Outcome {
	limit := c.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	out := make([]Outcome, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, req := range reqs {
		out[i] = Outcome{Request: req, Response: &fred.Response{}}
		resp := out[i].Response
		g.Go(func() error {
			c.API.Get(ctx, req, resp)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ─── Category tree ────────────────────────────────────────────────────────────

// Node is one category of a walked tree.
type Node struct {
	Category fred.Entity
	Children []*Node
}

// ID returns the category id.
func (n *Node) ID() string { return n.Category.Attribute("id") }

// IDs returns the ids of n and its descendants in depth-first order.
func (n *Node) IDs() []string {
	ids := []string{n.ID()}
	for _, c := range n.Children {
		ids = append(ids, c.IDs()...)
	}
	return ids
}

// Count returns the number of categories in the tree.
func (n *Node) Count() int {
	return len(n.IDs())
}

// Print writes the tree with box-drawing connectors, one category per line.
func (n *Node) Print(w io.Writer) {
	fmt.Fprintf(w, "[%s] %s\n", n.ID(), n.Category.Attribute("name"))
	n.printChildren(w, "")
}

func (n *Node) printChildren(w io.Writer, prefix string) {
	for i, c := range n.Children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(n.Children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fmt.Fprintf(w, "%s%s[%s] %s\n", prefix, connector, c.ID(), c.Category.Attribute("name"))
		c.printChildren(w, childPrefix)
	}
}

// Tree walks the category hierarchy below rootID, breadth first, down to
// maxDepth levels of children (maxDepth <= 0 means no limit). Each level is
// fetched concurrently. Children that fail to load are reported as
// warnings; a failure to load the root is an error.
func (c *Crawler) Tree(ctx context.Context, rootID string, maxDepth int) (*Node, []string, error) {
	var resp fred.Response
	if !c.API.Get(ctx, fred.Category(rootID), &resp) {
		return nil, nil, fmt.Errorf("category %s: %w", rootID, resp.Err())
	}
	if len(resp.Entities) == 0 {
		return nil, nil, fmt.Errorf("category %s not found", rootID)
	}

	root := &Node{Category: resp.Entities[0]}
	seen := map[string]bool{root.ID(): true}
	level := []*Node{root}
	var warnings []string

	for depth := 1; len(level) > 0 && (maxDepth <= 0 || depth <= maxDepth); depth++ {
		if err := ctx.Err(); err != nil {
			return root, warnings, err
		}
		reqs := make([]fred.APIRequest, len(level))
		for i, n := range level {
			reqs[i] = fred.CategoryChildren(n.ID())
		}

		var next []*Node
		for i, o := range c.FetchAll(ctx, reqs) {
			if !o.Good() {
				warnings = append(warnings, o.Warning())
				continue
			}
			for _, e := range o.Response.Entities {
				id := e.Attribute("id")
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true
				child := &Node{Category: e}
				level[i].Children = append(level[i].Children, child)
				next = append(next, child)
			}
		}
		level = next
	}
	return root, warnings, nil
}

// CategorySeries lists the series of every category in ids, keeping the
// first occurrence of each series id.
func (c *Crawler) CategorySeries(ctx context.Context, ids []string) ([]fred.Entity, []string) {
	reqs := make([]fred.APIRequest, len(ids))
	for i, id := range ids {
		reqs[i] = fred.CategorySeries(id)
	}

	var series []fred.Entity
	var warnings []string
	seen := make(map[string]bool)
	for _, o := range c.FetchAll(ctx, reqs) {
		if !o.Good() {
			warnings = append(warnings, o.Warning())
			continue
		}
		for _, e := range o.Response.Entities {
			id := e.Attribute("id")
			if seen[id] {
				continue
			}
			seen[id] = true
			series = append(series, e)
		}
	}
	return series, warnings
}
