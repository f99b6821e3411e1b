// Package fred implements a typed client for the Federal Reserve Bank of
// St. Louis (FRED) API. Requests are built from per-resource request types,
// executed through a pluggable Executor, decoded by a pluggable Parser and
// normalized into a generic Response of entities.
package fred

import (
	"sort"
	"strings"
)

// Param is a single request parameter.
type Param struct {
	Key   string
	Value string
}

// Params is a string-to-string parameter bag with case-insensitive keys.
// Setting an existing key replaces its value; the key spelling of the last
// write is kept. The zero value is an empty bag ready to use.
type Params struct {
	m map[string]Param // keyed by lower-cased key
}

// With sets key to value and returns the bag for chaining.
func (p *Params) With(key, value string) *Params {
	if p.m == nil {
		p.m = make(map[string]Param)
	}
	p.m[strings.ToLower(key)] = Param{Key: key, Value: value}
	return p
}

// Get returns the value stored for key, or "" if there is none.
func (p Params) Get(key string) string {
	return p.m[strings.ToLower(key)].Value
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p.m[strings.ToLower(key)]
	return ok
}

// Erase removes key. Missing keys are ignored.
func (p *Params) Erase(key string) {
	delete(p.m, strings.ToLower(key))
}

// Clear removes all parameters.
func (p *Params) Clear() {
	p.m = nil
}

// Len returns the number of stored parameters.
func (p Params) Len() int {
	return len(p.m)
}

// All returns the parameters ordered by case-folded key.
func (p Params) All() []Param {
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Param, len(keys))
	for i, k := range keys {
		out[i] = p.m[k]
	}
	return out
}

// Clone returns an independent copy of the bag.
func (p Params) Clone() Params {
	var c Params
	if len(p.m) == 0 {
		return c
	}
	c.m = make(map[string]Param, len(p.m))
	for k, v := range p.m {
		c.m[k] = v
	}
	return c
}

// String formats the bag as "key=value|" pairs in iteration order.
func (p Params) String() string {
	var b strings.Builder
	for _, kv := range p.All() {
		b.WriteString(kv.Key)
		b.WriteByte('=')
		b.WriteString(kv.Value)
		b.WriteByte('|')
	}
	return b.String()
}
