package rdf

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Graph is an in-memory triple set with namespace bindings. It
// preserves first-insertion order and is not safe for concurrent use;
// the distiller builds one graph per document on a single goroutine.
type Graph struct {
	triples  []Triple
	seen     map[Triple]struct{}
	bindings map[string]IRI
	prefixes []string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen:     make(map[Triple]struct{}),
		bindings: make(map[string]IRI),
	}
}

// Add inserts a triple. The graph has set semantics, so adding a triple
// twice is a no-op. Triples with a missing subject, predicate, or
// object are silently dropped, so callers can pass resolution results
// straight through without checking for absence.
func (g *Graph) Add(s, p, o Term) {
	if s == nil || p == nil || o == nil {
		return
	}
	t := Triple{Subject: s, Predicate: p, Object: o}
	if _, ok := g.seen[t]; ok {
		return
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)
}

// Bind associates a namespace prefix with an IRI for output. The first
// binding of a prefix wins; later bindings for the same prefix are
// ignored.
func (g *Graph) Bind(prefix string, ns IRI) {
	if _, ok := g.bindings[prefix]; ok {
		return
	}
	g.bindings[prefix] = ns
	g.prefixes = append(g.prefixes, prefix)
}

// Merge adds every triple and binding of other into g.
func (g *Graph) Merge(other *Graph) {
	for _, t := range other.Triples() {
		g.Add(t.Subject, t.Predicate, t.Object)
	}
	for _, p := range other.Prefixes() {
		if ns, ok := other.Namespace(p); ok {
			g.Bind(p, ns)
		}
	}
}

// Namespace reports the IRI bound to prefix, if any.
func (g *Graph) Namespace(prefix string) (IRI, bool) {
	ns, ok := g.bindings[prefix]
	return ns, ok
}

// Prefixes returns the bound prefixes in binding order.
func (g *Graph) Prefixes() []string {
	out := make([]string, len(g.prefixes))
	copy(out, g.prefixes)
	return out
}

// Triples returns the triples in insertion order. The returned slice is
// shared with the graph; callers must not modify it.
func (g *Graph) Triples() []Triple {
	return g.triples
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Has reports whether a triple matching the pattern exists. A nil
// component is a wildcard.
func (g *Graph) Has(s, p, o Term) bool {
	for _, t := range g.triples {
		if (s == nil || t.Subject == s) && (p == nil || t.Predicate == p) && (o == nil || t.Object == o) {
			return true
		}
	}
	return false
}

// Objects returns, in insertion order, the objects of all triples with
// the given subject and predicate.
func (g *Graph) Objects(s, p Term) []Term {
	var out []Term
	for _, t := range g.triples {
		if t.Subject == s && t.Predicate == p {
			out = append(out, t.Object)
		}
	}
	return out
}

// NewBlankNode allocates a fresh blank node with a uuid-derived label,
// so labels stay unique even when graphs from separate documents merge.
func (g *Graph) NewBlankNode() BlankNode {
	return BlankNode("N" + strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// String renders the graph as N-Triples-style lines, preceded by the
// namespace bindings as comments, sorted for stable output.
func (g *Graph) String() string {
	var b strings.Builder
	prefixes := g.Prefixes()
	sort.Strings(prefixes)
	for _, p := range prefixes {
		b.WriteString("# @prefix ")
		b.WriteString(p)
		b.WriteString(": <")
		b.WriteString(string(g.bindings[p]))
		b.WriteString("> .\n")
	}
	for _, t := range g.triples {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
