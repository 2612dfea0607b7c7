package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddDropsIncompleteTriples(t *testing.T) {
	g := NewGraph()
	s := IRI("http://example.org/s")

	g.Add(s, RDFType, IRI("http://example.org/T"))
	g.Add(nil, RDFType, IRI("http://example.org/T"))
	g.Add(s, nil, IRI("http://example.org/T"))
	g.Add(s, RDFType, nil)

	assert.Equal(t, 1, g.Len())
}

func TestGraphAddIsSetSemantic(t *testing.T) {
	g := NewGraph()
	s := IRI("http://example.org/s")

	g.Add(s, RDFType, IRI("http://example.org/T"))
	g.Add(s, RDFType, IRI("http://example.org/T"))
	g.Add(s, RDFType, NewLiteral("T", ""))
	g.Add(s, RDFType, NewLiteral("T", "en"))

	assert.Equal(t, 3, g.Len())
}

func TestGraphMerge(t *testing.T) {
	a := NewGraph()
	s := IRI("http://example.org/s")
	a.Add(s, RDFType, IRI("http://example.org/T"))
	a.Bind("ex", "http://example.org/")

	b := NewGraph()
	b.Add(s, RDFType, IRI("http://example.org/T"))
	b.Add(s, RDFFirst, NewLiteral("v", ""))
	b.Bind("ex", "http://other.example.org/")
	b.Bind("dc", "http://purl.org/dc/terms/")

	a.Merge(b)

	assert.Equal(t, 2, a.Len())
	ns, ok := a.Namespace("ex")
	require.True(t, ok)
	assert.Equal(t, IRI("http://example.org/"), ns)
	_, ok = a.Namespace("dc")
	assert.True(t, ok)
}

func TestGraphHasWildcards(t *testing.T) {
	g := NewGraph()
	s := IRI("http://example.org/s")
	g.Add(s, RDFType, IRI("http://example.org/T"))
	g.Add(s, IRI("http://example.org/p"), NewLiteral("v", ""))

	assert.True(t, g.Has(s, nil, nil))
	assert.True(t, g.Has(nil, RDFType, nil))
	assert.True(t, g.Has(nil, nil, NewLiteral("v", "")))
	assert.False(t, g.Has(nil, RDFFirst, nil))
}

func TestGraphObjectsInsertionOrder(t *testing.T) {
	g := NewGraph()
	s := IRI("http://example.org/s")
	p := IRI("http://example.org/p")
	g.Add(s, p, NewLiteral("one", ""))
	g.Add(s, RDFType, IRI("http://example.org/T"))
	g.Add(s, p, NewLiteral("two", ""))

	got := g.Objects(s, p)
	require.Len(t, got, 2)
	assert.Equal(t, Term(NewLiteral("one", "")), got[0])
	assert.Equal(t, Term(NewLiteral("two", "")), got[1])
}

func TestGraphBindFirstWins(t *testing.T) {
	g := NewGraph()
	g.Bind("xhv", IRI("http://www.w3.org/1999/xhtml/vocab#"))
	g.Bind("xhv", IRI("http://example.org/other#"))

	ns, ok := g.Namespace("xhv")
	require.True(t, ok)
	assert.Equal(t, IRI("http://www.w3.org/1999/xhtml/vocab#"), ns)
	assert.Equal(t, []string{"xhv"}, g.Prefixes())
}

func TestGraphNewBlankNodeUnique(t *testing.T) {
	g := NewGraph()
	a := g.NewBlankNode()
	b := g.NewBlankNode()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(string(a), "N"))
}

func TestGraphString(t *testing.T) {
	g := NewGraph()
	g.Bind("rdf", NSRDF)
	g.Add(IRI("http://example.org/s"), RDFType, IRI("http://example.org/T"))

	out := g.String()
	assert.Contains(t, out, "# @prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .")
	assert.Contains(t, out, "<http://example.org/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/T> .")
}
