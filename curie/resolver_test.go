package curie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
)

func newNode(name string, attrPairs ...string) *dom.Node {
	n := &dom.Node{Type: dom.ElementNode, Name: name}
	for i := 0; i+1 < len(attrPairs); i += 2 {
		n.Attrs = append(n.Attrs, dom.Attr{Name: attrPairs[i], Value: attrPairs[i+1]})
	}
	return n
}

func newTestResolver(t *testing.T, node *dom.Node, version host.Version) (*Resolver, *diag.Collector, *rdf.Graph) {
	t.Helper()
	sink := &diag.Collector{}
	opts := config.NewOptions(host.HTML5, sink)
	g := rdf.NewGraph()
	return New(node, g, "http://example.org/doc", opts, version, nil), sink, g
}

func TestInitialContextPrefixes(t *testing.T) {
	r, sink, _ := newTestResolver(t, newNode("html"), host.Version11)

	assert.Equal(t, rdf.Term(rdf.IRI("http://purl.org/dc/terms/title")), r.CURIEToURI("dc:title"))
	assert.Equal(t, rdf.Term(rdf.IRI("http://xmlns.com/foaf/0.1/name")), r.CURIEToURI("foaf:name"))
	assert.Nil(t, r.CURIEToURI("nosuch:thing"))
	assert.Empty(t, sink.Diagnostics)
}

func TestVersion10HasNoInitialPrefixes(t *testing.T) {
	r, _, _ := newTestResolver(t, newNode("html"), host.Version10)
	assert.Nil(t, r.CURIEToURI("dc:title"))
}

func TestXMLNSDeclarations(t *testing.T) {
	node := newNode("div", "xmlns:ex", "http://example.org/ns#")
	r, sink, _ := newTestResolver(t, node, host.Version10)

	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/ns#x")), r.CURIEToURI("ex:x"))
	// 1.0 keeps xmlns case sensitivity.
	assert.Nil(t, r.CURIEToURI("EX:x"))
	assert.Empty(t, sink.Diagnostics)
}

func TestXMLNSRejectsReservedAndMalformed(t *testing.T) {
	node := newNode("div",
		"xmlns:_", "http://example.org/a#",
		"xmlns:ok", "http://example.org/b#",
		"xmlns:empty", "",
		"xmlns:1bad", "http://example.org/c#",
	)
	r, sink, _ := newTestResolver(t, node, host.Version11)

	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/b#v")), r.CURIEToURI("ok:v"))
	assert.Nil(t, r.CURIEToURI("1bad:v"))
	assert.Len(t, sink.ByKind(diag.KindIncorrectPrefix), 3)
}

func TestPrefixAttribute(t *testing.T) {
	node := newNode("div", "prefix", "ex: http://example.org/ns# DC: http://purl.org/dc/elements/1.1/")
	r, sink, _ := newTestResolver(t, node, host.Version11)

	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/ns#a")), r.CURIEToURI("ex:a"))
	// 1.1 prefixes are case insensitive: DC: redefines dc.
	assert.Equal(t, rdf.Term(rdf.IRI("http://purl.org/dc/elements/1.1/title")), r.CURIEToURI("dc:title"))
	assert.Equal(t, rdf.Term(rdf.IRI("http://purl.org/dc/elements/1.1/title")), r.CURIEToURI("DC:title"))
	assert.Empty(t, sink.Diagnostics)
}

func TestPrefixAttributeIgnoredIn10(t *testing.T) {
	node := newNode("div", "prefix", "ex: http://example.org/ns#")
	r, _, _ := newTestResolver(t, node, host.Version10)
	assert.Nil(t, r.CURIEToURI("ex:a"))
}

func TestPrefixAttributeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"missing uri", "ex:"},
		{"default prefix", ": http://example.org/"},
		{"blank node prefix", "_: http://example.org/"},
		{"non ncname", "1x: http://example.org/"},
		{"no colon", "ex http://example.org/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := newNode("div", "prefix", tt.prefix)
			_, sink, _ := newTestResolver(t, node, host.Version11)
			assert.NotEmpty(t, sink.ByKind(diag.KindIncorrectPrefix), "expected a warning for %q", tt.prefix)
		})
	}
}

func TestPrefixShadowsURIScheme(t *testing.T) {
	node := newNode("div", "prefix", "mailto: http://example.org/mail#")
	r, sink, _ := newTestResolver(t, node, host.Version11)

	// Warned about, but still bound.
	require.NotEmpty(t, sink.ByKind(diag.KindPrefixRedefinition))
	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/mail#me")), r.CURIEToURI("mailto:me"))
}

func TestPrefixOverridesXMLNS(t *testing.T) {
	node := newNode("div",
		"xmlns:ex", "http://example.org/old#",
		"prefix", "ex: http://example.org/new#",
	)
	r, sink, _ := newTestResolver(t, node, host.Version11)

	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/new#a")), r.CURIEToURI("ex:a"))
	assert.NotEmpty(t, sink.ByKind(diag.KindPrefixRedefinition))
}

func TestScopeChaining(t *testing.T) {
	rootNode := newNode("html", "xmlns:a", "http://example.org/a#")
	root, sink, g := newTestResolver(t, rootNode, host.Version11)

	opts := config.NewOptions(host.HTML5, sink)
	child1 := New(newNode("div", "prefix", "b: http://example.org/b#"), g, "http://example.org/doc", opts, host.Version11, root)
	child2 := New(newNode("div"), g, "http://example.org/doc", opts, host.Version11, root)

	// Inner scopes see outer declarations.
	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/a#x")), child1.CURIEToURI("a:x"))
	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/b#x")), child1.CURIEToURI("b:x"))

	// Sibling scopes stay isolated.
	assert.Equal(t, rdf.Term(rdf.IRI("http://example.org/a#x")), child2.CURIEToURI("a:x"))
	assert.Nil(t, child2.CURIEToURI("b:x"))
}

func TestDefaultPrefix(t *testing.T) {
	r, _, _ := newTestResolver(t, newNode("html"), host.Version11)
	assert.Equal(t, rdf.Term(rdf.IRI("http://www.w3.org/1999/xhtml/vocab#next")), r.CURIEToURI(":next"))
}

func TestBlankNodeCURIEs(t *testing.T) {
	r, _, _ := newTestResolver(t, newNode("html"), host.Version11)

	a1 := r.CURIEToURI("_:a")
	a2 := r.CURIEToURI("_:a")
	b := r.CURIEToURI("_:b")
	anon1 := r.CURIEToURI("_:")
	anon2 := r.CURIEToURI("_:")

	require.IsType(t, rdf.BlankNode(""), a1)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
	assert.Equal(t, anon1, anon2)
	assert.NotEqual(t, a1, anon1)
}

func TestBlankNodeTableSharedAcrossScopes(t *testing.T) {
	root, sink, g := newTestResolver(t, newNode("html"), host.Version11)
	opts := config.NewOptions(host.HTML5, sink)
	child := New(newNode("div"), g, "http://example.org/doc", opts, host.Version11, root)

	assert.Equal(t, root.CURIEToURI("_:shared"), child.CURIEToURI("_:shared"))
}

func TestVocabulary(t *testing.T) {
	node := newNode("div", "vocab", "http://schema.org/")
	r, _, g := newTestResolver(t, node, host.Version11)

	assert.Equal(t, rdf.IRI("http://schema.org/"), r.Vocabulary())
	assert.Equal(t, rdf.Term(rdf.IRI("http://schema.org/Person")), r.TermToURI("Person"))
	assert.True(t, g.Has(
		rdf.IRI("http://example.org/doc"),
		rdf.IRI("http://www.w3.org/ns/rdfa#usesVocabulary"),
		rdf.IRI("http://schema.org/"),
	))
}

func TestVocabularyInheritsAndResets(t *testing.T) {
	root, sink, g := newTestResolver(t, newNode("html", "vocab", "http://schema.org/"), host.Version11)
	opts := config.NewOptions(host.HTML5, sink)

	child := New(newNode("div"), g, "http://example.org/doc", opts, host.Version11, root)
	assert.Equal(t, rdf.IRI("http://schema.org/"), child.Vocabulary())

	reset := New(newNode("div", "vocab", ""), g, "http://example.org/doc", opts, host.Version11, child)
	assert.Equal(t, rdf.IRI(""), reset.Vocabulary())
	// With no vocabulary, the initial context terms apply again.
	assert.Equal(t, rdf.Term(rdf.IRI("http://www.w3.org/1999/xhtml/vocab#license")), reset.TermToURI("license"))
}

func TestTermResolution(t *testing.T) {
	r, _, _ := newTestResolver(t, newNode("html"), host.Version11)

	assert.Equal(t, rdf.Term(rdf.IRI("http://www.w3.org/1999/xhtml/vocab#license")), r.TermToURI("license"))
	// Case-insensitive fallback.
	assert.Equal(t, rdf.Term(rdf.IRI("http://www.w3.org/1999/xhtml/vocab#license")), r.TermToURI("License"))
	assert.Nil(t, r.TermToURI("definitelynotaterm"))
	assert.Nil(t, r.TermToURI(""))
	assert.Nil(t, r.TermToURI("not a term"))
}
