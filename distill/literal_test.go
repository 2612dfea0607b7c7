package distill

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/state"
)

// walkHTML drives the walker directly with explicit options, for cases
// the service configuration does not reach.
func walkHTML(t *testing.T, src, base string, opts *config.Options) *rdf.Graph {
	t.Helper()
	doc, err := dom.FromHTML(strings.NewReader(src))
	require.NoError(t, err)
	topAbout(doc.Root, opts)

	graph := rdf.NewGraph()
	rootState := state.New(doc.Root, graph, nil, base, opts)
	w := &walker{graph: graph, opts: opts, root: doc.Root}
	w.run(rootState)
	return graph
}

func TestDatatypeLiteral(t *testing.T) {
	res := distillString(t,
		`<html><body><span property="http://example.org/age" datatype="xsd:integer" content="42">forty-two</span></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/age"),
		rdf.NewTypedLiteral("42", rdf.XSDInteger)))
}

func TestEmptyDatatypeFallsBackToPlain(t *testing.T) {
	res := distillString(t,
		`<html lang="en"><body><span property="http://example.org/p" datatype="">text</span></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/p"),
		rdf.NewLiteral("text", "en")))
}

func TestContentBeatsTextContent(t *testing.T) {
	res := distillString(t,
		`<html lang="en"><body><span property="http://example.org/p" content="from attribute">from text</span></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/p"),
		rdf.NewLiteral("from attribute", "en")))
}

func TestExplicitXMLLiteral(t *testing.T) {
	res := distillString(t,
		`<html><body><span property="http://example.org/p" datatype="rdf:XMLLiteral">T<b>x</b></span></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/p"),
		rdf.NewTypedLiteral("T<b>x</b>", rdf.RDFXMLLiteral)))
}

func TestXMLLiteralKeepsProcessingChildren(t *testing.T) {
	// Under 1.1 an XML literal does not swallow its subtree: markup
	// inside it still generates triples.
	res := distillString(t,
		`<html><body><div property="http://example.org/outer" datatype="rdf:XMLLiteral">T<b property="http://example.org/inner" content="i">x</b></div></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(rdf.IRI(docBase), rdf.IRI("http://example.org/outer"), nil))
	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/inner"),
		rdf.NewLiteral("i", "")))
}

func TestImplicitXMLLiteral10SwallowsSubtree(t *testing.T) {
	// Under 1.0 mixed content becomes an XML literal and the subtree is
	// not processed further.
	res := distillString(t,
		`<html version="XHTML+RDFa 1.0" xmlns:ex="http://example.org/ns#"><body><div property="ex:outer">T<b property="ex:inner" content="i">x</b></div></body></html>`,
		docBase, nil)

	require.Equal(t, host.Version10, res.Version)
	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/ns#outer"),
		rdf.NewTypedLiteral(`T<b property="ex:inner" content="i">x</b>`, rdf.RDFXMLLiteral)))
	assert.False(t, res.Graph.Has(nil, rdf.IRI("http://example.org/ns#inner"), nil),
		"1.0 XML literal content must not be processed")
}

func TestPlainLiteral10WithoutChildren(t *testing.T) {
	res := distillString(t,
		`<html version="XHTML+RDFa 1.0" lang="en" xmlns:dc="http://purl.org/dc/elements/1.1/"><head><title property="dc:title">My Title</title></head></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://purl.org/dc/elements/1.1/title"),
		rdf.NewLiteral("My Title", "en")))
}

func TestPropertyHrefMakesResourceObject(t *testing.T) {
	res := distillString(t,
		`<html><body><a property="http://example.org/link" href="http://example.org/x">anchor text</a></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/link"),
		rdf.IRI("http://example.org/x")))
}

func TestPropertyKeepsTextWhenRelTakesHref(t *testing.T) {
	res := distillString(t,
		`<html><body><a rel="http://example.org/r" property="http://example.org/p" href="http://example.org/x">anchor text</a></body></html>`,
		docBase, nil)

	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/r"),
		rdf.IRI("http://example.org/x")))
	assert.True(t, res.Graph.Has(
		rdf.IRI(docBase),
		rdf.IRI("http://example.org/p"),
		rdf.NewLiteral("anchor text", "")))
}

func TestWhitespaceCollapse(t *testing.T) {
	src := `<html><body><span property="http://example.org/p">  two
	words  </span></body></html>`

	opts := config.NewOptions(host.HTML5, &diag.Collector{})
	graph := walkHTML(t, src, docBase, opts)
	assert.True(t, graph.Has(rdf.IRI(docBase), rdf.IRI("http://example.org/p"),
		rdf.NewLiteral("  two\n\twords  ", "")), "default keeps whitespace exactly")

	opts = config.NewOptions(host.HTML5, &diag.Collector{})
	opts.SpacePreserve = false
	graph = walkHTML(t, src, docBase, opts)
	assert.True(t, graph.Has(rdf.IRI(docBase), rdf.IRI("http://example.org/p"),
		rdf.NewLiteral("two words", "")), "collapsed form expected")
}
