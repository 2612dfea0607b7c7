package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
)

func iri(s string) rdf.Term { return rdf.IRI(s) }

func TestResolveURIAttribute(t *testing.T) {
	tests := []struct {
		name string
		href string
		want rdf.Term
	}{
		{"empty means base", "", iri("http://example.org/dir/doc")},
		{"relative", "other", iri("http://example.org/dir/other")},
		{"parent relative", "../up", iri("http://example.org/up")},
		{"absolute", "http://other.example.org/x", iri("http://other.example.org/x")},
		{"dangling query kept", "doc?", iri("http://example.org/dir/doc?")},
		{"dangling fragment kept", "doc#", iri("http://example.org/dir/doc#")},
		{"fragment only", "#sec", iri("http://example.org/dir/doc#sec")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := newNode("a", "href", tt.href)
			ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/dir/doc")
			assert.Equal(t, tt.want, ctx.Resolve("href"))
			assert.Empty(t, sink.Diagnostics)
		})
	}
}

func TestResolveAbsentAttribute(t *testing.T) {
	ctx, _, _ := newRoot(t, newNode("a"), host.HTML5, "http://example.org/")
	assert.Nil(t, ctx.Resolve("href"))
	assert.Nil(t, ctx.ResolveList("rel"))
}

func TestResolveURIUnusualScheme(t *testing.T) {
	node := newNode("a", "href", "undeclared:thing")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/")

	// The value is kept, but it smells like a CURIE with a missing
	// prefix declaration.
	assert.Equal(t, iri("undeclared:thing"), ctx.Resolve("href"))
	assert.True(t, sink.HasKind(diag.KindUnusualURIScheme))
}

func TestResolveURILocalFileBase(t *testing.T) {
	node := newNode("a", "href", "other.html")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "testdata/doc.html")

	got := ctx.Resolve("href")
	require.NotNil(t, got)
	assert.Empty(t, sink.Diagnostics)

	// A scheme-carrying value against a local base still gets the
	// scheme check.
	node = newNode("a", "href", "weird:thing")
	ctx, sink, _ = newRoot(t, node, host.HTML5, "testdata/doc.html")
	assert.Equal(t, iri("weird:thing"), ctx.Resolve("href"))
	assert.True(t, sink.HasKind(diag.KindUnusualURIScheme))
}

func TestResolveAboutCURIE(t *testing.T) {
	node := newNode("div", "prefix", "ex: http://example.org/ns#", "about", "ex:thing")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, iri("http://example.org/ns#thing"), ctx.Resolve("about"))
	assert.Empty(t, sink.Diagnostics)
}

func TestResolveAboutEmptyMeansBase(t *testing.T) {
	node := newNode("div", "about", "")
	ctx, _, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")
	assert.Equal(t, iri("http://example.org/doc"), ctx.Resolve("about"))
}

func TestSafeCURIENeverFallsBack(t *testing.T) {
	node := newNode("div", "about", "[undeclared:thing]")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Nil(t, ctx.Resolve("about"))
	assert.True(t, sink.HasKind(diag.KindUnresolvablePrefix))
}

func TestSafeCURIEUnresolvableSilentUnder10(t *testing.T) {
	node := newNode("div", "about", "[undeclared:thing]")
	sink := &diag.Collector{}
	opts := config.NewOptions(host.XHTML, sink)
	opts.ForcedVersion = host.Version10
	ctx := New(node, rdf.NewGraph(), nil, "http://example.org/doc", opts)

	assert.Nil(t, ctx.Resolve("about"))
	assert.Empty(t, sink.Diagnostics)
}

func TestPlainCURIEIsURIUnder10(t *testing.T) {
	// Without brackets, 1.0 never tries CURIE resolution: the value is
	// a URI with an odd scheme, not a CURIE error.
	node := newNode("div", "about", "undeclared:thing")
	sink := &diag.Collector{}
	opts := config.NewOptions(host.XHTML, sink)
	opts.ForcedVersion = host.Version10
	ctx := New(node, rdf.NewGraph(), nil, "http://example.org/doc", opts)

	assert.Equal(t, iri("undeclared:thing"), ctx.Resolve("about"))
	assert.True(t, sink.HasKind(diag.KindUnusualURIScheme))
	assert.False(t, sink.HasKind(diag.KindUndefinedCURIE))
}

func TestUnterminatedSafeCURIE(t *testing.T) {
	node := newNode("div", "about", "[ex:thing")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Nil(t, ctx.Resolve("about"))
	assert.True(t, sink.HasKind(diag.KindIllegalSafeCURIE))
}

func TestPlainCURIEFallsBackToURI(t *testing.T) {
	// Without brackets an undeclared prefix degrades to a URI with a
	// scheme warning.
	node := newNode("div", "about", "undeclared:thing")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, iri("undeclared:thing"), ctx.Resolve("about"))
	assert.True(t, sink.HasKind(diag.KindUnusualURIScheme))
}

func TestRelativeCURIEReanchoredOnBase(t *testing.T) {
	node := newNode("div", "prefix", "rel: sub/", "about", "rel:item")
	ctx, _, _ := newRoot(t, node, host.HTML5, "http://example.org/dir/")

	assert.Equal(t, iri("http://example.org/dir/sub/item"), ctx.Resolve("about"))
}

func TestResolveListDropsBadTokens(t *testing.T) {
	node := newNode("div",
		"prefix", "ex: http://example.org/ns#",
		"rel", "ex:a nosuchterm ex:b",
	)
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	got := ctx.ResolveList("rel")
	assert.Equal(t, []rdf.Term{iri("http://example.org/ns#a"), iri("http://example.org/ns#b")}, got)
	assert.True(t, sink.HasKind(diag.KindUndefinedTerm))
}

func TestResolveTermFromInitialContext(t *testing.T) {
	node := newNode("a", "rel", "license")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, []rdf.Term{iri("http://www.w3.org/1999/xhtml/vocab#license")}, ctx.ResolveList("rel"))
	assert.Empty(t, sink.Diagnostics)
}

func TestResolveTermAgainstVocabulary(t *testing.T) {
	node := newNode("div", "vocab", "http://schema.org/", "typeof", "Person")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, []rdf.Term{iri("http://schema.org/Person")}, ctx.ResolveList("typeof"))
	assert.Empty(t, sink.Diagnostics)
}

func TestResolveDatatypeAbsoluteURI(t *testing.T) {
	node := newNode("span", "datatype", "http://example.org/types/temp")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, iri("http://example.org/types/temp"), ctx.Resolve("datatype"))
	assert.Empty(t, sink.Diagnostics)
}

func TestAbsoluteURINotAllowedUnder10(t *testing.T) {
	node := newNode("span", "datatype", "http://example.org/types/temp")
	sink := &diag.Collector{}
	opts := config.NewOptions(host.XHTML, sink)
	opts.ForcedVersion = host.Version10
	ctx := New(node, rdf.NewGraph(), nil, "http://example.org/doc", opts)

	assert.Nil(t, ctx.Resolve("datatype"))
	assert.True(t, sink.HasKind(diag.KindUndefinedCURIE))
}

func TestRelativeRefNotAllowedInTermPosition(t *testing.T) {
	node := newNode("div", "rel", "../up")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Empty(t, ctx.ResolveList("rel"))
	assert.True(t, sink.HasKind(diag.KindNonLegalCURIERef))
}

func TestEmptyDatatypeResolvesToNothing(t *testing.T) {
	node := newNode("span", "datatype", "")
	ctx, sink, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Nil(t, ctx.Resolve("datatype"))
	assert.Empty(t, sink.Diagnostics)
}

func TestResolveFirst(t *testing.T) {
	node := newNode("div",
		"resource", "/r",
		"href", "/h",
	)
	ctx, _, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	assert.Equal(t, iri("http://example.org/r"), ctx.ResolveFirst("about", "resource", "href", "src"))
}

func TestResolveFirstSkipsFailedResolution(t *testing.T) {
	node := newNode("div",
		"about", "[undeclared:x]",
		"resource", "/r",
	)
	ctx, _, _ := newRoot(t, node, host.HTML5, "http://example.org/doc")

	// A present but unresolvable attribute does not block later ones.
	assert.Equal(t, iri("http://example.org/r"), ctx.ResolveFirst("about", "resource"))
}

func TestResolvePanicsOnMisuse(t *testing.T) {
	ctx, _, _ := newRoot(t, newNode("div"), host.HTML5, "http://example.org/doc")

	assert.Panics(t, func() { ctx.Resolve("style") })
	assert.Panics(t, func() { ctx.Resolve("rel") })
	assert.Panics(t, func() { ctx.ResolveList("href") })
}

func TestBlankNodeCURIE(t *testing.T) {
	node := newNode("div", "about", "_:a")
	sibling := newNode("div", "about", "_:a")
	other := newNode("div", "about", "_:b")
	root := newNode("html")
	root.AppendChild(node)
	root.AppendChild(sibling)
	root.AppendChild(other)

	ctx, _, _ := newRoot(t, root, host.HTML5, "http://example.org/doc")
	a1 := New(node, ctx.Graph, ctx, "", nil).Resolve("about")
	a2 := New(sibling, ctx.Graph, ctx, "", nil).Resolve("about")
	b := New(other, ctx.Graph, ctx, "", nil).Resolve("about")

	require.IsType(t, rdf.BlankNode(""), a1)
	assert.Equal(t, a1, a2)
	assert.NotEqual(t, a1, b)
}
