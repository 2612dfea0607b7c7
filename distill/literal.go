package distill

import (
	"regexp"
	"strings"

	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/state"
)

var wsRun = regexp.MustCompile(`[ \t\r\n]+`)

// processProperty generates the triples or list entries for @property
// and reports whether the walk may descend into the element's children
// (an RDFa 1.0 XML literal swallows its subtree).
func (w *walker) processProperty(node *dom.Node, st *state.Context, subject, typedResource rdf.Term, hasRelRev, inlist bool) bool {
	preds := st.ResolveList("property")

	var obj rdf.Term
	recurse := true
	if st.Version.AtLeast(host.Version11) {
		obj = w.propertyValue11(node, st, typedResource, hasRelRev)
	} else {
		obj, recurse = w.propertyValue10(node, st)
	}
	if obj == nil {
		return recurse
	}

	for _, p := range preds {
		pred, ok := p.(rdf.IRI)
		if !ok {
			continue
		}
		if inlist {
			st.AddToList(pred, obj)
		} else {
			w.graph.Add(subject, pred, obj)
		}
	}
	return recurse
}

// propertyValue11 computes the object @property generates under RDFa
// 1.1: an explicitly datatyped literal, the @content text, a resource
// named by @resource/@href/@src, the typed resource of a bare @typeof,
// or the element's text content, in that order.
func (w *walker) propertyValue11(node *dom.Node, st *state.Context, typedResource rdf.Term, hasRelRev bool) rdf.Term {
	if node.HasAttribute("datatype") {
		dt := st.Resolve("datatype")
		var val string
		if node.HasAttribute("content") {
			val = node.GetAttribute("content")
		} else {
			val = w.textContent(node)
		}
		if iri, ok := dt.(rdf.IRI); ok && iri != "" {
			if iri == rdf.RDFXMLLiteral || iri == rdf.RDFHTML {
				return rdf.NewTypedLiteral(dom.RenderContent(node, st.DefaultNS), iri)
			}
			return rdf.NewTypedLiteral(val, iri)
		}
		// Unresolvable or empty datatype degrades to a plain literal.
		return rdf.NewLiteral(val, st.Lang)
	}

	if node.HasAttribute("content") {
		return rdf.NewLiteral(node.GetAttribute("content"), st.Lang)
	}

	if !hasRelRev {
		if res := st.ResolveFirst("resource", "href", "src"); res != nil {
			return res
		}
	}

	if node.HasAttribute("typeof") && !node.HasAttribute("about") && typedResource != nil {
		return typedResource
	}

	return rdf.NewLiteral(w.textContent(node), st.Lang)
}

// propertyValue10 computes the object under RDFa 1.0, where @property
// only ever yields literals and mixed content without an explicit
// datatype becomes an XML literal that consumes its subtree.
func (w *walker) propertyValue10(node *dom.Node, st *state.Context) (rdf.Term, bool) {
	hasContent := node.HasAttribute("content")

	if node.HasAttribute("datatype") {
		dt := st.Resolve("datatype")
		var val string
		if hasContent {
			val = node.GetAttribute("content")
		} else {
			val = w.textContent(node)
		}
		if iri, ok := dt.(rdf.IRI); ok && iri != "" {
			if iri == rdf.RDFXMLLiteral {
				return rdf.NewTypedLiteral(dom.RenderContent(node, st.DefaultNS), rdf.RDFXMLLiteral), false
			}
			return rdf.NewTypedLiteral(val, iri), true
		}
		return rdf.NewLiteral(val, st.Lang), true
	}

	if hasContent {
		return rdf.NewLiteral(node.GetAttribute("content"), st.Lang), true
	}
	if len(node.Elements()) == 0 {
		return rdf.NewLiteral(w.textContent(node), st.Lang), true
	}
	return rdf.NewTypedLiteral(dom.RenderContent(node, st.DefaultNS), rdf.RDFXMLLiteral), false
}

// textContent is the literal text of the subtree, collapsed when the
// run is not preserving whitespace.
func (w *walker) textContent(node *dom.Node) string {
	text := node.Text()
	if w.opts.SpacePreserve {
		return text
	}
	return strings.TrimSpace(wsRun.ReplaceAllString(text, " "))
}
