// Package host encodes the host-language policy layer: which markup
// dialect a document is in, and the dialect-dependent processing rules
// (initial contexts, xml:base and xml:lang acceptance, predefined
// terms, output prefix bindings, RDFa version detection).
package host

import (
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/vocabulary/rdfa"
	"github.com/c360studio/semdistill/vocabulary/xhtml"
)

// Language identifies the host language of a document. Core is the
// fallback for generic XML when nothing more specific applies.
type Language string

const (
	Core   Language = "RDFa Core"
	XHTML  Language = "XHTML+RDFa"
	XHTML5 Language = "XHTML5+RDFa"
	HTML5  Language = "HTML5+RDFa"
	Atom   Language = "Atom+RDFa"
	SVG    Language = "SVG+RDFa"
)

// MediaType is a MIME content type the distiller recognizes.
type MediaType string

const (
	MediaHTML  MediaType = "text/html"
	MediaXHTML MediaType = "application/xhtml+xml"
	MediaSVG   MediaType = "application/svg+xml"
	MediaSMIL  MediaType = "application/smil+xml"
	MediaAtom  MediaType = "application/atom+xml"
	MediaXML   MediaType = "application/xml"
	MediaXMLT  MediaType = "text/xml"
)

// XHTMLFamily reports whether lang is one of the XHTML/HTML dialects,
// which share the XHTML vocabulary conventions.
func (l Language) XHTMLFamily() bool {
	return l == XHTML || l == XHTML5 || l == HTML5
}

// AcceptsXMLBase reports whether xml:base is honored for this host
// language. The HTML family manages its base through <base href> and
// ignores xml:base.
func (l Language) AcceptsXMLBase() bool {
	return l == Core || l == Atom || l == SVG
}

// AcceptsXMLLang reports whether xml:lang alone (without HTML's lang)
// defines the language for this host.
func (l Language) AcceptsXMLLang() bool {
	return l == Core || l == Atom || l == SVG
}

// BeautifyingPrefixes returns prefix bindings added to the output graph
// purely for readable serialization. Only the XHTML family carries any.
func (l Language) BeautifyingPrefixes() map[string]rdf.IRI {
	if l.XHTMLFamily() {
		return map[string]rdf.IRI{"xhv": xhtml.Namespace}
	}
	return nil
}

// InitialPrefixes returns the prefix mappings preloaded for a document
// of this host language under the given version. RDFa 1.0 predates
// initial contexts and starts with no prefix bindings.
func (l Language) InitialPrefixes(v Version) map[string]rdf.IRI {
	if !v.AtLeast(Version11) {
		return nil
	}
	m := make(map[string]rdf.IRI, len(rdfa.ContextPrefixes))
	for p, iri := range rdfa.ContextPrefixes {
		m[p] = iri
	}
	return m
}

// InitialTerms returns the term mappings preloaded for this host
// language. Under 1.0 rules the hardcoded XHTML relation list replaces
// the initial context for the XHTML family.
func (l Language) InitialTerms(v Version) map[string]rdf.IRI {
	if !v.AtLeast(Version11) {
		if l.XHTMLFamily() {
			return copyTerms(xhtml.Terms10)
		}
		return nil
	}
	m := make(map[string]rdf.IRI, len(rdfa.ContextTerms)+len(xhtml.ContextTerms))
	for t, iri := range rdfa.ContextTerms {
		m[t] = iri
	}
	if l == XHTML {
		for t, iri := range xhtml.ContextTerms {
			m[t] = iri
		}
	}
	return m
}

// DefaultPrefixIRI is the expansion of a CURIE with an empty prefix
// (":local"). The XHTML vocabulary serves this role for every host.
func (l Language) DefaultPrefixIRI() rdf.IRI {
	return xhtml.Namespace
}

func copyTerms(src map[string]rdf.IRI) map[string]rdf.IRI {
	m := make(map[string]rdf.IRI, len(src))
	for k, v := range src {
		m[k] = v
	}
	return m
}
