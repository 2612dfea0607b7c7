// Package xhtml provides the XHTML vocabulary terms the XHTML-family
// host languages preload: the link relations of the XHTML+RDFa 1.1
// initial context and the hardcoded relation list of XHTML+RDFa 1.0.
package xhtml

import "github.com/c360studio/semdistill/rdf"

// Namespace is the XHTML vocabulary IRI, also the default expansion of
// the ":" prefix in XHTML-family documents.
const Namespace rdf.IRI = "http://www.w3.org/1999/xhtml/vocab#"

// contextTermNames lists the terms of the XHTML+RDFa 1.1 initial
// context (http://www.w3.org/2011/rdfa-context/xhtml-rdfa-1.1). Each
// expands against Namespace.
var contextTermNames = []string{
	"alternate", "appendix", "bookmark", "chapter", "contents",
	"copyright", "first", "glossary", "help", "icon", "index", "last",
	"license", "meta", "next", "p3pv1", "prev", "previous", "role",
	"section", "start", "stylesheet", "subsection", "top", "up",
}

// Predefined10Rel lists the @rel/@rev terms hardcoded for XHTML+RDFa
// 1.0. Under 1.0 rules these replace the initial context terms entirely.
var Predefined10Rel = []string{
	"alternate", "appendix", "cite", "bookmark", "chapter", "contents",
	"copyright", "glossary", "help", "icon", "index", "meta", "next",
	"p3pv1", "prev", "previous", "role", "section", "subsection",
	"start", "license", "up", "last", "stylesheet", "first", "top",
}

// ContextTerms maps each XHTML term, lowercased, to its vocabulary IRI.
var ContextTerms = termTable(contextTermNames)

// Terms10 maps each XHTML+RDFa 1.0 relation, lowercased, to its
// vocabulary IRI.
var Terms10 = termTable(Predefined10Rel)

func termTable(names []string) map[string]rdf.IRI {
	m := make(map[string]rdf.IRI, len(names))
	for _, n := range names {
		m[n] = Namespace.Concat(n)
	}
	return m
}
