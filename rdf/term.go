// Package rdf provides the term and graph model the distiller emits into:
// IRIs, blank nodes, literals, triples, and an in-memory graph that keeps
// namespace bindings for readable output.
package rdf

import "strings"

// Term is an RDF term: an IRI, a blank node, or a literal.
// All implementations are comparable values, so terms can be compared
// with == and used as map keys.
type Term interface {
	// String returns the N-Triples form of the term.
	String() string
	rdfTerm()
}

// IRI is an absolute IRI reference.
type IRI string

func (IRI) rdfTerm() {}

func (i IRI) String() string {
	return "<" + string(i) + ">"
}

// Concat appends a local name to a namespace IRI.
func (i IRI) Concat(local string) IRI {
	return i + IRI(local)
}

// BlankNode is a blank node identified by its label (without the "_:"
// prefix).
type BlankNode string

func (BlankNode) rdfTerm() {}

func (b BlankNode) String() string {
	return "_:" + string(b)
}

// Literal is an RDF literal. Language and Datatype are mutually
// exclusive; both empty means a plain literal.
type Literal struct {
	Value    string
	Language string
	Datatype IRI
}

// NewLiteral returns a plain literal, or a language-tagged one when lang
// is non-empty.
func NewLiteral(value, lang string) Literal {
	return Literal{Value: value, Language: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype IRI.
func NewTypedLiteral(value string, datatype IRI) Literal {
	return Literal{Value: value, Datatype: datatype}
}

func (Literal) rdfTerm() {}

func (l Literal) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range l.Value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	if l.Language != "" {
		b.WriteByte('@')
		b.WriteString(l.Language)
	} else if l.Datatype != "" {
		b.WriteString("^^")
		b.WriteString(l.Datatype.String())
	}
	return b.String()
}

// Triple is a single RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Core namespaces referenced throughout the distiller.
const (
	NSRDF  IRI = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS IRI = "http://www.w3.org/2000/01/rdf-schema#"
	NSXSD  IRI = "http://www.w3.org/2001/XMLSchema#"
	NSOWL  IRI = "http://www.w3.org/2002/07/owl#"
)

// Frequently used RDF vocabulary terms.
const (
	RDFType       = NSRDF + "type"
	RDFFirst      = NSRDF + "first"
	RDFRest       = NSRDF + "rest"
	RDFNil        = NSRDF + "nil"
	RDFXMLLiteral = NSRDF + "XMLLiteral"
	RDFHTML       = NSRDF + "HTML"
	RDFLangString = NSRDF + "langString"
)

// XSD datatypes the distiller assigns to generated literals.
const (
	XSDString     = NSXSD + "string"
	XSDBoolean    = NSXSD + "boolean"
	XSDInteger    = NSXSD + "integer"
	XSDDecimal    = NSXSD + "decimal"
	XSDDouble     = NSXSD + "double"
	XSDDate       = NSXSD + "date"
	XSDTime       = NSXSD + "time"
	XSDDateTime   = NSXSD + "dateTime"
	XSDDuration   = NSXSD + "duration"
	XSDGYear      = NSXSD + "gYear"
	XSDGYearMonth = NSXSD + "gYearMonth"
	XSDGMonthDay  = NSXSD + "gMonthDay"
)
