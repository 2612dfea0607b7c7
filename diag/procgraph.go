package diag

import (
	"time"

	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/vocabulary/rdfa"
)

const (
	dctDescription rdf.IRI = "http://purl.org/dc/terms/description"
	dctDate        rdf.IRI = "http://purl.org/dc/terms/date"
)

// ProcessorGraph is a Sink that records diagnostics as triples in the
// RDFa processor-graph shape: each entry is a fresh node typed by both
// its severity class and its condition class, with a description, a
// timestamp, and a pointer back to the processed document.
type ProcessorGraph struct {
	// Document is the IRI of the document being processed; recorded as
	// the rdfa:context of every entry when non-empty.
	Document rdf.IRI

	graph *rdf.Graph
	now   func() time.Time
}

// NewProcessorGraph returns a processor graph for the given document.
func NewProcessorGraph(document rdf.IRI) *ProcessorGraph {
	return &ProcessorGraph{Document: document, graph: rdf.NewGraph(), now: time.Now}
}

// Graph returns the accumulated processor graph.
func (p *ProcessorGraph) Graph() *rdf.Graph {
	return p.graph
}

func (p *ProcessorGraph) Emit(d Diagnostic) {
	entry := p.graph.NewBlankNode()

	severity := rdfa.ClassWarning
	switch d.Severity {
	case Error:
		severity = rdfa.ClassError
	case Info:
		severity = rdfa.ClassInfo
	}
	p.graph.Add(entry, rdf.RDFType, severity)
	if class := d.Kind.Class(); class != severity {
		p.graph.Add(entry, rdf.RDFType, class)
	}
	p.graph.Add(entry, dctDescription, rdf.NewLiteral(d.Message, ""))
	p.graph.Add(entry, dctDate, rdf.NewTypedLiteral(p.now().UTC().Format(time.RFC3339), rdf.XSDDateTime))
	if p.Document != "" {
		p.graph.Add(entry, rdfa.Namespace.Concat("context"), p.Document)
	}
	if d.Node != "" {
		p.graph.Add(entry, rdfa.DistillerNamespace.Concat("node"), rdf.NewLiteral(d.Node, ""))
	}
}
