// Package distill drives RDFa distillation: parse the markup, apply
// the host language's document transforms, walk the tree generating
// triples, and return the graphs and diagnostics of the run.
package distill

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/state"
)

// defaultBindings are namespace prefixes bound to every output graph
// for readable serialization.
var defaultBindings = []struct {
	prefix string
	ns     rdf.IRI
}{
	{"foaf", "http://xmlns.com/foaf/0.1/"},
	{"xsd", rdf.NSXSD},
	{"rdf", rdf.NSRDF},
	{"rdfs", rdf.NSRDFS},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
	{"cc", "http://creativecommons.org/ns#"},
}

// Result is the outcome of distilling one document.
type Result struct {
	// Graph holds the extracted triples.
	Graph *rdf.Graph
	// Processor holds the processor graph recording the run's warnings
	// and errors; nil unless requested in the configuration.
	Processor *rdf.Graph
	// Diagnostics lists every condition reported during the run.
	Diagnostics []diag.Diagnostic
	// Language is the host language the document was processed as.
	Language host.Language
	// Version is the RDFa version that applied.
	Version host.Version
	// Base is the base URI references were resolved against, after the
	// document's own base declarations.
	Base string
}

// Distiller extracts RDF from RDFa-annotated markup documents.
type Distiller struct {
	cfg *config.Config
	log *slog.Logger
}

// New returns a Distiller using the given service configuration. A nil
// cfg means defaults; a nil logger means slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Distiller {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Distiller{cfg: cfg, log: logger}
}

// FromFile distills the document stored at path. The host language
// follows the file suffix unless the configuration forces one, and the
// path serves as the base URI.
func (d *Distiller) FromFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return d.distill(f, path, host.LanguageFromMediaType(host.MediaTypeFromPath(path)))
}

// FromReader distills a document read from r. base anchors relative
// references and detected names the stream's host language; the
// configuration may override the latter.
func (d *Distiller) FromReader(r io.Reader, base string, detected host.Language) (*Result, error) {
	return d.distill(r, base, detected)
}

// FromString distills markup held in a string, processed as HTML5
// unless the configuration forces another host language.
func (d *Distiller) FromString(src, base string) (*Result, error) {
	return d.distill(strings.NewReader(src), base, host.HTML5)
}

func (d *Distiller) distill(r io.Reader, base string, detected host.Language) (*Result, error) {
	collector := &diag.Collector{}
	sink := diag.Sink(collector)
	var processor *diag.ProcessorGraph
	if d.cfg.Distill.ProcessorGraph {
		processor = diag.NewProcessorGraph(rdf.IRI(base))
		sink = diag.Tee(collector, processor)
	}

	opts, err := d.cfg.Options(detected, sink)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("processing options: %w", err)
	}

	var doc *dom.Document
	if opts.HostLanguage == host.HTML5 {
		doc, err = dom.FromHTML(r)
	} else {
		doc, err = dom.FromXML(r)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	// Documents served as XHTML are only genuine XHTML 1.x when the
	// doctype says so; anything else follows the HTML5 rules.
	opts.HostLanguage = host.AdjustXHTML(opts.HostLanguage, doc.Doctype.PublicID, doc.Doctype.SystemID)

	root := doc.Root

	// Document rewrites, in an order where the Lite check sees the
	// author's markup rather than the anchors added afterwards.
	if opts.MetaName {
		metaName(root, opts)
	}
	if opts.CheckLite {
		liteWarnings(root, opts)
	}
	topAbout(root, opts)

	graph := rdf.NewGraph()
	for _, b := range defaultBindings {
		graph.Bind(b.prefix, b.ns)
	}

	rootState := state.New(root, graph, nil, base, opts)
	w := &walker{graph: graph, opts: opts, root: root}
	w.run(rootState)

	res := &Result{
		Graph:       graph,
		Diagnostics: collector.Diagnostics,
		Language:    opts.HostLanguage,
		Version:     rootState.Version,
		Base:        rootState.Base,
	}
	if processor != nil {
		res.Processor = processor.Graph()
	}

	d.log.Debug("document distilled",
		"base", res.Base,
		"language", string(res.Language),
		"version", string(res.Version),
		"triples", graph.Len(),
		"diagnostics", len(res.Diagnostics))
	return res, nil
}
