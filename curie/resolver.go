// Package curie resolves CURIEs and terms against the prefix and term
// scopes in effect at a markup node. Each node gets its own scope that
// chains to its parent's, so lookups walk outward to the document root,
// where the host language's initial context sits.
package curie

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/vocabulary/rdfa"
)

var (
	ncName   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)
	termName = regexp.MustCompile(`^[A-Za-z](?:[A-Za-z0-9._-]|/)*$`)
)

// IsTerm reports whether val has the shape of a term: a name with no
// colon, starting with a letter. Values of this shape are looked up in
// the term scope before any CURIE interpretation is attempted.
func IsTerm(val string) bool {
	return termName.MatchString(val)
}

// Resolver is the prefix/term scope at one node.
type Resolver struct {
	version host.Version
	opts    *config.Options
	parent  *Resolver
	graph   *rdf.Graph

	// prefixes holds only this node's declarations; inherited bindings
	// come from the parent chain.
	prefixes map[string]rdf.IRI

	// vocab is this node's default vocabulary when vocabSet is true;
	// otherwise the parent's applies.
	vocab    rdf.IRI
	vocabSet bool

	// Root scope only.
	terms      map[string]rdf.IRI
	termsLower map[string]rdf.IRI
	bnodes     map[string]rdf.BlankNode
}

// New builds the resolver scope for node. parent is nil at the document
// root, where the initial context of the host language is loaded. base
// is the base URI in effect, used as the subject of vocabulary-usage
// triples.
func New(node *dom.Node, graph *rdf.Graph, base string, opts *config.Options, version host.Version, parent *Resolver) *Resolver {
	r := &Resolver{
		version: version,
		opts:    opts,
		parent:  parent,
		graph:   graph,
	}
	if parent == nil {
		r.prefixes = opts.HostLanguage.InitialPrefixes(version)
		r.terms = opts.HostLanguage.InitialTerms(version)
		r.termsLower = make(map[string]rdf.IRI, len(r.terms))
		for t, iri := range r.terms {
			r.termsLower[strings.ToLower(t)] = iri
		}
		r.bnodes = make(map[string]rdf.BlankNode)
		r.vocabSet = true
	}

	if version.AtLeast(host.Version11) && node.HasAttribute("vocab") {
		r.setVocabulary(node, base)
	}
	r.declareXMLNSPrefixes(node)
	if version.AtLeast(host.Version11) && node.HasAttribute("prefix") {
		r.declarePrefixAttr(node)
	}
	return r
}

// setVocabulary handles @vocab: a non-empty value becomes the default
// vocabulary for the subtree and is reported in the output graph; an
// empty value resets to the host default.
func (r *Resolver) setVocabulary(node *dom.Node, base string) {
	val := strings.TrimSpace(node.GetAttribute("vocab"))
	r.vocabSet = true
	if val == "" {
		r.vocab = ""
		return
	}
	r.vocab = rdf.IRI(val)
	r.graph.Add(rdf.IRI(base), rdfa.UsesVocabulary, r.vocab)
}

// declareXMLNSPrefixes picks up xmlns:pfx declarations, the only prefix
// mechanism RDFa 1.0 has.
func (r *Resolver) declareXMLNSPrefixes(node *dom.Node) {
	for _, a := range node.Attrs {
		name, ok := strings.CutPrefix(a.Name, "xmlns:")
		if !ok {
			continue
		}
		value := strings.TrimSpace(a.Value)
		switch {
		case name == "_":
			r.opts.Warn(diag.KindIncorrectPrefix,
				"The '_' local CURIE prefix is reserved for blank nodes, and cannot be defined as a prefix",
				node.Name)
		case value == "":
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Missing URI in prefix declaration for '%s' (in '%s')", name, a.Name),
				node.Name)
		case !ncName.MatchString(name):
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Non NCNAME '%s' in prefix definition (in '%s'); ignored", name, a.Name),
				node.Name)
		default:
			r.bind(name, rdf.IRI(value))
		}
	}
}

// declarePrefixAttr parses the whitespace-separated "pfx: uri" pairs of
// an RDFa 1.1 @prefix attribute.
func (r *Resolver) declarePrefixAttr(node *dom.Node) {
	raw := node.GetAttribute("prefix")
	fields := strings.Fields(raw)
	for i := 0; i < len(fields); i += 2 {
		decl := fields[i]
		if !strings.HasSuffix(decl, ":") {
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Invalid prefix declaration '%s' (in '%s')", decl, raw),
				node.Name)
			// Resync on the next token that looks like a declaration.
			i--
			continue
		}
		name := decl[:len(decl)-1]
		if i+1 >= len(fields) {
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Missing URI in prefix declaration for '%s' (in '%s')", name, raw),
				node.Name)
			break
		}
		uri := fields[i+1]
		switch {
		case name == "":
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Default prefix cannot be changed (in '%s')", raw),
				node.Name)
		case name == "_":
			r.opts.Warn(diag.KindIncorrectPrefix,
				"The '_' local CURIE prefix is reserved for blank nodes, and cannot be defined as a prefix",
				node.Name)
		case strings.Contains(name, ":"):
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("The character ':' is not valid in a CURIE Prefix, and cannot be used in a prefix definition (definition for '%s')", name),
				node.Name)
		case !ncName.MatchString(name):
			r.opts.Warn(diag.KindIncorrectPrefix,
				fmt.Sprintf("Non NCNAME '%s' in prefix definition (in '%s'); ignored", name, raw),
				node.Name)
		default:
			if host.KnownURIScheme(name) {
				r.opts.Warn(diag.KindPrefixRedefinition,
					fmt.Sprintf("'%s' a registered or a widely used URI scheme, but is defined as a prefix here; is this a mistake?", name),
					node.Name)
			}
			if xmlnsVal := node.GetAttribute("xmlns:" + name); xmlnsVal != "" && xmlnsVal != uri {
				r.opts.Warn(diag.KindPrefixRedefinition,
					fmt.Sprintf("@prefix setting for '%s' overrides the 'xmlns:%s' setting; may be a source of problem if same file is run through RDFa 1.0", name, name),
					node.Name)
			}
			r.bind(name, rdf.IRI(uri))
		}
	}
}

// bind records a prefix in this scope. RDFa 1.1 handles prefixes case
// insensitively, so they are stored and looked up lowercased there;
// 1.0 keeps xmlns case sensitivity.
func (r *Resolver) bind(prefix string, ns rdf.IRI) {
	if r.version.AtLeast(host.Version11) {
		prefix = strings.ToLower(prefix)
	}
	if r.prefixes == nil {
		r.prefixes = make(map[string]rdf.IRI)
	}
	r.prefixes[prefix] = ns
}

// lookup walks the scope chain for a prefix binding.
func (r *Resolver) lookup(prefix string) (rdf.IRI, bool) {
	if r.version.AtLeast(host.Version11) {
		prefix = strings.ToLower(prefix)
	}
	for cur := r; cur != nil; cur = cur.parent {
		if ns, ok := cur.prefixes[prefix]; ok {
			return ns, true
		}
	}
	return "", false
}

func (r *Resolver) root() *Resolver {
	cur := r
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Vocabulary returns the default vocabulary in effect at this node, or
// "" when none is.
func (r *Resolver) Vocabulary() rdf.IRI {
	for cur := r; cur != nil; cur = cur.parent {
		if cur.vocabSet {
			return cur.vocab
		}
	}
	return ""
}

// CURIEToURI resolves a CURIE to an IRI or blank node. It returns nil
// when the value has no prefix separator or the prefix is not bound in
// scope; the caller decides whether that is an error.
func (r *Resolver) CURIEToURI(val string) rdf.Term {
	i := strings.IndexByte(val, ':')
	if i < 0 {
		return nil
	}
	prefix, ref := val[:i], val[i+1:]

	if prefix == "_" {
		return r.blankNode(ref)
	}
	if prefix == "" {
		// The default prefix maps to the XHTML vocabulary.
		return r.opts.HostLanguage.DefaultPrefixIRI().Concat(ref)
	}
	if ns, ok := r.lookup(prefix); ok {
		return ns.Concat(ref)
	}
	return nil
}

// TermToURI resolves a bare term. With a default vocabulary in effect
// the term is appended to it; otherwise the term mappings are checked
// case sensitively, then case insensitively. Returns nil for an
// undefined term.
func (r *Resolver) TermToURI(val string) rdf.Term {
	if val == "" || !termName.MatchString(val) {
		return nil
	}
	if vocab := r.Vocabulary(); vocab != "" {
		return vocab.Concat(val)
	}
	rt := r.root()
	if iri, ok := rt.terms[val]; ok {
		return iri
	}
	if iri, ok := rt.termsLower[strings.ToLower(val)]; ok {
		return iri
	}
	return nil
}

// blankNode returns the document-scoped blank node for a "_:" label,
// allocating it on first use. All scopes share the root's label table.
func (r *Resolver) blankNode(label string) rdf.BlankNode {
	rt := r.root()
	if b, ok := rt.bnodes[label]; ok {
		return b
	}
	b := r.graph.NewBlankNode()
	rt.bnodes[label] = b
	return b
}
