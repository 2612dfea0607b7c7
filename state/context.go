// Package state implements the per-node resolution context: the base
// URI, language, default namespace, RDFa version, prefix/term scope,
// and list accumulator in effect at a markup node, together with the
// attribute resolution rules that turn attribute values into RDF
// references.
//
// A Context is built for every element during traversal, inheriting
// from its parent's context. Construction and resolution never fail:
// bad values produce diagnostics on the configured sink and resolve to
// nothing.
package state

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/curie"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
)

// Context is the resolution state at one node.
type Context struct {
	// Node is the element this context belongs to.
	Node *dom.Node
	// Graph receives triples generated during processing.
	Graph *rdf.Graph
	// Base is the base URI in effect, never carrying a fragment from
	// local declarations.
	Base string
	// Lang is the language tag in effect, "" when none is.
	Lang string
	// DefaultNS is the default XML namespace, used only when
	// serializing XML literal subtrees.
	DefaultNS string
	// Version is the RDFa version the document is processed under.
	Version host.Version
	// Options is the processing policy of the run.
	Options *config.Options

	resolver    *curie.Resolver
	baseURL     *url.URL
	listMapping *listMapping
	ownsList    bool
}

// New builds the context for node. parent is nil at the document root,
// where opts must be supplied; everywhere else the parent's policy is
// inherited and opts is ignored. base is the externally known document
// location, consulted only when the document sets no base of its own.
func New(node *dom.Node, graph *rdf.Graph, parent *Context, base string, opts *config.Options) *Context {
	c := &Context{Node: node, Graph: graph}

	if parent != nil {
		c.Version = parent.Version
		c.Base = parent.Base
		c.Options = parent.Options
		c.listMapping = parent.listMapping
		if c.Options.HostLanguage.AcceptsXMLBase() && node.HasAttribute("xml:base") {
			c.Base = stripFragment(node.GetAttribute("xml:base"))
		}
	} else {
		if opts == nil {
			panic("state: options are required at the document root")
		}
		c.Options = opts
		c.listMapping = newListMapping()
		c.ownsList = true

		if opts.ForcedVersion != "" {
			c.Version = opts.ForcedVersion
		} else {
			c.Version = host.DetectVersion(node.GetAttribute("version"), opts.DefaultVersion)
		}

		switch {
		case opts.HostLanguage.XHTMLFamily():
			// The HTML family declares its base with <base href>.
			scanBase(node, c)
		case opts.HostLanguage.AcceptsXMLBase() && node.HasAttribute("xml:base"):
			c.Base = stripFragment(node.GetAttribute("xml:base"))
		}
		if c.Base == "" {
			c.Base = base
		}
		c.listMapping.origin = rdf.IRI(c.Base)

		for prefix, ns := range opts.HostLanguage.BeautifyingPrefixes() {
			graph.Bind(prefix, ns)
		}
	}

	c.baseURL, _ = url.Parse(c.Base)

	var parentResolver *curie.Resolver
	if parent != nil {
		parentResolver = parent.resolver
	}
	c.resolver = curie.New(node, graph, c.Base, c.Options, c.Version, parentResolver)

	c.settleLanguage(node, parent)

	if node.HasAttribute("xmlns") {
		c.DefaultNS = node.GetAttribute("xmlns")
	} else if parent != nil {
		c.DefaultNS = parent.DefaultNS
	}

	return c
}

// scanBase walks the whole tree for <base href>; a later declaration
// overrides an earlier one.
func scanBase(node *dom.Node, c *Context) {
	if node.Type == dom.ElementNode && node.Name == "base" && node.HasAttribute("href") {
		c.Base = stripFragment(node.GetAttribute("href"))
	}
	for _, child := range node.Children {
		scanBase(child, c)
	}
}

// settleLanguage applies the host language's rules for lang and
// xml:lang. In the HTML family both can appear, xml:lang prevails, and
// an explicit empty value clears the inherited language. Pure XML
// hosts only honor xml:lang, and only when the host accepts it.
func (c *Context) settleLanguage(node *dom.Node, parent *Context) {
	if parent != nil {
		c.Lang = parent.Lang
	}

	if c.Options.HostLanguage.XHTMLFamily() {
		hasLang := node.HasAttribute("lang")
		hasXMLLang := node.HasAttribute("xml:lang")
		lang := strings.ToLower(node.GetAttribute("lang"))
		xmlLang := strings.ToLower(node.GetAttribute("xml:lang"))

		if hasXMLLang {
			c.Lang = xmlLang
		} else if hasLang {
			c.Lang = lang
		}

		if hasLang && hasXMLLang && lang != xmlLang {
			c.Options.Warn(diag.KindLanguageMismatch,
				fmt.Sprintf("Both xml:lang and lang used on an element with different values; xml:lang prevails. (%s and %s)", xmlLang, lang),
				node.Name)
		}
		return
	}

	if c.Options.HostLanguage.AcceptsXMLLang() && node.HasAttribute("xml:lang") {
		c.Lang = strings.ToLower(node.GetAttribute("xml:lang"))
	}
}

// Vocabulary returns the default vocabulary in effect at this node.
func (c *Context) Vocabulary() rdf.IRI {
	return c.resolver.Vocabulary()
}

// stripFragment removes a fragment identifier; base URIs never carry
// one.
func stripFragment(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}
