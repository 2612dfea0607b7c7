package state

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/c360studio/semdistill/curie"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
)

// attrKind selects which resolution ladder an attribute's value goes
// through.
type attrKind uint8

const (
	kindURI attrKind = iota + 1
	kindCURIEOrURI
	kindTermOrCURIEOrAbsURI
)

// attrKinds is the closed set of resolvable attributes. Asking for an
// attribute outside this table is a programming error, not a document
// error, and panics.
var attrKinds = map[string]attrKind{
	"href":     kindURI,
	"src":      kindURI,
	"vocab":    kindURI,
	"about":    kindCURIEOrURI,
	"resource": kindCURIEOrURI,
	"rel":      kindTermOrCURIEOrAbsURI,
	"rev":      kindTermOrCURIEOrAbsURI,
	"datatype": kindTermOrCURIEOrAbsURI,
	"typeof":   kindTermOrCURIEOrAbsURI,
	"property": kindTermOrCURIEOrAbsURI,
}

// listValued marks the attributes whose value is a whitespace
// separated list of references rather than a single one.
var listValued = map[string]bool{
	"rel":      true,
	"rev":      true,
	"property": true,
	"typeof":   true,
}

func kindOf(attr string) attrKind {
	kind, ok := attrKinds[attr]
	if !ok {
		panic(fmt.Sprintf("state: attribute %q has no resolution rule", attr))
	}
	return kind
}

// Resolve resolves the value of a single-valued attribute on this
// context's node. It returns nil when the attribute is absent or its
// value does not resolve; failures are reported on the diagnostic
// sink. Resolve panics when called for a list-valued attribute.
func (c *Context) Resolve(attr string) rdf.Term {
	kind := kindOf(attr)
	if listValued[attr] {
		panic(fmt.Sprintf("state: attribute %q is list valued, use ResolveList", attr))
	}
	if !c.Node.HasAttribute(attr) {
		return nil
	}
	return c.resolve(kind, strings.TrimSpace(c.Node.GetAttribute(attr)))
}

// ResolveList resolves a list-valued attribute into the references its
// tokens denote, dropping tokens that do not resolve. An absent
// attribute yields nil. ResolveList panics when called for a
// single-valued attribute.
func (c *Context) ResolveList(attr string) []rdf.Term {
	kind := kindOf(attr)
	if !listValued[attr] {
		panic(fmt.Sprintf("state: attribute %q is single valued, use Resolve", attr))
	}
	if !c.Node.HasAttribute(attr) {
		return nil
	}
	var out []rdf.Term
	for _, tok := range strings.Fields(c.Node.GetAttribute(attr)) {
		if term := c.resolve(kind, tok); term != nil {
			out = append(out, term)
		}
	}
	return out
}

// ResolveFirst resolves the listed single-valued attributes in order
// and returns the first reference that resolves, nil when none does.
// An attribute that is present but fails to resolve does not stop the
// scan.
func (c *Context) ResolveFirst(attrs ...string) rdf.Term {
	for _, attr := range attrs {
		if term := c.Resolve(attr); term != nil {
			return term
		}
	}
	return nil
}

func (c *Context) resolve(kind attrKind, val string) rdf.Term {
	switch kind {
	case kindURI:
		return c.resolveURI(val)
	case kindCURIEOrURI:
		return c.resolveCURIEOrURI(val)
	default:
		return c.resolveTermOrCURIEOrAbsURI(val)
	}
}

// resolveURI treats val as a URI, resolved against the base. An empty
// value denotes the base itself. When the base has no scheme the
// document came from a local file, and relative values are joined
// without a scheme check.
func (c *Context) resolveURI(val string) rdf.Term {
	if val == "" {
		return rdf.IRI(c.Base)
	}
	if c.baseScheme() == "" {
		if schemeOf(val) == "" {
			return c.join(val, false)
		}
		return c.makeIRI(val, true)
	}
	return c.join(val, true)
}

// resolveCURIEOrURI tries val as a CURIE and falls back to a URI. A
// safe CURIE ("[...]") never falls back: an unresolvable one is
// reported and dropped. Under RDFa 1.1 a resolved CURIE that still has
// no scheme is re-anchored on the base.
func (c *Context) resolveCURIEOrURI(val string) rdf.Term {
	if val == "" {
		return rdf.IRI(c.Base)
	}

	safeCURIE := false
	if val[0] == '[' {
		if val[len(val)-1] != ']' {
			c.Options.Warn(diag.KindIllegalSafeCURIE,
				fmt.Sprintf("Illegal safe CURIE: %s; ignored", val), c.Node.Name)
			return nil
		}
		val = val[1 : len(val)-1]
		safeCURIE = true
	}

	if c.Version.AtLeast(host.Version11) {
		if ret := c.resolver.CURIEToURI(val); ret != nil {
			if iri, ok := ret.(rdf.IRI); ok && schemeOf(string(iri)) == "" {
				return rdf.IRI(c.Base + string(iri))
			}
			return ret
		}
		if safeCURIE {
			c.Options.Warn(diag.KindUnresolvablePrefix,
				fmt.Sprintf("Safe CURIE is used, but the value does not correspond to a defined CURIE: [%s]; ignored", val), c.Node.Name)
			return nil
		}
		return c.resolveURI(val)
	}

	if safeCURIE {
		return c.resolver.CURIEToURI(val)
	}
	return c.resolveURI(val)
}

// resolveTermOrCURIEOrAbsURI tries val as a term, then as a CURIE,
// then, under RDFa 1.1 only, as an absolute URI. Relative URIs are not
// allowed in this position.
func (c *Context) resolveTermOrCURIEOrAbsURI(val string) rdf.Term {
	if val == "" {
		return nil
	}

	if curie.IsTerm(val) {
		if ret := c.resolver.TermToURI(val); ret != nil {
			return ret
		}
		c.Options.Warn(diag.KindUndefinedTerm,
			fmt.Sprintf("'%s' is used as a term, but has not been defined as such; ignored", val), c.Node.Name)
		return nil
	}

	if ret := c.resolver.CURIEToURI(val); ret != nil {
		return ret
	}

	if c.Version.AtLeast(host.Version11) {
		scheme := schemeOf(val)
		if scheme == "" {
			c.Options.Warn(diag.KindNonLegalCURIERef,
				fmt.Sprintf("Relative URI is not allowed in this position (or not a legal CURIE reference) '%s'; ignored", val), c.Node.Name)
			return nil
		}
		if !host.KnownURIScheme(scheme) {
			c.Options.Warn(diag.KindUnusualURIScheme,
				fmt.Sprintf("Unusual URI scheme used in <%s>; may that be a mistake, e.g., by using an undefined CURIE prefix?", val), c.Node.Name)
		}
		return rdf.IRI(val)
	}

	c.Options.Warn(diag.KindUndefinedCURIE,
		fmt.Sprintf("Undefined CURIE: '%s'; ignored", val), c.Node.Name)
	return nil
}

// join resolves v against the base. URL resolution drops a dangling
// "#" or "?", which a round-trippable reference must keep, so the last
// character of v is restored when it got swallowed.
func (c *Context) join(v string, check bool) rdf.Term {
	if c.baseURL == nil {
		return c.makeIRI(v, check)
	}
	ref, err := url.Parse(v)
	if err != nil {
		return c.makeIRI(v, check)
	}
	joined := c.baseURL.ResolveReference(ref).String()
	if v != "" && joined != "" && v[len(v)-1] != joined[len(joined)-1] {
		joined += string(v[len(v)-1])
	}
	return c.makeIRI(joined, check)
}

// makeIRI produces the final IRI, warning about a scheme outside the
// registered set when check is on.
func (c *Context) makeIRI(uri string, check bool) rdf.Term {
	val := strings.TrimSpace(uri)
	if check && !host.KnownURIScheme(schemeOf(val)) {
		c.Options.Warn(diag.KindUnusualURIScheme,
			fmt.Sprintf("Unusual URI scheme used in <%s>; may that be a mistake, e.g., by using an undefined CURIE prefix?", val), c.Node.Name)
	}
	return rdf.IRI(val)
}

func (c *Context) baseScheme() string {
	if c.baseURL == nil {
		return ""
	}
	return c.baseURL.Scheme
}

func schemeOf(v string) string {
	u, err := url.Parse(v)
	if err != nil {
		return ""
	}
	return u.Scheme
}
