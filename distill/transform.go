package distill

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/rdf"
)

// Tree transforms run once on the parsed document before traversal
// starts; per-node transforms run as the walk reaches each element.

// topAbout anchors the document: the root element gets @about="" when
// it carries none, and in the HTML family so do <head> and <body>
// unless they already name a resource. This is what makes document
// level metadata hang off the base URI.
func topAbout(root *dom.Node, opts *config.Options) {
	if !root.HasAttribute("about") {
		root.SetAttribute("about", "")
	}
	if !opts.HostLanguage.XHTMLFamily() {
		return
	}
	for _, name := range []string{"head", "body"} {
		for _, el := range root.FindAll(name) {
			if !hasAnyAttribute(el, "href", "resource", "about", "src") {
				el.SetAttribute("about", "")
			}
		}
	}
}

// metaName copies @name to @property on <meta> elements that carry no
// @property of their own, so legacy meta markup yields triples.
func metaName(root *dom.Node, opts *config.Options) {
	if !opts.HostLanguage.XHTMLFamily() {
		return
	}
	for _, meta := range root.FindAll("meta") {
		if meta.HasAttribute("name") && !meta.HasAttribute("property") {
			meta.SetAttribute("property", meta.GetAttribute("name"))
		}
	}
}

// Attributes outside the RDFa Lite subset.
var nonLiteAttributes = []string{"about", "inlist", "datatype", "rev", "rel"}

// liteWarnings reports markup outside the RDFa Lite subset. Nothing is
// removed; defining a Lite conformance level in the processor is not
// this tool's call, so the full markup is still processed.
func liteWarnings(node *dom.Node, opts *config.Options) {
	if node.Name != "meta" && node.HasAttribute("content") {
		opts.Warn(diag.KindLiteMarkup,
			"Attribute @content is not used in RDFa Lite, ignored", node.Name)
	} else {
		for _, attr := range nonLiteAttributes {
			if !node.HasAttribute(attr) {
				continue
			}
			msg := fmt.Sprintf("Attribute @%s is not used in RDFa Lite, ignored", attr)
			if attr == "rel" {
				msg = "Attribute @rel is not used in RDFa Lite, ignored (consider using @property)"
			}
			opts.Warn(diag.KindLiteMarkup, msg, node.Name)
		}
	}
	for _, child := range node.Children {
		if child.Type == dom.ElementNode {
			liteWarnings(child, opts)
		}
	}
}

// html5Extras maps HTML5 idioms onto the attributes the processing
// rules understand: <data value> and <time datetime> gain @content
// (the latter with a sniffed temporal datatype), and @data doubles as
// @src.
func html5Extras(node *dom.Node) {
	switch {
	case node.Name == "data" && !node.HasAttribute("content"):
		if node.HasAttribute("value") {
			node.SetAttribute("content", node.GetAttribute("value"))
		} else {
			node.SetAttribute("content", "")
		}
	case node.Name == "time" && !node.HasAttribute("content"):
		var value string
		if node.HasAttribute("datetime") {
			value = node.GetAttribute("datetime")
		} else {
			value = stripSpace(node.Text())
		}
		if !node.HasAttribute("datatype") {
			if dt := temporalType(value); dt != "" {
				node.SetAttribute("datatype", string(dt))
			}
		}
		node.SetAttribute("content", value)
	case node.HasAttribute("data") && !node.HasAttribute("src"):
		node.SetAttribute("src", node.GetAttribute("data"))
	}
}

// atomEntryType gives every <entry> an implicit typeof so Atom entries
// become typed subjects.
func atomEntryType(node *dom.Node) {
	if node.Name == "entry" && !node.HasAttribute("typeof") {
		node.SetAttribute("typeof", "")
	}
}

var temporalFormats = []struct {
	datatype rdf.IRI
	layouts  []string
}{
	{rdf.XSDGMonthDay, []string{"01-02"}},
	{rdf.XSDGYearMonth, []string{"2006-01"}},
	{rdf.XSDGYear, []string{"2006"}},
	{rdf.XSDDate, []string{"2006-01-02"}},
	{rdf.XSDTime, []string{"15:04", "15:04:05"}},
	{rdf.XSDDateTime, []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05Z07:00",
	}},
}

// temporalType sniffs the XSD datatype of an HTML5 date or time
// string, "" when the value matches none of the lexical forms.
func temporalType(value string) rdf.IRI {
	for _, f := range temporalFormats {
		for _, layout := range f.layouts {
			if _, err := time.Parse(layout, value); err == nil {
				return f.datatype
			}
		}
	}
	return ""
}

// stripSpace removes every whitespace character; <time> element
// content is compared against temporal lexical forms, which carry
// none.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

func hasAnyAttribute(n *dom.Node, names ...string) bool {
	for _, name := range names {
		if n.HasAttribute(name) {
			return true
		}
	}
	return false
}
