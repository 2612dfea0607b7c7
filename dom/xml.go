package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// FromXML parses an XML document (XHTML, SVG, Atom, or generic XML)
// into a document tree. Named HTML entities are accepted, since XHTML
// content routinely uses them without a DTD.
func FromXML(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Type: ElementNode, Name: t.Name.Local, Space: t.Name.Space}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: xmlAttrName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				doc.Root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].AppendChild(&Node{Type: TextNode, Data: string(t)})
			}
		case xml.Directive:
			if dt, ok := parseDoctype(string(t)); ok {
				doc.Doctype = dt
			}
		}
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return doc, nil
}

// xmlAttrName reconstructs the prefixed attribute name the decoder
// split apart. The xml and xmlns prefixes are never declared, so the
// decoder reports them verbatim in Space.
func xmlAttrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	default:
		return name.Space + ":" + name.Local
	}
}

// parseDoctype extracts name and identifiers from a DOCTYPE directive
// body such as:
//
//	DOCTYPE html PUBLIC "-//W3C//DTD XHTML+RDFa 1.0//EN" "http://www.w3.org/MarkUp/DTD/xhtml-rdfa-1.dtd"
func parseDoctype(directive string) (Doctype, bool) {
	fields := strings.Fields(directive)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "DOCTYPE") {
		return Doctype{}, false
	}
	dt := Doctype{Name: fields[1]}

	quoted := strings.Split(directive, `"`)
	switch {
	case len(fields) >= 3 && strings.EqualFold(fields[2], "PUBLIC"):
		if len(quoted) >= 2 {
			dt.PublicID = quoted[1]
		}
		if len(quoted) >= 4 {
			dt.SystemID = quoted[3]
		}
	case len(fields) >= 3 && strings.EqualFold(fields[2], "SYSTEM"):
		if len(quoted) >= 2 {
			dt.SystemID = quoted[1]
		}
	}
	return dt, true
}
