package dom

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// FromHTML parses HTML5 content into a document tree. The parser is
// forgiving, so an error here means the input could not be read at all.
func FromHTML(r io.Reader) (*Document, error) {
	parsed, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{}
	var convert func(src *html.Node, parent *Node)
	convert = func(src *html.Node, parent *Node) {
		switch src.Type {
		case html.DoctypeNode:
			doc.Doctype = Doctype{Name: src.Data}
			for _, a := range src.Attr {
				switch a.Key {
				case "public":
					doc.Doctype.PublicID = a.Val
				case "system":
					doc.Doctype.SystemID = a.Val
				}
			}
			return
		case html.TextNode:
			if parent != nil {
				parent.AppendChild(&Node{Type: TextNode, Data: src.Data})
			}
			return
		case html.ElementNode:
			n := &Node{Type: ElementNode, Name: src.Data, Space: src.Namespace}
			for _, a := range src.Attr {
				name := a.Key
				if a.Namespace != "" {
					name = a.Namespace + ":" + a.Key
				}
				n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Val})
			}
			if parent == nil {
				doc.Root = n
			} else {
				parent.AppendChild(n)
			}
			parent = n
		case html.DocumentNode:
			// Children carry the content.
		default:
			return
		}
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			convert(c, parent)
		}
	}
	convert(parsed, nil)

	if doc.Root == nil {
		return nil, fmt.Errorf("parse html: no root element")
	}
	return doc, nil
}
