// Package dom provides the markup tree the distiller walks: a minimal
// element/text node model with ordered attributes, built from HTML or
// XML input. Attribute names keep their source prefix form ("xml:lang",
// "xmlns:dc"), which is what CURIE prefix processing needs.
package dom

import "strings"

// NodeType distinguishes element nodes from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// Attr is a single attribute with its name as written in the source.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of the parsed document tree.
type Node struct {
	Type     NodeType
	Name     string // element local name, lowercased for HTML input
	Space    string // element namespace as reported by the parser
	Data     string // text content for TextNode
	Attrs    []Attr
	Parent   *Node
	Children []*Node
}

// Doctype carries the document type declaration, when present.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
}

// Document is a parsed markup document.
type Document struct {
	Root    *Node
	Doctype Doctype
}

// NodeName returns the element name, empty for text nodes.
func (n *Node) NodeName() string {
	if n.Type != ElementNode {
		return ""
	}
	return n.Name
}

// HasAttribute reports whether the attribute is present, even with an
// empty value.
func (n *Node) HasAttribute(name string) bool {
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// GetAttribute returns the attribute value, or "" when absent.
func (n *Node) GetAttribute(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetAttribute sets or replaces an attribute. Document transforms use
// this before the walk starts.
func (n *Node) SetAttribute(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild adds c as the last child and sets its parent.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Elements returns the element children in document order.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the concatenated text content of the subtree, in
// document order and with no normalization.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Type == TextNode {
			b.WriteString(cur.Data)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Find returns the first element named name in a pre-order walk of the
// subtree rooted at n, including n itself, or nil.
func (n *Node) Find(name string) *Node {
	if n.Type == ElementNode && n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if c.Type != ElementNode {
			continue
		}
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element named name in the subtree rooted at n,
// including n itself, in document order.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Type == ElementNode && cur.Name == name {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			if c.Type == ElementNode {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}
