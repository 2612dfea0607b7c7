package dom

import "strings"

// RenderContent serializes the children of n back to markup, the form
// XML-literal generation needs. A non-empty defaultNS is declared on
// each top-level child element that does not set its own default
// namespace, so the fragment stays interpretable outside the document.
func RenderContent(n *Node, defaultNS string) string {
	var b strings.Builder
	for _, c := range n.Children {
		renderNode(&b, c, defaultNS)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, defaultNS string) {
	if n.Type == TextNode {
		b.WriteString(escapeText(n.Data))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Name)
	if defaultNS != "" && !n.HasAttribute("xmlns") {
		b.WriteString(` xmlns="`)
		b.WriteString(escapeAttr(defaultNS))
		b.WriteByte('"')
	}
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		renderNode(b, c, "")
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
	return r.Replace(s)
}
