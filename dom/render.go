package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Render serializes n as HTML to w. Fragment nodes serialize their children.
func Render(w io.Writer, n *Node) error {
	if n.Type == FragmentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(w, toHTML(c)); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, toHTML(n))
}

// RenderString serializes n as HTML.
func RenderString(n *Node) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func toHTML(src *Node) *html.Node {
	n := &html.Node{
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
	}
	switch src.Type {
	case DocumentNode:
		n.Type = html.DocumentNode
	case ElementNode:
		n.Type = html.ElementNode
	case TextNode:
		n.Type = html.TextNode
	case CommentNode:
		n.Type = html.CommentNode
	case CdataNode:
		n.Type = html.RawNode
		n.Data = "<![CDATA[" + src.Data + "]]>"
	case DoctypeNode:
		n.Type = html.DoctypeNode
	default:
		n.Type = html.ErrorNode
	}
	if len(src.Attr) > 0 {
		n.Attr = make([]html.Attribute, len(src.Attr))
		for i, a := range src.Attr {
			n.Attr[i] = html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
		}
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		n.AppendChild(toHTML(c))
	}
	return n
}
