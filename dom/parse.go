package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads an HTML document from r and returns its root document node.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return fromHTML(doc), nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(markup string) (*Node, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFragment parses markup as a fragment in the given element context and
// returns the resulting top-level nodes. A nil context parses as body
// content. The empty string yields an empty slice.
func ParseFragment(markup string, context *Node) ([]*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	if context != nil && context.Type == ElementNode {
		ctx = &html.Node{
			Type:     html.ElementNode,
			DataAtom: context.DataAtom,
			Data:     context.Data,
		}
	}
	ns, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	out := make([]*Node, 0, len(ns))
	for _, n := range ns {
		out = append(out, fromHTML(n))
	}
	return out, nil
}

// fromHTML converts an x/net/html tree into a dom tree. CDATA sections,
// which the HTML5 tokenizer surfaces as comments wrapping "[CDATA[...]]",
// become CdataNode nodes.
func fromHTML(src *html.Node) *Node {
	n := &Node{
		DataAtom:  src.DataAtom,
		Data:      src.Data,
		Namespace: src.Namespace,
	}
	switch src.Type {
	case html.DocumentNode:
		n.Type = DocumentNode
	case html.ElementNode:
		n.Type = ElementNode
	case html.TextNode, html.RawNode:
		n.Type = TextNode
	case html.CommentNode:
		if d, ok := cdataPayload(src.Data); ok {
			n.Type = CdataNode
			n.Data = d
		} else {
			n.Type = CommentNode
		}
	case html.DoctypeNode:
		n.Type = DoctypeNode
	default:
		n.Type = ErrorNode
	}
	if len(src.Attr) > 0 {
		n.Attr = make([]Attribute, len(src.Attr))
		for i, a := range src.Attr {
			n.Attr[i] = Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
		}
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		n.AppendChild(fromHTML(c))
	}
	return n
}

func cdataPayload(comment string) (string, bool) {
	if strings.HasPrefix(comment, "[CDATA[") && strings.HasSuffix(comment, "]]") {
		return comment[len("[CDATA[") : len(comment)-len("]]")], true
	}
	return "", false
}
