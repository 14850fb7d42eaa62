package morphlex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"

	"github.com/morphlex/morphlex/dom"
)

// ErrInvalidInnerMorph is the sentinel matched by errors.Is for inner-morph
// argument failures.
var ErrInvalidInnerMorph = errors.New("invalid inner morph")

// ErrNoParent reports an entry point that needed the current node's parent
// (to insert trailing reference nodes or to remove the node) while the node
// was detached.
var ErrNoParent = errors.New("node has no parent")

// A ParseError wraps a failure to turn a markup string into usable reference
// nodes.
type ParseError struct {
	Markup string
	Err    error
}

func (e *ParseError) Error() string {
	return "morphlex: parse reference markup: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// An InnerMorphError reports MorphInner being invoked on anything other than
// a matching element pair. HTMLContext renders a snippet of the offending
// current node and its surroundings for diagnostics.
type InnerMorphError struct {
	From, To *dom.Node
	Reason   string
}

func (e *InnerMorphError) Error() string {
	return fmt.Sprintf("morphlex: %v: %s", ErrInvalidInnerMorph, e.Reason)
}

func (e *InnerMorphError) Unwrap() error {
	return ErrInvalidInnerMorph
}

func (e *InnerMorphError) HTMLContext() string {
	if e.From == nil {
		return ""
	}
	return renderErrorContext(buildErrorContext(e.From))
}

// errorContextBuilder is a type to organize helper functions for building error context trees.
type errorContextBuilder struct{}

func (b errorContextBuilder) addPrevSiblings(doc *etree.Element, n *dom.Node) {
	c := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.IsWhitespaceText() {
			continue
		}
		if c == 2 {
			doc.InsertChildAt(0, etree.NewText("..."))
			break
		}
		b.addNode(doc, s, 0)
		c++
	}
}

func (b errorContextBuilder) addNextSiblings(doc *etree.Element, n *dom.Node) {
	c := 0
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.IsWhitespaceText() {
			continue
		}
		if c == 2 {
			doc.AddChild(etree.NewText("..."))
			break
		}
		b.addNode(doc, s, -1)
		c++
	}
}

func (b errorContextBuilder) addNode(doc *etree.Element, n *dom.Node, at int) {
	var tok etree.Token
	switch n.Type {
	case dom.ElementNode:
		el := etree.NewElement(n.Data)
		el.Attr = make([]etree.Attr, len(n.Attr))
		for i, a := range n.Attr {
			el.Attr[i] = etree.Attr{Space: a.Namespace, Key: a.Key, Value: a.Val}
		}
		if hasElementChild(n) {
			el.AddChild(etree.NewText("..."))
		} else {
			el.SetText(n.TextContent())
		}
		tok = el
	case dom.TextNode:
		if n.IsWhitespaceText() {
			return
		}
		tok = etree.NewText(n.Data)
	default:
		return
	}
	if at >= 0 {
		doc.InsertChildAt(at, tok)
	} else {
		doc.AddChild(tok)
	}
}

func (b errorContextBuilder) wrapParent(doc *etree.Element, n *dom.Node) *etree.Element {
	parent := n.Parent
	if parent == nil || parent.Type != dom.ElementNode {
		return doc
	}
	doc.Tag = parent.Data
	doc.Attr = make([]etree.Attr, len(parent.Attr))
	for i, a := range parent.Attr {
		doc.Attr[i] = etree.Attr{Space: a.Namespace, Key: a.Key, Value: a.Val}
	}
	wrapper := &etree.Element{}
	wrapper.AddChild(doc)
	return wrapper
}

func hasElementChild(n *dom.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == dom.ElementNode {
			return true
		}
	}
	return false
}

// buildErrorContext creates a small tree around the node n to provide context for an error.
func buildErrorContext(n *dom.Node) *etree.Element {
	doc := &etree.Element{}
	b := errorContextBuilder{}
	b.addNode(doc, n, -1)
	b.addPrevSiblings(doc, n)
	b.addNextSiblings(doc, n)
	doc = b.wrapParent(doc, n)
	return doc
}

func renderErrorContext(doc *etree.Element) string {
	dst := &html.Node{Type: html.DocumentNode}

	var render func(*html.Node, *etree.Element)
	render = func(dst *html.Node, src *etree.Element) {
		for _, c := range src.Child {
			switch t := c.(type) {
			case *etree.Element:
				n := &html.Node{Type: html.ElementNode, Data: t.FullTag()}
				for _, a := range t.Attr {
					n.Attr = append(n.Attr, html.Attribute{Namespace: a.Space, Key: a.Key, Val: a.Value})
				}
				dst.AppendChild(n)
				render(n, t)
			case *etree.CharData:
				dst.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data})
			}
		}
	}

	render(dst, doc)

	var buf strings.Builder
	_ = html.Render(&buf, dst)

	return buf.String()
}
