// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
// Copyright 2026 The Morphlex Authors
//  - Standalone Node struct with form-state properties and state-preserving
//    in-parent repositioning.

package dom

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// A NodeType is the type of a Node.
type NodeType uint32

const (
	ErrorNode NodeType = iota
	TextNode
	DocumentNode
	ElementNode
	CommentNode
	DoctypeNode
	CdataNode
	FragmentNode
)

const whitespace = " \t\r\n\f"

// A Node consists of a NodeType and some Data (local name for element nodes,
// content for text, comment and CDATA nodes). A node is part of a tree of
// Nodes. Element nodes may also have a Namespace, an ordered attribute list
// and a lazily allocated record of form-state properties.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type      NodeType
	DataAtom  atom.Atom
	Data      string
	Namespace string
	Attr      []Attribute

	props *props
}

// An Attribute is an attribute namespace-key-value triple.
type Attribute struct {
	Namespace, Key, Val string
}

// NewElement returns a detached element node with the given lowercased tag.
func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
}

// NewText returns a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// TagName returns the lowercased local name for element nodes and the empty
// string for every other kind.
func (n *Node) TagName() string {
	if n.Type != ElementNode {
		return ""
	}
	return n.Data
}

// ID returns the value of the id attribute, or "".
func (n *Node) ID() string {
	v, _ := n.LookupAttr("id")
	return v
}

// IsWhitespaceText reports whether n is a text node consisting solely of
// whitespace. The empty text node counts as whitespace.
func (n *Node) IsWhitespaceText() bool {
	return n.Type == TextNode && strings.Trim(n.Data, whitespace) == ""
}

// GetAttr returns the value of the named attribute, or "" if absent.
func (n *Node) GetAttr(key string) string {
	v, _ := n.LookupAttr(key)
	return v
}

// LookupAttr returns the value of the named attribute and whether it is set.
// Only attributes without a namespace are considered.
func (n *Node) LookupAttr(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.LookupAttr(key)
	return ok
}

// SetAttr sets the named attribute, updating it in place if already present
// so that attribute order is stable.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute if present.
func (n *Node) RemoveAttr(key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// TextContent returns the concatenated text of all descendant text nodes.
// For text, comment and CDATA nodes it returns the node's own data.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode, CommentNode, CdataNode:
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces the node's content. For leaf kinds the data is
// assigned directly; for parent kinds all children are replaced with a single
// text node (or none, when s is empty).
func (n *Node) SetTextContent(s string) {
	switch n.Type {
	case TextNode, CommentNode, CdataNode:
		n.Data = s
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	if s != "" {
		n.AppendChild(NewText(s))
	}
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case newChild
// is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("dom: InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds a node c as a child of n.
//
// It will panic if c already has a parent or siblings.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("dom: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have
// no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("dom: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// MoveBefore repositions child so that it sits immediately before anchor in
// n's child list, appending when anchor is nil. Unlike a RemoveChild followed
// by InsertBefore, a node that is already a child of n is relinked in place
// without passing through a detached state, so host state attached to the
// node survives the move.
//
// It will panic if anchor is non-nil and not a child of n.
func (n *Node) MoveBefore(child, anchor *Node) {
	if anchor != nil && anchor.Parent != n {
		panic("dom: MoveBefore called with a non-child anchor")
	}
	if child == anchor || (anchor == nil && n.LastChild == child && child.Parent == n) {
		return
	}
	if child.Parent == n {
		// unlink without clearing, then relink
		if n.FirstChild == child {
			n.FirstChild = child.NextSibling
		}
		if n.LastChild == child {
			n.LastChild = child.PrevSibling
		}
		if child.PrevSibling != nil {
			child.PrevSibling.NextSibling = child.NextSibling
		}
		if child.NextSibling != nil {
			child.NextSibling.PrevSibling = child.PrevSibling
		}
		var prev, next *Node
		if anchor != nil {
			prev, next = anchor.PrevSibling, anchor
		} else {
			prev = n.LastChild
		}
		if prev != nil {
			prev.NextSibling = child
		} else {
			n.FirstChild = child
		}
		if next != nil {
			next.PrevSibling = child
		} else {
			n.LastChild = child
		}
		child.PrevSibling = prev
		child.NextSibling = next
		return
	}
	child.Remove()
	n.InsertBefore(child, anchor)
}

// Children returns a snapshot of n's child list.
func (n *Node) Children() []*Node {
	var cs []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cs = append(cs, c)
	}
	return cs
}
