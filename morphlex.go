// Package morphlex transforms an existing tree of markup nodes in place so
// that its structure and attributes become equivalent to a reference tree.
// Node identity is preserved wherever possible, so external state attached
// to a node (focus, user input, scroll offset, embedded media position)
// survives the transformation, and reordering emits the minimum number of
// moves compatible with the reference shape.
//
// The engine is strictly synchronous and keeps no state between calls.
// Observer callbacks on Options may veto or watch every mutation; they must
// not start a nested morph on an overlapping subtree.
package morphlex

import (
	"fmt"

	"github.com/morphlex/morphlex/dom"
)

// Morph transforms from in place until it is equivalent to to. from keeps
// its identity when the two nodes form a matching pair, and also when both
// are leaves of the same kind (text, comment, CDATA), whose text is copied
// over. Otherwise from is replaced within its parent, subject to the removal
// and addition hooks; a detached from is left unchanged.
func Morph(from, to *dom.Node, o *Options) error {
	morph(from, to, o)
	return nil
}

// morph runs one full call and returns the per-call state so white-box
// tests can inspect the mutation counters.
func morph(from, to *dom.Node, o *Options) *morpher {
	m := newMorpher(o)
	indexIDs(m.ids, from)
	indexIDs(m.ids, to)
	flagDirtyControls(from)
	m.morphPair(from, to)
	return m
}

// MorphNodes morphs from against an ordered sequence of reference nodes. An
// empty sequence removes from (subject to veto). A single node behaves like
// Morph. With two or more nodes, from is morphed against the first and
// clones of the remainder are inserted immediately after it, in order.
func MorphNodes(from *dom.Node, to []*dom.Node, o *Options) error {
	if o == nil {
		o = &Options{}
	}
	switch len(to) {
	case 0:
		if from.Parent == nil {
			return fmt.Errorf("morphlex: remove current node: %w", ErrNoParent)
		}
		if o.beforeNodeRemoved(from) {
			from.Remove()
			o.afterNodeRemoved(from)
		}
		return nil
	case 1:
		return Morph(from, to[0], o)
	}

	parent, anchor := from.Parent, from.NextSibling
	if parent == nil {
		return fmt.Errorf("morphlex: insert trailing reference nodes: %w", ErrNoParent)
	}
	if err := Morph(from, to[0], o); err != nil {
		return err
	}
	for _, r := range to[1:] {
		if !o.beforeNodeAdded(parent, r, anchor) {
			continue
		}
		clone := dom.CloneDeep(r)
		parent.InsertBefore(clone, anchor)
		o.afterNodeAdded(clone)
	}
	return nil
}

// MorphString parses markup as a fragment in the context of from's parent
// and morphs from against the resulting node sequence.
func MorphString(from *dom.Node, markup string, o *Options) error {
	nodes, err := parseReference(from, markup)
	if err != nil {
		return err
	}
	return MorphNodes(from, nodes, o)
}

// MorphInner reconciles only the children of from against the children of
// to. Both arguments must be elements with equal local name; the outer
// element's attributes are left untouched. Fails with ErrInvalidInnerMorph
// otherwise.
func MorphInner(from, to *dom.Node, o *Options) error {
	if from == nil || from.Type != dom.ElementNode {
		return &InnerMorphError{From: from, To: to, Reason: "current node is not an element"}
	}
	if to == nil || to.Type != dom.ElementNode {
		return &InnerMorphError{From: from, To: to, Reason: "reference node is not an element"}
	}
	if from.Data != to.Data || from.Namespace != to.Namespace {
		return &InnerMorphError{
			From: from, To: to,
			Reason: fmt.Sprintf("element names differ: %q vs %q", from.Data, to.Data),
		}
	}
	m := newMorpher(o)
	indexIDs(m.ids, from)
	indexIDs(m.ids, to)
	flagDirtyControls(from)
	m.morphInner(from, to)
	return nil
}

// MorphInnerString parses markup, which must yield exactly one element, and
// behaves like MorphInner against it.
func MorphInnerString(from *dom.Node, markup string, o *Options) error {
	nodes, err := parseReference(from, markup)
	if err != nil {
		return err
	}
	if len(nodes) != 1 || nodes[0].Type != dom.ElementNode {
		return &InnerMorphError{
			From: from,
			Reason: fmt.Sprintf("reference markup must parse to a single element, got %d nodes",
				len(nodes)),
		}
	}
	return MorphInner(from, nodes[0], o)
}

// MorphDocument delegates to Morph on the two documents' root elements.
func MorphDocument(from, to *dom.Node, o *Options) error {
	fr := rootElement(from)
	tr := rootElement(to)
	if fr == nil || tr == nil {
		return &ParseError{Err: fmt.Errorf("document has no root element")}
	}
	return Morph(fr, tr, o)
}

func parseReference(from *dom.Node, markup string) ([]*dom.Node, error) {
	var ctx *dom.Node
	if from != nil && from.Parent != nil && from.Parent.Type == dom.ElementNode {
		ctx = from.Parent
	}
	nodes, err := dom.ParseFragment(markup, ctx)
	if err != nil {
		return nil, &ParseError{Markup: markup, Err: err}
	}
	return nodes, nil
}

func rootElement(doc *dom.Node) *dom.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == dom.ElementNode {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == dom.ElementNode {
			return c
		}
	}
	return nil
}
