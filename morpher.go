package morphlex

import "github.com/morphlex/morphlex/dom"

// moveBeforeAvailable reports whether the tree primitive offers the
// state-preserving in-parent reposition. It is queried once per call; when it
// returns false the engine falls back to detach-and-insert moves.
var moveBeforeAvailable = func() bool { return true }

// morpher is the per-call state of one morph. Nothing in it survives the
// call: the ID index is built up front and only read afterwards, and the
// mutation counters exist for white-box tests.
type morpher struct {
	opts          *Options
	ids           map[*dom.Node]idSet
	canMoveBefore bool

	moves, adds, removes int
}

func newMorpher(o *Options) *morpher {
	if o == nil {
		o = &Options{}
	}
	return &morpher{
		opts:          o,
		ids:           make(map[*dom.Node]idSet),
		canMoveBefore: moveBeforeAvailable(),
	}
}

// visitFrame is one entry of the explicit descent stack. Pathological trees
// can be deep, so the pair morpher trades recursion for a work stack; a
// leaving frame fires AfterNodeVisited once the pair's whole subtree has
// been processed.
type visitFrame struct {
	from, to *dom.Node
	leaving  bool
}

// morphPair reconciles the pair (from, to) and every matched descendant
// pair beneath it.
func (m *morpher) morphPair(from, to *dom.Node) {
	stack := []visitFrame{{from: from, to: to}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.leaving {
			m.opts.afterNodeVisited(f.from, f.to)
			continue
		}
		if f.from == f.to || dom.DeepEqual(f.from, f.to) {
			continue
		}
		if !m.opts.beforeNodeVisited(f.from, f.to) {
			continue
		}
		stack = append(stack, visitFrame{from: f.from, to: f.to, leaving: true})

		if !isMatchingPair(f.from, f.to) {
			m.replaceOrSetText(f.from, f.to)
			continue
		}

		m.morphAttributes(f.from, f.to)

		if f.from.Data == "textarea" {
			m.morphTextarea(f.from, f.to)
			continue
		}
		if f.from.FirstChild == nil && f.to.FirstChild == nil {
			continue
		}
		if !m.opts.beforeChildrenVisited(f.from) {
			continue
		}
		pairs := m.morphChildren(f.from, f.to)
		m.opts.afterChildrenVisited(f.from)
		for i := len(pairs) - 1; i >= 0; i-- {
			stack = append(stack, visitFrame{from: pairs[i].from, to: pairs[i].to})
		}
	}
}

// isMatchingPair reports whether the two nodes form a matching element pair:
// equal local name, and for input controls equal input type, so a text input
// is never morphed into a checkbox.
func isMatchingPair(a, b *dom.Node) bool {
	if a.Type != dom.ElementNode || b.Type != dom.ElementNode {
		return false
	}
	if a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if a.Data == "input" && a.InputType() != b.InputType() {
		return false
	}
	return true
}

// replaceOrSetText handles a non-matching pair: same-kind leaves get their
// text copied, anything else is replaced wholesale. The replacement commits
// only when both the removal and the addition are approved.
func (m *morpher) replaceOrSetText(from, to *dom.Node) {
	if from.Type == to.Type && isLeafKind(from.Type) {
		if from.Data != to.Data {
			from.SetTextContent(to.Data)
		}
		return
	}
	parent := from.Parent
	if parent == nil {
		return
	}
	if !m.opts.beforeNodeRemoved(from) || !m.opts.beforeNodeAdded(parent, to, from) {
		return
	}
	clone := dom.CloneDeep(to)
	parent.InsertBefore(clone, from)
	parent.RemoveChild(from)
	m.adds++
	m.removes++
	m.opts.afterNodeAdded(clone)
	m.opts.afterNodeRemoved(from)
}

func isLeafKind(t dom.NodeType) bool {
	return t == dom.TextNode || t == dom.CommentNode || t == dom.CdataNode
}

// morphInner reconciles only the child lists of an already-matching element
// pair, leaving the outer element's attributes alone.
func (m *morpher) morphInner(from, to *dom.Node) {
	if !m.opts.beforeChildrenVisited(from) {
		return
	}
	pairs := m.morphChildren(from, to)
	m.opts.afterChildrenVisited(from)
	for _, p := range pairs {
		m.morphPair(p.from, p.to)
	}
}
