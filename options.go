package morphlex

import "github.com/morphlex/morphlex/dom"

// Options configures a single morph call. The zero value morphs with no
// observers and without preserving user-edited form state. All callback
// fields are optional; an absent before-hook behaves as if it returned true.
//
// Callbacks run synchronously while the engine walks the tree. They may read
// the tree but must not start another morph on an overlapping subtree; queue
// such work and run it after the outer call returns.
type Options struct {
	// PreserveChanges keeps the live state of form controls the user has
	// edited (value, checked, selected) even when the reference declares a
	// different value.
	PreserveChanges bool

	// BeforeNodeVisited gates the visit of a matched pair. Returning false
	// skips attributes, children and AfterNodeVisited for that pair.
	BeforeNodeVisited func(from, to *dom.Node) bool
	// AfterNodeVisited fires once the pair and its whole subtree have been
	// processed.
	AfterNodeVisited func(from, to *dom.Node)

	// BeforeNodeAdded gates the insertion of a new node. The node argument
	// is the reference node about to be cloned; insertionPoint is the
	// current child it would be inserted before (nil appends).
	BeforeNodeAdded func(parent, node, insertionPoint *dom.Node) bool
	// AfterNodeAdded receives the inserted clone.
	AfterNodeAdded func(node *dom.Node)

	// BeforeNodeRemoved gates a removal. A replacement is cancelled unless
	// both its BeforeNodeRemoved and BeforeNodeAdded approve.
	BeforeNodeRemoved func(node *dom.Node) bool
	// AfterNodeRemoved receives the detached node.
	AfterNodeRemoved func(node *dom.Node)

	// BeforeAttributeUpdated gates a single attribute mutation. newValue is
	// nil for removals. Returning false leaves the attribute untouched.
	BeforeAttributeUpdated func(element *dom.Node, name string, newValue *string) bool
	// AfterAttributeUpdated reports a committed attribute mutation.
	// previousValue is nil when the attribute was previously absent.
	AfterAttributeUpdated func(element *dom.Node, name string, previousValue *string)

	// BeforeChildrenVisited gates the entire child-matching phase for one
	// parent.
	BeforeChildrenVisited func(parent *dom.Node) bool
	// AfterChildrenVisited fires after the parent's child list has been
	// reconciled.
	AfterChildrenVisited func(parent *dom.Node)
}

// nil-safe hook invocation; the engine only ever goes through these.

func (o *Options) beforeNodeVisited(from, to *dom.Node) bool {
	return o.BeforeNodeVisited == nil || o.BeforeNodeVisited(from, to)
}

func (o *Options) afterNodeVisited(from, to *dom.Node) {
	if o.AfterNodeVisited != nil {
		o.AfterNodeVisited(from, to)
	}
}

func (o *Options) beforeNodeAdded(parent, node, insertionPoint *dom.Node) bool {
	return o.BeforeNodeAdded == nil || o.BeforeNodeAdded(parent, node, insertionPoint)
}

func (o *Options) afterNodeAdded(node *dom.Node) {
	if o.AfterNodeAdded != nil {
		o.AfterNodeAdded(node)
	}
}

func (o *Options) beforeNodeRemoved(node *dom.Node) bool {
	return o.BeforeNodeRemoved == nil || o.BeforeNodeRemoved(node)
}

func (o *Options) afterNodeRemoved(node *dom.Node) {
	if o.AfterNodeRemoved != nil {
		o.AfterNodeRemoved(node)
	}
}

func (o *Options) beforeAttributeUpdated(element *dom.Node, name string, newValue *string) bool {
	return o.BeforeAttributeUpdated == nil || o.BeforeAttributeUpdated(element, name, newValue)
}

func (o *Options) afterAttributeUpdated(element *dom.Node, name string, previousValue *string) {
	if o.AfterAttributeUpdated != nil {
		o.AfterAttributeUpdated(element, name, previousValue)
	}
}

func (o *Options) beforeChildrenVisited(parent *dom.Node) bool {
	return o.BeforeChildrenVisited == nil || o.BeforeChildrenVisited(parent)
}

func (o *Options) afterChildrenVisited(parent *dom.Node) {
	if o.AfterChildrenVisited != nil {
		o.AfterChildrenVisited(parent)
	}
}
