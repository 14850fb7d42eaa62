package dom

// DeepEqual reports structural equality of two subtrees: same kind, same
// name/data/namespace, same attribute set regardless of order, and deeply
// equal children. Node identity, parents and live form-control state do not
// participate.
func DeepEqual(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type || a.Data != b.Data || a.Namespace != b.Namespace {
		return false
	}
	if !attrsEqual(a.Attr, b.Attr) {
		return false
	}
	ca, cb := a.FirstChild, b.FirstChild
	for ca != nil && cb != nil {
		if !DeepEqual(ca, cb) {
			return false
		}
		ca, cb = ca.NextSibling, cb.NextSibling
	}
	return ca == nil && cb == nil
}

func attrsEqual(a, b []Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.Namespace == y.Namespace && x.Key == y.Key {
				if x.Val != y.Val {
					return false
				}
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CloneDeep returns a deep copy of n with no parent or sibling links. Live
// form-control state is copied along with the structure.
func CloneDeep(n *Node) *Node {
	c := &Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	if n.props != nil {
		p := *n.props
		c.props = &p
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(CloneDeep(ch))
	}
	return c
}
