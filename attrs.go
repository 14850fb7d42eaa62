package morphlex

import "github.com/morphlex/morphlex/dom"

// morphAttributes brings from's attribute map to equality with to's in two
// passes: a forward pass over the reference attributes that adds and
// updates, then a backward pass over the current attributes that removes
// whatever the reference no longer declares. Form-state attributes (value,
// checked, selected) additionally sync the live control state, honoring
// PreserveChanges for controls the user has edited.
func (m *morpher) morphAttributes(from, to *dom.Node) {
	from.RemoveAttr(DirtyAttr)

	for _, ref := range to.Attr {
		if ref.Namespace == "" {
			m.syncLiveState(from, ref.Key, ref.Val)
		}
		prev, had := lookupAttr(from, ref.Namespace, ref.Key)
		if had && prev == ref.Val {
			continue
		}
		newVal := ref.Val
		if !m.opts.beforeAttributeUpdated(from, qualifiedName(ref), &newVal) {
			continue
		}
		setAttr(from, ref.Namespace, ref.Key, ref.Val)
		var prevPtr *string
		if had {
			p := prev
			prevPtr = &p
		}
		m.opts.afterAttributeUpdated(from, qualifiedName(ref), prevPtr)
	}

	for i := len(from.Attr) - 1; i >= 0; i-- {
		a := from.Attr[i]
		if _, had := lookupAttr(to, a.Namespace, a.Key); had {
			continue
		}
		if a.Namespace == "" {
			m.clearLiveState(from, a.Key)
		}
		if !m.opts.beforeAttributeUpdated(from, qualifiedName(a), nil) {
			continue
		}
		prev := a.Val
		from.Attr = append(from.Attr[:i], from.Attr[i+1:]...)
		m.opts.afterAttributeUpdated(from, qualifiedName(a), &prev)
	}
}

// syncLiveState applies the forward-pass rule for form-state attributes: the
// live property follows the reference unless PreserveChanges is on and the
// control is dirty (its live state has drifted from its declared default).
func (m *morpher) syncLiveState(el *dom.Node, key, refVal string) {
	switch key {
	case "value":
		if el.Data != "input" {
			return
		}
		cur := el.Value()
		if cur != refVal && (!m.opts.PreserveChanges || cur == el.DefaultValue()) {
			el.SetValue(refVal)
		}
	case "checked":
		if el.Data != "input" {
			return
		}
		if !el.Checked() && (!m.opts.PreserveChanges || el.Checked() == el.DefaultChecked()) {
			el.SetChecked(true)
		}
	case "selected":
		if el.Data != "option" {
			return
		}
		if !el.Selected() && (!m.opts.PreserveChanges || el.Selected() == el.DefaultSelected()) {
			el.SetSelected(true)
		}
	}
}

// clearLiveState applies the backward-pass rule for the boolean form-state
// attributes about to be removed.
func (m *morpher) clearLiveState(el *dom.Node, key string) {
	switch key {
	case "checked":
		if el.Data != "input" {
			return
		}
		if m.opts.PreserveChanges && el.Checked() != el.DefaultChecked() {
			return
		}
		el.SetChecked(false)
	case "selected":
		if el.Data != "option" {
			return
		}
		if m.opts.PreserveChanges && el.Selected() != el.DefaultSelected() {
			return
		}
		el.SetSelected(false)
	}
}

// morphTextarea replaces the control's text content, which also re-seeds its
// default value. The live value follows the new default unless the user had
// edited the control and PreserveChanges is on.
func (m *morpher) morphTextarea(from, to *dom.Node) {
	newDefault := to.TextContent()
	dirty := from.Value() != from.DefaultValue()
	if from.TextContent() != newDefault {
		from.SetTextContent(newDefault)
	}
	if !(m.opts.PreserveChanges && dirty) {
		from.ResetValue()
	}
}

// Attribute helpers aware of namespaced attributes (e.g. xlink:href inside
// inline SVG); the dom package accessors only address the common
// namespace-less case.

func lookupAttr(n *dom.Node, ns, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == ns && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *dom.Node, ns, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == ns && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, dom.Attribute{Namespace: ns, Key: key, Val: val})
}

func qualifiedName(a dom.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}
