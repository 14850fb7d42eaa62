package dom

import "strings"

// props records the live form-control state of an element. Each live field
// shadows its declared default (the corresponding attribute or, for textarea,
// the text content) only once it has been explicitly set, mirroring how a
// browser separates a control's value property from its value attribute.
type props struct {
	value       string
	valueSet    bool
	checked     bool
	checkedSet  bool
	selected    bool
	selectedSet bool

	indeterminate bool
	disabled      bool
	disabledSet   bool
}

func (n *Node) ensureProps() *props {
	if n.props == nil {
		n.props = &props{}
	}
	return n.props
}

// IsFormStateElement reports whether n is one of the element kinds carrying
// user-editable state: input, option, textarea or select.
func (n *Node) IsFormStateElement() bool {
	if n.Type != ElementNode {
		return false
	}
	switch n.Data {
	case "input", "option", "textarea", "select":
		return true
	}
	return false
}

// InputType returns the control type of an input element, defaulting to
// "text" when the type attribute is absent, and "" for non-input elements.
func (n *Node) InputType() string {
	if n.Type != ElementNode || n.Data != "input" {
		return ""
	}
	if t, ok := n.LookupAttr("type"); ok && t != "" {
		return strings.ToLower(t)
	}
	return "text"
}

// Value returns the live value of a form control. Until SetValue is called,
// it tracks the declared default.
func (n *Node) Value() string {
	if n.props != nil && n.props.valueSet {
		return n.props.value
	}
	return n.DefaultValue()
}

// SetValue sets the live value, detaching it from the declared default.
func (n *Node) SetValue(s string) {
	p := n.ensureProps()
	p.value = s
	p.valueSet = true
}

// ResetValue drops the live value so that it tracks the declared default
// again.
func (n *Node) ResetValue() {
	if n.props != nil {
		n.props.valueSet = false
		n.props.value = ""
	}
}

// DefaultValue returns the declared default value: the value attribute for
// most controls, the text content for textarea.
func (n *Node) DefaultValue() string {
	if n.Type == ElementNode && n.Data == "textarea" {
		return n.TextContent()
	}
	return n.GetAttr("value")
}

// SetDefaultValue updates the declared default without touching live state.
func (n *Node) SetDefaultValue(s string) {
	if n.Type == ElementNode && n.Data == "textarea" {
		n.SetTextContent(s)
		return
	}
	n.SetAttr("value", s)
}

// Checked returns the live checked state. Until SetChecked is called, it
// tracks the checked attribute.
func (n *Node) Checked() bool {
	if n.props != nil && n.props.checkedSet {
		return n.props.checked
	}
	return n.DefaultChecked()
}

// SetChecked sets the live checked state.
func (n *Node) SetChecked(v bool) {
	p := n.ensureProps()
	p.checked = v
	p.checkedSet = true
}

// DefaultChecked reports the presence of the checked attribute.
func (n *Node) DefaultChecked() bool {
	return n.HasAttr("checked")
}

// Selected returns the live selected state. Until SetSelected is called, it
// tracks the selected attribute.
func (n *Node) Selected() bool {
	if n.props != nil && n.props.selectedSet {
		return n.props.selected
	}
	return n.DefaultSelected()
}

// SetSelected sets the live selected state.
func (n *Node) SetSelected(v bool) {
	p := n.ensureProps()
	p.selected = v
	p.selectedSet = true
}

// DefaultSelected reports the presence of the selected attribute.
func (n *Node) DefaultSelected() bool {
	return n.HasAttr("selected")
}

// Indeterminate returns the live indeterminate state of a checkbox.
func (n *Node) Indeterminate() bool {
	return n.props != nil && n.props.indeterminate
}

// SetIndeterminate sets the live indeterminate state.
func (n *Node) SetIndeterminate(v bool) {
	n.ensureProps().indeterminate = v
}

// Disabled returns the live disabled state, tracking the disabled attribute
// until SetDisabled is called.
func (n *Node) Disabled() bool {
	if n.props != nil && n.props.disabledSet {
		return n.props.disabled
	}
	return n.HasAttr("disabled")
}

// SetDisabled sets the live disabled state.
func (n *Node) SetDisabled(v bool) {
	p := n.ensureProps()
	p.disabled = v
	p.disabledSet = true
}
