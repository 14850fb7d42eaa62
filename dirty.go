package morphlex

import "github.com/morphlex/morphlex/dom"

// DirtyAttr is the transient marker attribute set on form controls whose
// live state differs from their declared defaults when the call begins.
// Observers may read it; the attribute pass strips it from every element it
// visits. Elements the morph never visits keep the marker.
const DirtyAttr = "morphlex-dirty"

// flagDirtyControls walks the current tree before any mutation and marks
// every named form control whose user-visible state has drifted from its
// declared default. The marker is what later lets the attribute pass tell
// "the reference wants a new value" apart from "the user typed something".
func flagDirtyControls(root *dom.Node) {
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.IsFormStateElement() && n.GetAttr("name") != "" && controlIsDirty(n) {
			n.SetAttr(DirtyAttr, "")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

func controlIsDirty(n *dom.Node) bool {
	return n.Value() != n.DefaultValue() ||
		n.Checked() != n.DefaultChecked() ||
		n.Selected() != n.DefaultSelected()
}
