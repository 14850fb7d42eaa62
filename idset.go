package morphlex

import (
	"sort"

	"github.com/morphlex/morphlex/dom"
)

// idSet is the set of non-empty descendant IDs of a node, kept as a sorted
// slice so that overlap tests are a single merge walk. The sets are tiny in
// practice; a sorted slice beats a map here.
type idSet []string

func (s idSet) insert(id string) idSet {
	i := sort.SearchStrings(s, id)
	if i < len(s) && s[i] == id {
		return s
	}
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = id
	return s
}

// intersects reports whether the two sorted sets share at least one member.
func (s idSet) intersects(t idSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(t) {
		switch {
		case s[i] == t[j]:
			return true
		case s[i] < t[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// indexIDs records, for every node in the subtree rooted at root whose
// subtree contains at least one element with a non-empty id, the set of those
// ids. The walk visits each identified element once and climbs its ancestor
// chain up to and including root. Duplicate ids collapse; id="" is ignored.
func indexIDs(index map[*dom.Node]idSet, root *dom.Node) {
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.Type == dom.ElementNode {
			if id := n.ID(); id != "" {
				for a := n; a != nil; a = a.Parent {
					index[a] = index[a].insert(id)
					if a == root {
						break
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}
