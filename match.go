package morphlex

import "github.com/morphlex/morphlex/dom"

// childMatching is the outcome of the seven-pass matcher for one parent
// pair: match[j] is the current-child index paired with reference child j,
// or -1, and unmatched lists the current indices left over for removal. Each
// current index is used at most once.
type childMatching struct {
	match     []int
	unmatched []int
}

// matchChildren pairs up the reference children with the current children.
// Seven predicate passes run in a fixed order, each scanning the remaining
// reference children left to right and claiming the first still-free
// candidate that satisfies the predicate, so the result is deterministic.
//
// Whitespace-only text nodes are asymmetric: on the reference side they
// never need a match (an unmatched one is simply created anew), and on the
// current side they are first-class removal candidates that only an exact
// deep-equality in pass 6 can save.
func (m *morpher) matchChildren(cur, ref []*dom.Node) childMatching {
	match := make([]int, len(ref))
	for j := range match {
		match[j] = -1
	}
	used := make([]bool, len(cur))

	pass := func(refOK, candOK func(n *dom.Node) bool, pred func(c, r *dom.Node) bool) {
		for j, r := range ref {
			if match[j] >= 0 || !refOK(r) {
				continue
			}
			for i, c := range cur {
				if used[i] || !candOK(c) {
					continue
				}
				if pred(c, r) {
					match[j] = i
					used[i] = true
					break
				}
			}
		}
	}

	isElement := func(n *dom.Node) bool { return n.Type == dom.ElementNode }
	isNonElement := func(n *dom.Node) bool { return n.Type != dom.ElementNode }
	isNonElementNonWS := func(n *dom.Node) bool {
		return n.Type != dom.ElementNode && !n.IsWhitespaceText()
	}

	// 1. element deep-equality: identical subtrees pair up without recursion
	pass(isElement, isElement, dom.DeepEqual)

	// 2. exact id
	pass(isElement, isElement, func(c, r *dom.Node) bool {
		return sameTag(c, r) && c.ID() != "" && c.ID() == r.ID()
	})

	// 3. id-set overlap: containers whose descendant ids survive
	pass(isElement, isElement, func(c, r *dom.Node) bool {
		cs, ok := m.ids[c]
		if !ok {
			return false
		}
		rs, ok := m.ids[r]
		return ok && cs.intersects(rs)
	})

	// 4. stable-attribute heuristic
	pass(isElement, isElement, func(c, r *dom.Node) bool {
		return sameTag(c, r) && sharesStableAttr(c, r)
	})

	// 5. tag name (with input type agreement for form controls)
	pass(isElement, isElement, func(c, r *dom.Node) bool {
		if !sameTag(c, r) {
			return false
		}
		if c.Data == "input" && c.InputType() != r.InputType() {
			return false
		}
		return true
	})

	// 6. non-element deep-equality (the only pass whitespace can match in)
	pass(isNonElement, isNonElement, dom.DeepEqual)

	// 7. kind equality for the remaining non-whitespace leaves
	pass(isNonElementNonWS, isNonElementNonWS, func(c, r *dom.Node) bool {
		return c.Type == r.Type
	})

	var unmatched []int
	for i := range cur {
		if !used[i] {
			unmatched = append(unmatched, i)
		}
	}
	return childMatching{match: match, unmatched: unmatched}
}

func sameTag(a, b *dom.Node) bool {
	return a.Data == b.Data && a.Namespace == b.Namespace
}

var stableAttrs = [...]string{"name", "href", "src"}

func sharesStableAttr(a, b *dom.Node) bool {
	for _, key := range stableAttrs {
		av, aok := a.LookupAttr(key)
		if !aok || av == "" {
			continue
		}
		if bv, bok := b.LookupAttr(key); bok && bv == av {
			return true
		}
	}
	return false
}
