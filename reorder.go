package morphlex

import "github.com/morphlex/morphlex/dom"

// matchedPair is a current/reference child pair queued for a later visit.
type matchedPair struct {
	from, to *dom.Node
}

// morphChildren reconciles the child list of from against the child list of
// to: unmatched current children are removed first, then a single
// left-to-right walk over the reference order moves, keeps or inserts nodes.
// Matched nodes belonging to the longest strictly-increasing subsequence of
// current indices are fixed points and never move, so the number of moves is
// exactly matched_count - |LIS|.
//
// It returns the matched pairs in reference order for the caller to descend
// into.
func (m *morpher) morphChildren(from, to *dom.Node) []matchedPair {
	cur := from.Children()
	ref := to.Children()
	res := m.matchChildren(cur, ref)

	// Removals happen before the reorder walk so the insertion point never
	// traverses soon-to-be-removed siblings.
	for _, i := range res.unmatched {
		n := cur[i]
		if !m.opts.beforeNodeRemoved(n) {
			continue
		}
		from.RemoveChild(n)
		m.removes++
		m.opts.afterNodeRemoved(n)
	}

	fixed := lisFixedPoints(res.match)

	insertionPoint := from.FirstChild
	pairs := make([]matchedPair, 0, len(ref))
	for j, i := range res.match {
		if i >= 0 {
			node := cur[i]
			if !fixed[i] {
				if m.canMoveBefore {
					from.MoveBefore(node, insertionPoint)
				} else if node != insertionPoint {
					from.RemoveChild(node)
					from.InsertBefore(node, insertionPoint)
				}
				m.moves++
			}
			pairs = append(pairs, matchedPair{from: node, to: ref[j]})
			insertionPoint = node.NextSibling
			continue
		}
		if !m.opts.beforeNodeAdded(from, ref[j], insertionPoint) {
			continue
		}
		clone := dom.CloneDeep(ref[j])
		from.InsertBefore(clone, insertionPoint)
		m.adds++
		m.opts.afterNodeAdded(clone)
		insertionPoint = clone.NextSibling
	}
	return pairs
}

// lisFixedPoints computes the longest strictly-increasing subsequence of the
// defined entries of seq via patience sorting with predecessor links, and
// returns the set of current-child indices that do not need to move.
func lisFixedPoints(seq []int) map[int]bool {
	prev := make([]int, len(seq))
	var tails []int // positions into seq; seq[tails[k]] is the smallest tail of an IS of length k+1
	for pos, v := range seq {
		if v < 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[pos] = tails[lo-1]
		} else {
			prev[pos] = -1
		}
		if lo == len(tails) {
			tails = append(tails, pos)
		} else {
			tails[lo] = pos
		}
	}
	fixed := make(map[int]bool, len(tails))
	if len(tails) > 0 {
		for p := tails[len(tails)-1]; p >= 0; p = prev[p] {
			fixed[seq[p]] = true
		}
	}
	return fixed
}
