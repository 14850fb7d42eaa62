package morphlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphlex/morphlex/dom"
)

func TestBeforeNodeVisitedVeto(t *testing.T) {
	cur := mustOne(t, `<div id="x" class="old"><span>a</span></div>`)
	ref := mustOne(t, `<div id="x" class="new"><em>b</em></div>`)

	var afterVisits int
	err := Morph(cur, ref, &Options{
		BeforeNodeVisited: func(from, _ *dom.Node) bool { return from.ID() != "x" },
		AfterNodeVisited:  func(*dom.Node, *dom.Node) { afterVisits++ },
	})
	require.NoError(t, err)

	assert.Equal(t, "old", cur.GetAttr("class"))
	assert.Equal(t, "span", cur.FirstChild.Data)
	assert.Zero(t, afterVisits)
}

func TestAfterNodeVisitedFiresAfterSubtree(t *testing.T) {
	cur := mustOne(t, `<div id="p"><span id="c">a</span></div>`)
	ref := mustOne(t, `<div id="p" class="x"><span id="c">b</span></div>`)

	var order []string
	err := Morph(cur, ref, &Options{
		BeforeNodeVisited: func(from, _ *dom.Node) bool {
			if from.Type == dom.ElementNode {
				order = append(order, "before:"+from.ID())
			}
			return true
		},
		AfterNodeVisited: func(from, _ *dom.Node) {
			if from.Type == dom.ElementNode {
				order = append(order, "after:"+from.ID())
			}
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"before:p", "before:c", "after:c", "after:p"}, order)
}

func TestBeforeNodeRemovedVeto(t *testing.T) {
	cur := mustOne(t, `<div><p id="keep">A</p><span id="x">B</span></div>`)
	ref := mustOne(t, `<div><p id="keep">A</p></div>`)

	var afterRemoves int
	err := Morph(cur, ref, &Options{
		BeforeNodeRemoved: func(n *dom.Node) bool { return n.ID() != "x" },
		AfterNodeRemoved:  func(*dom.Node) { afterRemoves++ },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p", "span"}, childTags(cur), "the vetoed node stays")
	assert.Zero(t, afterRemoves)
}

func TestBeforeNodeAddedVeto(t *testing.T) {
	cur := mustOne(t, `<div><p>A</p></div>`)
	ref := mustOne(t, `<div><p>A</p><em>B</em></div>`)

	var afterAdds int
	err := Morph(cur, ref, &Options{
		BeforeNodeAdded: func(_, node, _ *dom.Node) bool { return node.Data != "em" },
		AfterNodeAdded:  func(*dom.Node) { afterAdds++ },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p"}, childTags(cur))
	assert.Zero(t, afterAdds)
}

func TestReplaceRequiresBothApprovals(t *testing.T) {
	tests := []struct {
		name            string
		allowRemove     bool
		allowAdd        bool
		wantReplaced    bool
		wantAfterEvents int
	}{
		{"both approve", true, true, true, 2},
		{"removal refused", false, true, false, 0},
		{"addition refused", true, false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, span := attached(t, `<span>x</span>`)
			ref := mustOne(t, `<em>y</em>`)

			var afterEvents int
			err := Morph(span, ref, &Options{
				BeforeNodeRemoved: func(*dom.Node) bool { return tt.allowRemove },
				BeforeNodeAdded:   func(*dom.Node, *dom.Node, *dom.Node) bool { return tt.allowAdd },
				AfterNodeRemoved:  func(*dom.Node) { afterEvents++ },
				AfterNodeAdded:    func(*dom.Node) { afterEvents++ },
			})
			require.NoError(t, err)

			if tt.wantReplaced {
				assert.Equal(t, "em", parent.FirstChild.Data)
			} else {
				assert.Same(t, span, parent.FirstChild)
			}
			assert.Equal(t, tt.wantAfterEvents, afterEvents)
		})
	}
}

func TestChildrenVisitedGate(t *testing.T) {
	cur := mustOne(t, `<div class="a"><p>old</p></div>`)
	ref := mustOne(t, `<div class="b"><p>new</p></div>`)

	var afterChildren int
	err := Morph(cur, ref, &Options{
		BeforeChildrenVisited: func(*dom.Node) bool { return false },
		AfterChildrenVisited:  func(*dom.Node) { afterChildren++ },
	})
	require.NoError(t, err)

	assert.Equal(t, "b", cur.GetAttr("class"), "attributes still morph")
	assert.Equal(t, "old", cur.TextContent(), "children phase was skipped")
	assert.Zero(t, afterChildren)
}

func TestMorphInner(t *testing.T) {
	cur := mustOne(t, `<div class="keep"><p id="a">old</p></div>`)
	ref := mustOne(t, `<div class="discarded"><p id="a">new</p><p id="b">extra</p></div>`)
	pA := cur.FirstChild

	require.NoError(t, MorphInner(cur, ref, nil))

	assert.Equal(t, "keep", cur.GetAttr("class"), "outer attributes untouched")
	assert.Equal(t, []string{"a", "b"}, childIDs(cur))
	assert.Same(t, pA, cur.FirstChild)
	assert.Equal(t, "new", pA.TextContent())
}

func TestMorphInnerErrors(t *testing.T) {
	div := mustOne(t, `<div></div>`)
	span := mustOne(t, `<span></span>`)
	text := dom.NewText("x")

	assert.ErrorIs(t, MorphInner(div, span, nil), ErrInvalidInnerMorph)
	assert.ErrorIs(t, MorphInner(text, div, nil), ErrInvalidInnerMorph)
	assert.ErrorIs(t, MorphInner(div, text, nil), ErrInvalidInnerMorph)
}

func TestMorphInnerString(t *testing.T) {
	cur := mustOne(t, `<ul><li id="a">one</li></ul>`)

	require.NoError(t, MorphInnerString(cur, `<ul><li id="a">uno</li><li id="b">dos</li></ul>`, nil))
	assert.Equal(t, []string{"a", "b"}, childIDs(cur))

	err := MorphInnerString(cur, `<p></p><p></p>`, nil)
	assert.ErrorIs(t, err, ErrInvalidInnerMorph)

	err = MorphInnerString(cur, `just text`, nil)
	assert.ErrorIs(t, err, ErrInvalidInnerMorph)
}

func TestIdentityPreservedAcrossSubtrees(t *testing.T) {
	cur := mustOne(t, `<div><section><p id="deep">x</p></section><aside></aside></div>`)
	ref := mustOne(t, `<div><aside></aside><section><p id="deep">y</p></section></div>`)

	var deep *dom.Node
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.ID() == "deep" {
			deep = n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(cur)
	require.NotNil(t, deep)

	require.NoError(t, Morph(cur, ref, nil))

	assert.Equal(t, []string{"aside", "section"}, childTags(cur))
	assert.Same(t, deep, cur.LastChild.FirstChild)
	assert.Equal(t, "y", deep.TextContent())
}
