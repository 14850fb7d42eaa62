package morphlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphlex/morphlex/dom"
)

// runMatch indexes both parents and runs the matcher over their child lists.
func runMatch(t *testing.T, cur, ref *dom.Node) childMatching {
	t.Helper()
	m := newMorpher(nil)
	indexIDs(m.ids, cur)
	indexIDs(m.ids, ref)
	return m.matchChildren(cur.Children(), ref.Children())
}

func TestMatchExactID(t *testing.T) {
	cur := mustOne(t, `<ul><li id="a">one</li><li id="b">two</li></ul>`)
	ref := mustOne(t, `<ul><li id="b">TWO</li><li id="a">ONE</li></ul>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{1, 0}, res.match)
	assert.Empty(t, res.unmatched)
}

func TestMatchIDSetOverlap(t *testing.T) {
	// the containers have no ids of their own; their descendants do
	cur := mustOne(t, `<div><section><p id="x">a</p></section><section><p id="y">b</p></section></div>`)
	ref := mustOne(t, `<div><section><p id="y">B</p></section><section><p id="x">A</p></section></div>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{1, 0}, res.match)
}

func TestMatchStableAttribute(t *testing.T) {
	cur := mustOne(t, `<div><a href="/one">1</a><a href="/two">2</a></div>`)
	ref := mustOne(t, `<div><a href="/two">II</a><a href="/one">I</a></div>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{1, 0}, res.match)
}

func TestMatchTagNameFallback(t *testing.T) {
	cur := mustOne(t, `<div><span>a</span><p>b</p></div>`)
	ref := mustOne(t, `<div><p>B</p><span>A</span></div>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{1, 0}, res.match)
}

func TestMatchInputTypeGate(t *testing.T) {
	cur := mustOne(t, `<form><input type="text"></form>`)
	ref := mustOne(t, `<form><input type="checkbox"></form>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{-1}, res.match)
	assert.Equal(t, []int{0}, res.unmatched)
}

func TestMatchDeepEqualElementFirst(t *testing.T) {
	// pass 1 claims the structurally identical candidate even though pass 5
	// would have offered an earlier same-tag one
	cur := mustOne(t, `<div><p class="a">x</p><p class="b">y</p></div>`)
	ref := mustOne(t, `<div><p class="b">y</p></div>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{1}, res.match)
	assert.Equal(t, []int{0}, res.unmatched)
}

func TestMatchNonElementKinds(t *testing.T) {
	cur := mustOne(t, `<div><!--note-->text</div>`)
	ref := mustOne(t, `<div>other<!--changed--></div>`)

	res := runMatch(t, cur, ref)

	// text matches text, comment matches comment, by kind (pass 7)
	assert.Equal(t, []int{1, 0}, res.match)
}

func TestMatchFirstCandidateWins(t *testing.T) {
	cur := mustOne(t, `<ul><li>a</li><li>b</li><li>c</li></ul>`)
	ref := mustOne(t, `<ul><li>z</li></ul>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{0}, res.match)
	assert.Equal(t, []int{1, 2}, res.unmatched)
}

func TestWhitespaceAsymmetry(t *testing.T) {
	t.Run("current whitespace is removable", func(t *testing.T) {
		cur := mustOne(t, "<ul><li>a</li> <li>b</li></ul>")
		ref := mustOne(t, "<ul><li>a</li><li>b</li></ul>")

		res := runMatch(t, cur, ref)

		require.Equal(t, []int{0, 2}, res.match)
		assert.Equal(t, []int{1}, res.unmatched, "whitespace text should be left for removal")
	})

	t.Run("matching reference whitespace is kept via deep equality", func(t *testing.T) {
		cur := mustOne(t, "<ul><li>a</li> <li>b</li></ul>")
		ref := mustOne(t, "<ul><li>a</li> <li>b</li></ul>")

		res := runMatch(t, cur, ref)

		assert.Equal(t, []int{0, 1, 2}, res.match)
		assert.Empty(t, res.unmatched)
	})

	t.Run("reference whitespace is created anew", func(t *testing.T) {
		cur := mustOne(t, "<ul><li>a</li><li>b</li></ul>")
		ref := mustOne(t, "<ul><li>a</li>\n<li>b</li></ul>")

		require.NoError(t, Morph(cur, ref, nil))

		assert.Equal(t, "<ul><li>a</li>\n<li>b</li></ul>", rendered(t, cur))
	})

	t.Run("whitespace never matches by kind alone", func(t *testing.T) {
		cur := mustOne(t, "<div>\t</div>")
		ref := mustOne(t, "<div>  </div>")

		res := runMatch(t, cur, ref)

		// different whitespace is not deep-equal, so no pairing happens
		assert.Equal(t, []int{-1}, res.match)
		assert.Equal(t, []int{0}, res.unmatched)
	})
}

func TestMatchedOnlyOnce(t *testing.T) {
	cur := mustOne(t, `<ul><li id="a">x</li></ul>`)
	ref := mustOne(t, `<ul><li id="a">y</li><li id="a">z</li></ul>`)

	res := runMatch(t, cur, ref)

	assert.Equal(t, []int{0, -1}, res.match)
	assert.Empty(t, res.unmatched)
}
