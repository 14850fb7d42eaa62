package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFragment(t *testing.T, markup string) []*Node {
	t.Helper()
	ns, err := ParseFragment(markup, nil)
	require.NoError(t, err)
	return ns
}

func mustOne(t *testing.T, markup string) *Node {
	t.Helper()
	ns := mustFragment(t, markup)
	require.Len(t, ns, 1)
	return ns[0]
}

func TestDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", `<div id="x"><span>a</span></div>`, `<div id="x"><span>a</span></div>`, true},
		{"attr order ignored", `<div id="x" class="y"></div>`, `<div class="y" id="x"></div>`, true},
		{"attr value differs", `<div id="x"></div>`, `<div id="y"></div>`, false},
		{"extra attr", `<div id="x"></div>`, `<div id="x" class="y"></div>`, false},
		{"tag differs", `<div></div>`, `<span></span>`, false},
		{"text differs", `<p>a</p>`, `<p>b</p>`, false},
		{"child count differs", `<ul><li></li></ul>`, `<ul><li></li><li></li></ul>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustOne(t, tt.a)
			b := mustOne(t, tt.b)
			assert.Equal(t, tt.want, DeepEqual(a, b))
		})
	}
}

func TestDeepEqualKinds(t *testing.T) {
	assert.True(t, DeepEqual(NewText("x"), NewText("x")))
	assert.False(t, DeepEqual(NewText("x"), &Node{Type: CommentNode, Data: "x"}))
	assert.True(t, DeepEqual(nil, nil))
	assert.False(t, DeepEqual(NewText("x"), nil))
}

func TestDeepEqualIgnoresIdentityAndParent(t *testing.T) {
	parent := NewElement("div")
	a := NewElement("span")
	parent.AppendChild(a)
	b := NewElement("span")

	assert.True(t, DeepEqual(a, b))
}

func TestCloneDeep(t *testing.T) {
	src := mustOne(t, `<form><input type="text" name="q" value="a"></form>`)
	input := src.FirstChild
	input.SetValue("typed")

	clone := CloneDeep(src)

	require.True(t, DeepEqual(src, clone))
	assert.Nil(t, clone.Parent)
	assert.NotSame(t, src, clone)
	assert.NotSame(t, input, clone.FirstChild)

	// live state travels with the clone but stays independent
	assert.Equal(t, "typed", clone.FirstChild.Value())
	clone.FirstChild.SetValue("other")
	assert.Equal(t, "typed", input.Value())
}
