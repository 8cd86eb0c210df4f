package mux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "root", path: "/", want: []string{""}},
		{name: "single segment", path: "/users", want: []string{"users"}},
		{name: "nested", path: "/users/42/posts", want: []string{"users", "42", "posts"}},
		{name: "trailing slash keeps empty segment", path: "/users/", want: []string{"users", ""}},
		{name: "double slash keeps empty segment", path: "/a//b", want: []string{"a", "", "b"}},
		{name: "empty path", path: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPath(tt.path))
		})
	}
}

func TestNodeDescend(t *testing.T) {
	log := quietLogger()

	t.Run("builds literal chain", func(t *testing.T) {
		root := &node[struct{}]{}
		leaf := root.descend(splitPath("/a/b/c"), "/a/b/c", log)

		require.NotNil(t, leaf)
		assert.Equal(t, "c", leaf.segment)
		assert.Same(t, leaf, root.children["a"].children["b"].children["c"])
	})

	t.Run("shares nodes between overlapping paths", func(t *testing.T) {
		root := &node[struct{}]{}
		first := root.descend(splitPath("/a/b"), "/a/b", log)
		second := root.descend(splitPath("/a/c"), "/a/c", log)

		assert.NotSame(t, first, second)
		assert.Len(t, root.children["a"].children, 2)
	})

	t.Run("variable segment becomes wildcard child", func(t *testing.T) {
		root := &node[struct{}]{}
		leaf := root.descend(splitPath("/users/:id"), "/users/:id", log)

		assert.Equal(t, "id", leaf.varName)
		assert.False(t, leaf.isSplat())
		assert.Same(t, leaf, root.children["users"].wild)
	})

	t.Run("conflicting variable name keeps the existing one", func(t *testing.T) {
		root := &node[struct{}]{}
		first := root.descend(splitPath("/users/:id"), "/users/:id", log)
		second := root.descend(splitPath("/users/:name"), "/users/:name", log)

		assert.Same(t, first, second)
		assert.Equal(t, "id", second.varName)
	})

	t.Run("catch-all is terminal", func(t *testing.T) {
		root := &node[struct{}]{}
		leaf := root.descend(splitPath("/files/*/ignored"), "/files/*/ignored", log)

		assert.True(t, leaf.isSplat())
		assert.Empty(t, leaf.children)
		assert.Nil(t, leaf.wild)
	})

	t.Run("catch-all beside named variable keeps the variable", func(t *testing.T) {
		root := &node[struct{}]{}
		named := root.descend(splitPath("/x/:id"), "/x/:id", log)
		splat := root.descend(splitPath("/x/*"), "/x/*", log)

		assert.Same(t, named, splat)
		assert.Equal(t, "id", splat.varName)
	})
}

func TestNodeSetHandler(t *testing.T) {
	t.Run("keeps the first handler", func(t *testing.T) {
		log := quietLogger()
		n := &node[struct{}]{}
		n.setHandler(textHandler("first"), "/p", log)
		n.setHandler(textHandler("second"), "/p", log)

		resp := n.handler(nil, nil)
		assert.Equal(t, "first", string(resp.Body()))
	})
}

func TestNodeRoutes(t *testing.T) {
	t.Run("rebuilds patterns from raw segments", func(t *testing.T) {
		log := quietLogger()
		root := &node[struct{}]{}
		h := textHandler("")
		root.descend(splitPath("/"), "/", log).setHandler(h, "/", log)
		root.descend(splitPath("/users/:id"), "/users/:id", log).setHandler(h, "/users/:id", log)
		root.descend(splitPath("/files/*"), "/files/*", log).setHandler(h, "/files/*", log)
		root.descend(splitPath("/users"), "/users", log) // inspector-only node, no handler

		var out []string
		root.routes("", &out)
		assert.ElementsMatch(t, []string{"/", "/users/:id", "/files/*"}, out)
	})
}
