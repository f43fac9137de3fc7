package dictology

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func testTypes() *Types {
	return NewTypes(Type[int](), Type[float64](), Type[string]())
}

func TestNode_Assign(t *testing.T) {
	dict := testTypes().New()
	first, err := dict.Child("first")
	require.Nil(t, err)
	require.Nil(t, Assign(first, 3.14))
	second, _ := dict.Child("second")
	require.Nil(t, Assign(second, 1))
	third, _ := dict.Child("third")
	require.Nil(t, Assign(third, "hello"))

	{ //values are retrievable
		f, err := As[float64](first)
		assert.Nil(t, err)
		assert.Equal(t, 3.14, *f)
		i, err := As[int](second)
		assert.Nil(t, err)
		assert.Equal(t, 1, *i)
		s, err := As[string](third)
		assert.Nil(t, err)
		assert.Equal(t, "hello", *s)
	}
	{ //values are retrieved with the exact type
		_, err := As[int](first)
		assert.ErrorIs(t, err, ErrTypeMismatch)
		_, err = As[float64](second)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	}
	{ //dictionaries are hierarchical
		leaf, err := dict.Child("level1", "level2", "level3")
		require.Nil(t, err)
		require.Nil(t, Assign(leaf, "some data"))
		found, err := dict.Lookup("level1", "level2", "level3")
		require.Nil(t, err)
		s, err := As[string](found)
		assert.Nil(t, err)
		assert.Equal(t, "some data", *s)
	}
	{ //assignment overwrites map and value
		level1, _ := dict.Child("level1")
		require.Nil(t, Assign(level1, 7))
		assert.True(t, level1.IsValue())
		assert.False(t, level1.Contains("level2"))
		require.Nil(t, Assign(level1, "x"))
		_, err := As[int](level1)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	}
}

func TestNode_UnsupportedType(t *testing.T) {
	node := NewTypes(Type[int]()).New()
	assert.ErrorIs(t, Assign(node, "text"), ErrUnsupportedType)
	assert.ErrorIs(t, node.SetValue(int64(1)), ErrUnsupportedType)
	assert.ErrorIs(t, node.SetValue(nil), ErrUnsupportedType)
	assert.True(t, node.IsEmpty())

	var zero Node
	assert.ErrorIs(t, Assign(&zero, 1), ErrUnsupportedType)
}

func TestNode_State(t *testing.T) {
	var testCases = []struct {
		description string
		build       func(n *Node) *Node
		expectKind  Kind
		isNode      bool
		isEmpty     bool
		isValue     bool
		expectLen   int
	}{
		{
			description: "empty",
			build:       func(n *Node) *Node { return n },
			expectKind:  EmptyKind,
			isEmpty:     true,
			expectLen:   0,
		},
		{
			description: "value",
			build: func(n *Node) *Node {
				_ = Assign(n, 10)
				return n
			},
			expectKind: firstValueKind,
			isValue:    true,
			expectLen:  1,
		},
		{
			description: "string value",
			build: func(n *Node) *Node {
				_ = Assign(n, "abc")
				return n
			},
			expectKind: firstValueKind + 2,
			isValue:    true,
			expectLen:  1,
		},
		{
			description: "node",
			build: func(n *Node) *Node {
				_ = Set(n, "a", 1)
				_ = Set(n, "b/c", 1.5)
				_, _ = n.Child("c")
				return n
			},
			expectKind: NodeKind,
			isNode:     true,
			expectLen:  3,
		},
	}

	for _, testCase := range testCases {
		node := testCase.build(testTypes().New())
		assert.Equal(t, testCase.expectKind, node.Kind(), testCase.description)
		assert.Equal(t, testCase.isNode, node.IsNode(), testCase.description)
		assert.Equal(t, testCase.isEmpty, node.IsEmpty(), testCase.description)
		assert.Equal(t, testCase.isValue, node.IsValue(), testCase.description)
		assert.Equal(t, testCase.isValue, node.IsLeaf(), testCase.description)
		assert.Equal(t, testCase.expectLen, node.Len(), testCase.description)
	}
}

func TestNode_Child(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "x", 7))

	x, err := dict.Child("x")
	require.Nil(t, err)
	_, err = x.Child("child")
	assert.ErrorIs(t, err, ErrInvalidKeyAccess)
	_, err = dict.Child("x", "child")
	assert.ErrorIs(t, err, ErrInvalidKeyAccess)

	self, err := dict.Child()
	assert.Nil(t, err)
	assert.Same(t, dict, self)

	a1, _ := dict.Child("a")
	a2, _ := dict.Child("a")
	assert.Same(t, a1, a2)
	assert.True(t, a1.IsEmpty())
}

func TestNode_Lookup(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "first", 3.14))
	require.Nil(t, Set(dict, "second/third", 3))

	first, err := dict.Lookup("first")
	require.Nil(t, err)
	f, err := As[float64](first)
	assert.Nil(t, err)
	assert.Equal(t, 3.14, *f)

	second, err := dict.Lookup("second")
	require.Nil(t, err)
	_, err = As[float64](second)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = dict.Lookup("one", "two")
	assert.ErrorIs(t, err, ErrInvalidKeyAccess)
	assert.False(t, dict.Contains("one"))

	_, err = dict.Lookup("first", "any")
	assert.ErrorIs(t, err, ErrInvalidKeyAccess)

	empty := testTypes().New()
	_, err = empty.Lookup("a")
	assert.ErrorIs(t, err, ErrInvalidKeyAccess)
	assert.True(t, empty.IsEmpty())
}

func TestNode_Contains(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "this/is/the/source", 3.14))

	this, _ := dict.Lookup("this")
	assert.True(t, this.Contains("is"))
	assert.False(t, dict.Contains("is"))
	the, _ := dict.Lookup("this", "is", "the")
	assert.True(t, the.Contains("source"))
	source, _ := the.Lookup("source")
	assert.False(t, source.Contains("nothing"))
	assert.False(t, testTypes().New().Contains("x"))
}

func TestAsOr(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "value", 2))
	require.Nil(t, Set(dict, "node/leaf", 2))
	empty, _ := dict.Child("empty")

	ret, err := AsOr(empty, 42)
	assert.Nil(t, err)
	assert.Equal(t, 42, *ret)
	*ret = 1
	assert.True(t, empty.IsEmpty())

	value, _ := dict.Lookup("value")
	ret, err = AsOr(value, 42)
	assert.Nil(t, err)
	assert.Equal(t, 2, *ret)

	_, err = AsOr(value, 4.2)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	node, _ := dict.Lookup("node")
	_, err = AsOr(node, 42)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestAs_References(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "0/1", 3.5))
	node, _ := dict.Lookup("0", "1")

	{ //value access by value does a copy
		v, _ := As[float64](node)
		copied := *v
		copied = 10.
		assert.NotEqual(t, copied, node.Value())
	}
	{ //value access by pointer does not copy
		v, _ := As[float64](node)
		*v = 10.
		actual, err := GetValue[float64](dict, "0/1")
		assert.Nil(t, err)
		assert.Equal(t, 10., actual)
	}
}

func TestNode_Clone(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "0/1", 3.5))
	require.Nil(t, Set(dict, "0/2/1", 55.))
	require.Nil(t, Set(dict, "0/2/2", 56.))
	require.Nil(t, Set(dict, "0/2/3/1/1", 666.))

	{ //nodes access by value does copy
		src, _ := dict.Lookup("0")
		node := src.Clone()
		require.Nil(t, Set(node, "1", 100))
		require.Nil(t, Set(node, "2/3/1/1", 42))
		v, _ := GetValue[float64](dict, "0/1")
		assert.Equal(t, 3.5, v)
		v, _ = GetValue[float64](dict, "0/2/3/1/1")
		assert.Equal(t, 666., v)
		assert.False(t, node.Equal(src))
	}
	{ //mutating the source does not change the copy
		clone := dict.Clone()
		assert.True(t, clone.Equal(dict))
		require.Nil(t, Set(dict, "0/2/1", 1.))
		v, _ := GetValue[float64](clone, "0/2/1")
		assert.Equal(t, 55., v)
	}
	{ //nodes access by reference doesn't copy
		node, _ := dict.Lookup("0")
		require.Nil(t, Set(node, "1", 100))
		require.Nil(t, Set(node, "2/3/1/1", 42))
		v, _ := GetValue[int](dict, "0/1")
		assert.Equal(t, 100, v)
		v, _ = GetValue[int](dict, "0/2/3/1/1")
		assert.Equal(t, 42, v)
	}
}

func TestNode_CopyFrom(t *testing.T) {
	dict := testTypes().New()
	require.Nil(t, Set(dict, "this/is/the/source", 3.14))
	this, _ := dict.Lookup("this")
	destination, _ := dict.Child("destination")
	require.Nil(t, destination.CopyFrom(this))

	v, err := GetValue[float64](dict, "destination/is/the/source")
	assert.Nil(t, err)
	assert.Equal(t, 3.14, v)

	require.Nil(t, Set(dict, "destination/is/the/source", 1.0))
	v, _ = GetValue[float64](dict, "this/is/the/source")
	assert.Equal(t, 3.14, v)

	{ //copy of an ancestor into a descendant
		leaf, _ := dict.Child("this", "is", "the")
		require.Nil(t, leaf.CopyFrom(this))
		v, err := GetValue[float64](dict, "this/is/the/is/the/source")
		assert.Nil(t, err)
		assert.Equal(t, 3.14, v)
	}

	other := NewTypes(Type[int]()).New()
	assert.ErrorIs(t, other.CopyFrom(dict), ErrUnsupportedType)
}

func TestNode_Children(t *testing.T) {
	dict := testTypes().New()
	for _, key := range []string{"zeta", "alpha", "Beta", "mid", "", "alpha2"} {
		require.Nil(t, Set(dict, key, 1))
	}
	require.Nil(t, Set(dict, "third/level2", "hello"))

	expect := []string{"", "Beta", "alpha", "alpha2", "mid", "third", "zeta"}
	assert.Equal(t, expect, dict.Keys())
	assert.Equal(t, len(expect), dict.Len())

	visit, err := dict.Children()
	require.Nil(t, err)
	keys, err := visit.Keys()
	assert.Nil(t, err)
	assert.Equal(t, expect, keys)

	count := 0
	err = visit(func(key string, child *Node) (bool, error) {
		count++
		return child.IsValue(), nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 6, count)

	leaf, _ := dict.Lookup("zeta")
	_, err = leaf.Children()
	assert.ErrorIs(t, err, ErrNotIterable)
	empty, _ := dict.Child("this node is empty")
	_, err = empty.Children()
	assert.ErrorIs(t, err, ErrNotIterable)
	assert.Nil(t, empty.Keys())
}

func TestNode_ValueAndType(t *testing.T) {
	types := NewTypes(Type[int](), Type[time.Time](), Type[int]())
	assert.Equal(t, 2, types.Len())
	dict := types.New()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.Nil(t, Set(dict, "ts", ts))
	require.Nil(t, Set(dict, "n", 3))

	node, _ := dict.Lookup("ts")
	assert.Equal(t, ts, node.Value())
	assert.Equal(t, "time.Time", node.Type().String())
	assert.Nil(t, dict.Value())
	assert.Nil(t, dict.Type())
	assert.Equal(t, "node", dict.Kind().String())
	assert.Equal(t, "value#1", node.Kind().String())

	clone := dict.Clone()
	assert.True(t, clone.Equal(dict))
	require.Nil(t, Set(clone, "ts", ts.In(time.FixedZone("X", 3600))))
	assert.True(t, clone.Equal(dict))
	require.Nil(t, Set(clone, "n", 4))
	assert.False(t, clone.Equal(dict))
}
