package dictology

import (
	"fmt"
	"github.com/viant/dictology/visitor"
	"reflect"
	"slices"
)

// Node represents a tree cell: empty, an internal node with ordered children, or a leaf value.
//
// Child and Lookup return references into the tree; Clone and TryGetNode return
// independent deep copies.
type Node struct {
	types    *Types
	kind     Kind
	keys     []string
	children map[string]*Node
	value    interface{} //*T for a value kind
}

// New creates an empty root node bound to supplied type set
func New(types *Types) *Node {
	return types.New()
}

// Types returns node type set
func (n *Node) Types() *Types {
	return n.types
}

// Kind returns node active tag
func (n *Node) Kind() Kind {
	return n.kind
}

// IsNode returns true for an internal node
func (n *Node) IsNode() bool {
	return n.kind == NodeKind
}

// IsEmpty returns true for an empty node
func (n *Node) IsEmpty() bool {
	return n.kind == EmptyKind
}

// IsValue returns true if node holds a leaf value
func (n *Node) IsValue() bool {
	return n.kind.IsValue()
}

// IsLeaf returns true if node is neither internal nor empty
func (n *Node) IsLeaf() bool {
	return !n.IsNode() && !n.IsEmpty()
}

// Len returns number of children for an internal node, 1 for a value and 0 for an empty node
func (n *Node) Len() int {
	switch {
	case n.kind == NodeKind:
		return len(n.keys)
	case n.kind.IsValue():
		return 1
	}
	return 0
}

// Contains returns true if node is internal and has a child for supplied key
func (n *Node) Contains(key string) bool {
	if n.kind != NodeKind {
		return false
	}
	_, ok := n.children[key]
	return ok
}

// Child returns a child for supplied keys, missing nodes are created on the way
func (n *Node) Child(keys ...string) (*Node, error) {
	node := n
	for _, key := range keys {
		next, err := node.child(key)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

func (n *Node) child(key string) (*Node, error) {
	if err := n.ensureNode(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, key)
	}
	if ret, ok := n.children[key]; ok {
		return ret, nil
	}
	ret := &Node{types: n.types}
	n.insert(key, ret)
	return ret, nil
}

func (n *Node) ensureNode() error {
	switch n.kind {
	case NodeKind:
		return nil
	case EmptyKind:
		n.kind = NodeKind
		n.children = make(map[string]*Node)
		return nil
	}
	return fmt.Errorf("%w: node holds %v", ErrInvalidKeyAccess, n.typeName())
}

func (n *Node) insert(key string, child *Node) {
	pos, _ := slices.BinarySearch(n.keys, key)
	n.keys = slices.Insert(n.keys, pos, key)
	n.children[key] = child
}

// Lookup returns an existing child for supplied keys, it never creates nodes
func (n *Node) Lookup(keys ...string) (*Node, error) {
	node := n
	for _, key := range keys {
		if node.kind != NodeKind {
			return nil, fmt.Errorf("%w: %q, node is %v", ErrInvalidKeyAccess, key, node.typeName())
		}
		next, ok := node.children[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyAccess, key)
		}
		node = next
	}
	return node, nil
}

// Keys returns sorted child keys of an internal node
func (n *Node) Keys() []string {
	if n.kind != NodeKind {
		return nil
	}
	return slices.Clone(n.keys)
}

// Children returns a visitor over direct children in key order
func (n *Node) Children() (visitor.Visitor[string, *Node], error) {
	if n.kind != NodeKind {
		return nil, fmt.Errorf("%w: node is %v", ErrNotIterable, n.typeName())
	}
	return visitor.OrderedVisitorOf(n.Keys(), func(key string) (*Node, bool) {
		child, ok := n.children[key]
		return child, ok
	}), nil
}

// Value returns a copy of held leaf value or nil
func (n *Node) Value() interface{} {
	if valueType := n.types.valueType(n.kind); valueType != nil {
		return valueType.value(n.value)
	}
	return nil
}

// Type returns held leaf value type or nil
func (n *Node) Type() reflect.Type {
	return n.types.TypeOf(n.kind)
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	ret := &Node{types: n.types, kind: n.kind}
	switch {
	case n.kind == NodeKind:
		ret.keys = slices.Clone(n.keys)
		ret.children = make(map[string]*Node, len(n.children))
		for key, child := range n.children {
			ret.children[key] = child.Clone()
		}
	case n.kind.IsValue():
		ret.value = n.types.valueType(n.kind).clone(n.value)
	}
	return ret
}

// CopyFrom replaces node state with a deep copy of src
func (n *Node) CopyFrom(src *Node) error {
	if n.types != src.types {
		return fmt.Errorf("%w: source node uses a different type set", ErrUnsupportedType)
	}
	clone := src.Clone()
	*n = *clone
	return nil
}

// Equal returns true if both nodes hold the same tree
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil || n.kind != other.kind {
		return false
	}
	switch {
	case n.kind == NodeKind:
		if !slices.Equal(n.keys, other.keys) {
			return false
		}
		for _, key := range n.keys {
			if !n.children[key].Equal(other.children[key]) {
				return false
			}
		}
	case n.kind.IsValue():
		if n.Type() != other.Type() {
			return false
		}
		return n.types.valueType(n.kind).equal(n.value, other.value)
	}
	return true
}

func (n *Node) reset() {
	n.kind = EmptyKind
	n.keys = nil
	n.children = nil
	n.value = nil
}

func (n *Node) typeName() string {
	return n.types.name(n.kind)
}
