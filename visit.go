package dictology

import (
	"errors"
	"fmt"
	"reflect"
)

// Policy controls which children a visit dispatches
type Policy int

const (
	//ValuesOnly dispatches leaf values only
	ValuesOnly Policy = iota
	//AllNodes dispatches every child, internal and empty nodes included
	AllNodes
)

type handlerKind int

const (
	valueHandler handlerKind = iota
	nodeHandler
	emptyHandler
	anyHandler
)

type (
	//Handler represents a visit callback bound to a node kind
	Handler struct {
		kind  handlerKind
		rType reflect.Type
		call  func(key string, child *Node) error
	}

	dispatcher []*Handler
)

// On creates a handler for leaf values of type T, value points into the tree
func On[T Scalar](fn func(key string, value *T) error) Handler {
	return Handler{
		kind:  valueHandler,
		rType: reflect.TypeFor[T](),
		call: func(key string, child *Node) error {
			return fn(key, child.value.(*T))
		},
	}
}

// OnNode creates a handler for internal children
func OnNode(fn func(key string, node *Node) error) Handler {
	return Handler{kind: nodeHandler, call: fn}
}

// OnEmpty creates a handler for empty children
func OnEmpty(fn func(key string) error) Handler {
	return Handler{kind: emptyHandler, call: func(key string, _ *Node) error {
		return fn(key)
	}}
}

// OnAny creates a catch-all handler used for kinds without a dedicated handler
func OnAny(fn func(key string, child *Node) error) Handler {
	return Handler{kind: anyHandler, call: fn}
}

func newDispatcher(types *Types, handlers []Handler) dispatcher {
	ret := make(dispatcher, types.kinds())
	var fallback *Handler
	for i := range handlers {
		handler := &handlers[i]
		kind := EmptyKind
		switch handler.kind {
		case anyHandler:
			if fallback == nil {
				fallback = handler
			}
			continue
		case nodeHandler:
			kind = NodeKind
		case valueHandler:
			var ok bool
			if kind, ok = types.Kind(handler.rType); !ok {
				continue
			}
		}
		if ret[kind] == nil {
			ret[kind] = handler
		}
	}
	if fallback != nil {
		for i := range ret {
			if ret[i] == nil {
				ret[i] = fallback
			}
		}
	}
	return ret
}

func (d dispatcher) dispatch(key string, child *Node) error {
	if int(child.kind) >= len(d) {
		return nil
	}
	if handler := d[child.kind]; handler != nil {
		return handler.call(key, child)
	}
	return nil
}

// Visit dispatches direct children of n in key order
func Visit(n *Node, policy Policy, handlers ...Handler) error {
	if n.kind != NodeKind {
		return fmt.Errorf("%w: node is %v", ErrNotVisitable, n.typeName())
	}
	d := newDispatcher(n.types, handlers)
	err := n.visitChildren(func(key string, child *Node) error {
		if policy == ValuesOnly && !child.IsValue() {
			return nil
		}
		return d.dispatch(key, child)
	})
	if errors.Is(err, SkipAll) {
		return nil
	}
	return err
}

// VisitLeaves dispatches every leaf value of the subtree, depth first in key order; empty nodes are not visited
func VisitLeaves(n *Node, handlers ...Handler) error {
	if n.kind != NodeKind {
		return fmt.Errorf("%w: node is %v", ErrNotVisitable, n.typeName())
	}
	err := n.visitLeaves(newDispatcher(n.types, handlers))
	if errors.Is(err, SkipAll) {
		return nil
	}
	return err
}

func (n *Node) visitLeaves(d dispatcher) error {
	return n.visitChildren(func(key string, child *Node) error {
		switch {
		case child.IsNode():
			return child.visitLeaves(d)
		case child.IsValue():
			return d.dispatch(key, child)
		}
		return nil
	})
}

func (n *Node) visitChildren(fn func(key string, child *Node) error) error {
	visit, err := n.Children()
	if err != nil {
		return err
	}
	return visit(func(key string, child *Node) (bool, error) {
		if err := fn(key, child); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Visit dispatches direct children with supplied policy
func (n *Node) Visit(policy Policy, handlers ...Handler) error {
	return Visit(n, policy, handlers...)
}

// VisitValues dispatches direct leaf values
func (n *Node) VisitValues(handlers ...Handler) error {
	return Visit(n, ValuesOnly, handlers...)
}

// VisitLeaves dispatches every leaf value of the subtree
func (n *Node) VisitLeaves(handlers ...Handler) error {
	return VisitLeaves(n, handlers...)
}
