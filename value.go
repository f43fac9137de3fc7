package dictology

import (
	"fmt"
	"reflect"
)

// Assign sets node value, previous children or value are discarded
func Assign[T Scalar](n *Node, value T) error {
	kind, ok := n.types.Kind(reflect.TypeFor[T]())
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
	n.reset()
	n.kind = kind
	n.value = &value
	return nil
}

// SetValue sets node value of any type from the node type set
func (n *Node) SetValue(value interface{}) error {
	if value == nil {
		return fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	kind, ok := n.types.Kind(reflect.TypeOf(value))
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
	ptr, ok := n.types.valueType(kind).wrap(value)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
	n.reset()
	n.kind = kind
	n.value = ptr
	return nil
}

// As returns a pointer to held value, the pointer can be used to update the value in place
func As[T Scalar](n *Node) (*T, error) {
	if n.kind.IsValue() {
		if ret, ok := n.value.(*T); ok {
			return ret, nil
		}
	}
	return nil, fmt.Errorf("%w: expected %v, but node is %v", ErrTypeMismatch, reflect.TypeFor[T](), n.typeName())
}

// AsOr returns a pointer to held value or to defaultValue when the node is empty
func AsOr[T Scalar](n *Node, defaultValue T) (*T, error) {
	if n.kind == EmptyKind {
		return &defaultValue, nil
	}
	return As[T](n)
}
