package dictology

import (
	"reflect"
	"strconv"
	"time"
)

type (
	//Scalar lists Go types a leaf can hold
	Scalar interface {
		~bool | ~string |
			~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
			~float32 | ~float64 | ~complex64 | ~complex128 |
			time.Time
	}

	//Kind represents node active tag
	Kind uint16

	//ValueType represents a configured leaf type
	ValueType struct {
		rType reflect.Type
		wrap  func(value interface{}) (interface{}, bool)
		value func(ptr interface{}) interface{}
		clone func(ptr interface{}) interface{}
		equal func(x, y interface{}) bool
	}

	//Types represents a closed set of leaf types
	Types struct {
		types []*ValueType
		index map[reflect.Type]Kind
	}
)

const (
	//EmptyKind represents a node without value and children
	EmptyKind Kind = iota
	//NodeKind represents an internal node
	NodeKind
	firstValueKind
)

// IsValue returns true if kind represents a leaf value
func (k Kind) IsValue() bool {
	return k >= firstValueKind
}

func (k Kind) String() string {
	switch k {
	case EmptyKind:
		return "empty"
	case NodeKind:
		return "node"
	}
	return "value#" + strconv.Itoa(int(k-firstValueKind))
}

// Type returns a value type for T
func Type[T Scalar]() ValueType {
	return ValueType{
		rType: reflect.TypeFor[T](),
		wrap: func(value interface{}) (interface{}, bool) {
			actual, ok := value.(T)
			if !ok {
				return nil, false
			}
			return &actual, true
		},
		value: func(ptr interface{}) interface{} {
			return *ptr.(*T)
		},
		clone: func(ptr interface{}) interface{} {
			ret := *ptr.(*T)
			return &ret
		},
		equal: func(x, y interface{}) bool {
			xv, yv := interface{}(*x.(*T)), interface{}(*y.(*T))
			if ts, ok := xv.(time.Time); ok {
				return ts.Equal(yv.(time.Time))
			}
			return xv == yv
		},
	}
}

// Type returns value type reflect type
func (v *ValueType) Type() reflect.Type {
	return v.rType
}

// NewTypes creates a type set, duplicated types are ignored
func NewTypes(types ...ValueType) *Types {
	ret := &Types{index: make(map[reflect.Type]Kind, len(types))}
	for i := range types {
		if _, ok := ret.index[types[i].rType]; ok {
			continue
		}
		valueType := types[i]
		ret.index[valueType.rType] = firstValueKind + Kind(len(ret.types))
		ret.types = append(ret.types, &valueType)
	}
	return ret
}

// New creates an empty root node bound to the type set
func (t *Types) New() *Node {
	return &Node{types: t}
}

// Len returns number of configured types
func (t *Types) Len() int {
	if t == nil {
		return 0
	}
	return len(t.types)
}

// Kind returns a kind for supplied type
func (t *Types) Kind(rType reflect.Type) (Kind, bool) {
	if t == nil {
		return EmptyKind, false
	}
	kind, ok := t.index[rType]
	return kind, ok
}

// TypeOf returns a reflect type for a value kind or nil
func (t *Types) TypeOf(kind Kind) reflect.Type {
	if valueType := t.valueType(kind); valueType != nil {
		return valueType.rType
	}
	return nil
}

func (t *Types) kinds() int {
	return int(firstValueKind) + t.Len()
}

func (t *Types) valueType(kind Kind) *ValueType {
	if t == nil || !kind.IsValue() {
		return nil
	}
	idx := int(kind - firstValueKind)
	if idx >= len(t.types) {
		return nil
	}
	return t.types[idx]
}

func (t *Types) name(kind Kind) string {
	if rType := t.TypeOf(kind); rType != nil {
		return rType.String()
	}
	return kind.String()
}
