package dictology

import (
	"fmt"
	"github.com/viant/dictology/visitor"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"reflect"
)

type (
	fieldTag struct {
		name      string
		ignore    bool
		inline    bool
		omitEmpty bool
	}

	tagKey struct {
		tag     reflect.StructTag
		tagName string
	}
)

var tagCache = visitor.NewSyncMap[tagKey, *fieldTag]()

func parseTag(field *visitor.Field, tagName string) (*fieldTag, error) {
	key := tagKey{tag: field.Tag, tagName: tagName}
	if ret, ok := tagCache.Get(key); ok {
		return ret, nil
	}
	tag, err := format.Parse(field.Tag, tagName)
	if err != nil {
		return nil, fmt.Errorf("invalid %v tag: %w", field.Name, err)
	}
	ret := &fieldTag{}
	if tag != nil {
		ret.name = tag.Name
		ret.ignore = tag.Ignore
		ret.inline = tag.Inline
		ret.omitEmpty = tag.Omitempty
	}
	tagCache.Put(key, ret)
	return ret, nil
}

func (o *options) key(field *visitor.Field, tag *fieldTag) string {
	if tag.name != "" {
		return tag.name
	}
	if o.caseFormat == text.CaseFormatUndefined {
		return field.Name
	}
	src := text.DetectCaseFormat(field.Name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(field.Name, o.caseFormat)
}

// FromStruct creates a tree from a struct, pointer to struct or string keyed map
func (t *Types) FromStruct(value interface{}, opts ...Option) (*Node, error) {
	ret := t.New()
	if err := ret.Load(value, opts...); err != nil {
		return nil, err
	}
	return ret, nil
}

// Load merges a struct, pointer to struct or string keyed map into the node.
// Nested structs and maps become internal nodes, nil pointers become empty nodes.
// The node is unchanged on error; on success previously obtained child references
// no longer point into the tree.
func (n *Node) Load(value interface{}, opts ...Option) error {
	work := n.Clone()
	if err := work.load(reflect.ValueOf(value), newOptions(opts)); err != nil {
		return err
	}
	*n = *work
	return nil
}

func (n *Node) load(value reflect.Value, opts *options) error {
	if !value.IsValid() {
		return nil
	}
	if _, ok := n.types.Kind(value.Type()); ok {
		return n.SetValue(value.Interface())
	}
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		if value.Elem().Kind() == reflect.Struct {
			if _, ok := n.types.Kind(value.Elem().Type()); !ok {
				if isOpaque(value.Elem().Type()) {
					return fmt.Errorf("%w: %v", ErrUnsupportedType, value.Type())
				}
				return n.loadStruct(value.Interface(), opts)
			}
		}
		return n.load(value.Elem(), opts)
	case reflect.Interface:
		if value.IsNil() {
			return nil
		}
		return n.load(value.Elem(), opts)
	case reflect.Struct:
		if isOpaque(value.Type()) {
			break
		}
		return n.loadStruct(value.Interface(), opts)
	case reflect.Map:
		return n.loadMap(value.Interface(), opts)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedType, value.Type())
}

func (n *Node) loadStruct(value interface{}, opts *options) error {
	visit, err := visitor.StructVisitorOf(value)
	if err != nil {
		return err
	}
	if err = n.ensureNode(); err != nil {
		return err
	}
	return visit(func(field *visitor.Field, fieldValue interface{}) (bool, error) {
		tag, err := parseTag(field, opts.tagName)
		if err != nil {
			return false, err
		}
		if tag.ignore {
			return true, nil
		}
		if n.inline(field, tag) {
			return true, n.load(reflect.ValueOf(fieldValue), opts)
		}
		if (opts.omitEmpty || tag.omitEmpty) && isZero(fieldValue) {
			return true, nil
		}
		child, err := n.Child(opts.key(field, tag))
		if err != nil {
			return false, err
		}
		if err = child.load(reflect.ValueOf(fieldValue), opts); err != nil {
			return false, fmt.Errorf("failed to load %v: %w", field.Name, err)
		}
		return true, nil
	})
}

func (n *Node) loadMap(value interface{}, opts *options) error {
	visit, err := visitor.AnyMapVisitorOf(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if err = n.ensureNode(); err != nil {
		return err
	}
	return visit(func(key string, element interface{}) (bool, error) {
		if opts.omitEmpty && isZero(element) {
			return true, nil
		}
		child, err := n.Child(key)
		if err != nil {
			return false, err
		}
		if err = child.load(reflect.ValueOf(element), opts); err != nil {
			return false, fmt.Errorf("failed to load %q: %w", key, err)
		}
		return true, nil
	})
}

// inline reports whether a field merges into the parent node, only structs outside the type set do
func (n *Node) inline(field *visitor.Field, tag *fieldTag) bool {
	if !tag.inline && !field.IsInline() {
		return false
	}
	fieldType := field.Type
	if fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}
	if fieldType.Kind() != reflect.Struct {
		return false
	}
	_, ok := n.types.Kind(fieldType)
	return !ok
}

// isOpaque reports a struct without visitable fields, i.e. time.Time when not in the type set
func isOpaque(structType reflect.Type) bool {
	return len(visitor.StructFields(structType)) == 0
}

func isZero(value interface{}) bool {
	if value == nil {
		return true
	}
	return reflect.ValueOf(value).IsZero()
}

// Interface returns node content as nil, a leaf value or a map[string]interface{}
func (n *Node) Interface() interface{} {
	switch {
	case n.IsNode():
		ret := make(map[string]interface{}, len(n.children))
		for key, child := range n.children {
			ret[key] = child.Interface()
		}
		return ret
	case n.IsValue():
		return n.Value()
	}
	return nil
}

// Decode writes the tree into dest, a non nil pointer.
// Missing keys and empty nodes leave destination fields untouched.
// Numbers convert between numeric kinds only when the value is preserved, 300 into uint8 or 3.7 into int fail.
func (n *Node) Decode(dest interface{}, opts ...Option) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("destination must be a non nil pointer, got %T", dest)
	}
	return n.decode(destValue.Elem(), newOptions(opts))
}

func (n *Node) decode(target reflect.Value, opts *options) error {
	if n.IsEmpty() {
		return nil
	}
	switch target.Kind() {
	case reflect.Interface:
		if target.NumMethod() == 0 {
			target.Set(reflect.ValueOf(n.Interface()))
			return nil
		}
	case reflect.Ptr:
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		return n.decode(target.Elem(), opts)
	case reflect.Struct:
		if _, ok := n.types.Kind(target.Type()); !ok {
			if isOpaque(target.Type()) {
				return fmt.Errorf("%w: %v", ErrUnsupportedType, target.Type())
			}
			return n.decodeStruct(target, opts)
		}
	case reflect.Map:
		return n.decodeMap(target, opts)
	}
	return n.decodeValue(target)
}

func (n *Node) decodeStruct(target reflect.Value, opts *options) error {
	if !n.IsNode() {
		return fmt.Errorf("%w: expected %v, but node is %v", ErrTypeMismatch, target.Type(), n.typeName())
	}
	ptr := target.Addr().UnsafePointer()
	for _, field := range visitor.StructFields(target.Type()) {
		tag, err := parseTag(field, opts.tagName)
		if err != nil {
			return err
		}
		if tag.ignore {
			continue
		}
		fieldValue := reflect.NewAt(field.Type, field.Pointer(ptr)).Elem()
		if n.inline(field, tag) {
			if err = n.decode(fieldValue, opts); err != nil {
				return err
			}
			continue
		}
		child, ok := n.children[opts.key(field, tag)]
		if !ok {
			continue
		}
		if err = child.decode(fieldValue, opts); err != nil {
			return fmt.Errorf("failed to decode %v: %w", field.Name, err)
		}
	}
	return nil
}

func (n *Node) decodeMap(target reflect.Value, opts *options) error {
	mapType := target.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, mapType)
	}
	if !n.IsNode() {
		return fmt.Errorf("%w: expected %v, but node is %v", ErrTypeMismatch, mapType, n.typeName())
	}
	if target.IsNil() {
		target.Set(reflect.MakeMapWithSize(mapType, len(n.keys)))
	}
	for _, key := range n.keys {
		elem := reflect.New(mapType.Elem()).Elem()
		if err := n.children[key].decode(elem, opts); err != nil {
			return fmt.Errorf("failed to decode %q: %w", key, err)
		}
		target.SetMapIndex(reflect.ValueOf(key).Convert(mapType.Key()), elem)
	}
	return nil
}

func (n *Node) decodeValue(target reflect.Value) error {
	if !n.IsValue() {
		return fmt.Errorf("%w: expected %v, but node is %v", ErrTypeMismatch, target.Type(), n.typeName())
	}
	value := reflect.ValueOf(n.Value())
	switch {
	case value.Type().AssignableTo(target.Type()):
		target.Set(value)
	case isNumber(value.Kind()) && isNumber(target.Kind()):
		if !fitsNumber(value, target.Type()) {
			return fmt.Errorf("%w: %v does not fit %v", ErrTypeMismatch, value.Interface(), target.Type())
		}
		target.Set(value.Convert(target.Type()))
	case value.Kind() == target.Kind() && value.Type().ConvertibleTo(target.Type()):
		target.Set(value.Convert(target.Type()))
	default:
		return fmt.Errorf("%w: expected %v, but node is %v", ErrTypeMismatch, target.Type(), n.typeName())
	}
	return nil
}

// fitsNumber reports whether value converts to targetType without overflow or a fractional part
func fitsNumber(value reflect.Value, targetType reflect.Type) bool {
	if value.CanFloat() && reflect.Zero(targetType).CanFloat() {
		return !reflect.Zero(targetType).OverflowFloat(value.Float())
	}
	converted := value.Convert(targetType)
	back := converted.Convert(value.Type())
	if !back.Equal(value) {
		return false
	}
	switch {
	case value.CanInt() && converted.CanUint():
		return value.Int() >= 0
	case value.CanUint() && converted.CanInt():
		return converted.Int() >= 0
	}
	return true
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
