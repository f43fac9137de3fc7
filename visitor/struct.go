package visitor

import (
	"fmt"
	"github.com/viant/xunsafe"
	"reflect"
	"unsafe"
)

var structCache = NewSyncMap[reflect.Type, []*Field]()

// Field represents a visitable struct field
type Field struct {
	reflect.StructField
	xField *xunsafe.Field
}

// Value returns field value for supplied struct pointer
func (f *Field) Value(structPtr unsafe.Pointer) interface{} {
	return f.xField.Value(structPtr)
}

// Pointer returns field address for supplied struct pointer
func (f *Field) Pointer(structPtr unsafe.Pointer) unsafe.Pointer {
	return f.xField.Pointer(structPtr)
}

// IsInline returns true for an embedded struct field
func (f *Field) IsInline() bool {
	if !f.Anonymous {
		return false
	}
	fType := f.Type
	if fType.Kind() == reflect.Ptr {
		fType = fType.Elem()
	}
	return fType.Kind() == reflect.Struct
}

// StructFields returns exported and embedded fields of a struct type
func StructFields(structType reflect.Type) []*Field {
	return structCache.GetOrCreate(structType, func() []*Field {
		var result []*Field
		for i := 0; i < structType.NumField(); i++ {
			field := &Field{StructField: structType.Field(i)}
			if !field.IsExported() && !field.IsInline() {
				continue
			}
			field.xField = xunsafe.NewField(field.StructField)
			result = append(result, field)
		}
		return result
	})
}

// StructVisitor implements Visitor[*Field, interface{}] for structs using xunsafe.
type StructVisitor struct {
	ptr    unsafe.Pointer
	fields []*Field
}

// StructVisitorOf creates a StructVisitor from any struct value.
func StructVisitorOf(value interface{}) (Visitor[*Field, interface{}], error) {
	if value == nil {
		return nil, fmt.Errorf("expected struct or pointer to struct, got nil")
	}
	valueType := reflect.TypeOf(value)
	isPtr := false
	var structType reflect.Type
	switch valueType.Kind() {
	case reflect.Ptr:
		isPtr = true
		structType = valueType.Elem()
	case reflect.Struct:
		structType = valueType
	default:
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	if !isPtr {
		rPointer := reflect.New(structType)
		rPointer.Elem().Set(reflect.ValueOf(value))
		value = rPointer.Interface()
	}
	ptr := xunsafe.AsPointer(value)
	if ptr == nil {
		return nil, fmt.Errorf("expected non nil %T", value)
	}
	visitor := &StructVisitor{ptr: ptr, fields: StructFields(structType)}
	return visitor.Visit, nil
}

// Visit iterates over struct fields, calling the provided function with each field and value.
func (w *StructVisitor) Visit(f func(field *Field, element interface{}) (bool, error)) error {
	for _, field := range w.fields {
		continueVisit, err := f(field, field.Value(w.ptr))
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
