package visitor

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// OrderedVisitorOf creates a visitor over keys in supplied order.
// Keys that lookup no longer resolves are skipped.
func OrderedVisitorOf[K comparable, E any](keys []K, lookup func(key K) (E, bool)) Visitor[K, E] {
	return func(f func(key K, element E) (bool, error)) error {
		for _, key := range keys {
			element, ok := lookup(key)
			if !ok {
				continue
			}
			continueVisit, err := f(key, element)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// SortedMapVisitorOf creates a visitor over map entries in ascending key order
func SortedMapVisitorOf[K cmp.Ordered, E any](aMap map[K]E) Visitor[K, E] {
	return OrderedVisitorOf(slices.Sorted(maps.Keys(aMap)), func(key K) (E, bool) {
		e, ok := aMap[key]
		return e, ok
	})
}

// AnyMapVisitorOf creates a visitor over any string keyed map in ascending key order
func AnyMapVisitorOf(value interface{}) (Visitor[string, interface{}], error) {
	switch actual := value.(type) {
	case map[string]interface{}:
		return anyTypedMapVisitorOf(actual), nil
	case map[string]string:
		return anyTypedMapVisitorOf(actual), nil
	case map[string]int:
		return anyTypedMapVisitorOf(actual), nil
	case map[string]float64:
		return anyTypedMapVisitorOf(actual), nil
	case map[string]bool:
		return anyTypedMapVisitorOf(actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("expected string map key, got %v", val.Type().Key())
	}
	visitor := &AnyMapVisitor{data: val}
	return visitor.Visit, nil
}

func anyTypedMapVisitorOf[V any](aMap map[string]V) Visitor[string, interface{}] {
	sorted := SortedMapVisitorOf(aMap)
	return func(f func(key string, element interface{}) (bool, error)) error {
		return sorted(func(key string, element V) (bool, error) {
			return f(key, element)
		})
	}
}

// AnyMapVisitor visits a reflected string keyed map
type AnyMapVisitor struct {
	data reflect.Value
}

// Visit iterates over the map via reflection in ascending key order
func (v *AnyMapVisitor) Visit(f func(key string, element interface{}) (bool, error)) error {
	keys := v.data.MapKeys()
	slices.SortFunc(keys, func(x, y reflect.Value) int {
		return cmp.Compare(x.String(), y.String())
	})
	for _, key := range keys {
		continueVisit, err := f(key.String(), v.data.MapIndex(key).Interface())
		if err != nil {
			return err
		}
		if !continueVisit {
			break
		}
	}
	return nil
}
