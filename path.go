package dictology

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultDelimiter separates path keys
const DefaultDelimiter = '/'

type (
	pathOptions struct {
		delimiter rune
	}

	//PathOption represents path option
	PathOption func(o *pathOptions)
)

func newPathOptions(opts []PathOption) *pathOptions {
	var result = &pathOptions{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(result)
	}
	return result
}

// WithDelimiter returns option overriding path delimiter
func WithDelimiter(delimiter rune) PathOption {
	return func(o *pathOptions) {
		o.delimiter = delimiter
	}
}

// Split splits path into keys, empty segments are kept as empty keys
func Split(path string, opts ...PathOption) []string {
	options := newPathOptions(opts)
	return strings.Split(path, string(options.delimiter))
}

// Set assigns value at supplied path, missing nodes are created.
// The tree is left unchanged when T is outside the type set.
func Set[T Scalar](root *Node, path string, value T, opts ...PathOption) error {
	if _, ok := root.types.Kind(reflect.TypeFor[T]()); !ok {
		return fmt.Errorf("failed to set %q: %w: %T", path, ErrUnsupportedType, value)
	}
	node, err := root.Child(Split(path, opts...)...)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", path, err)
	}
	return Assign(node, value)
}

// TryGetNode returns a deep copy of a node at supplied path
func TryGetNode(root *Node, path string, opts ...PathOption) (*Node, bool) {
	node, ok := lookupPath(root, Split(path, opts...))
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// GetValue returns a value at supplied path
func GetValue[T Scalar](root *Node, path string, opts ...PathOption) (T, error) {
	var zero T
	node, ok := lookupPath(root, Split(path, opts...))
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	ret, err := As[T](node)
	if err != nil {
		return zero, fmt.Errorf("failed to get %q: %w", path, err)
	}
	return *ret, nil
}

// GetValueOr returns a value at supplied path or defaultValue if the path is missing.
// An empty node at the path also yields defaultValue, like AsOr; any other kind must hold T.
func GetValueOr[T Scalar](root *Node, path string, defaultValue T, opts ...PathOption) (T, error) {
	node, ok := lookupPath(root, Split(path, opts...))
	if !ok {
		return defaultValue, nil
	}
	ret, err := AsOr(node, defaultValue)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %q: %w", path, err)
	}
	return *ret, nil
}

func lookupPath(root *Node, keys []string) (*Node, bool) {
	node := root
	for _, key := range keys {
		if !node.Contains(key) {
			return nil, false
		}
		node = node.children[key]
	}
	return node, true
}
