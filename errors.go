package dictology

import "errors"

var (
	//ErrInvalidKeyAccess reports child addressing through a node that can not hold the child
	ErrInvalidKeyAccess = errors.New("invalid key access")
	//ErrTypeMismatch reports a typed read of a node that does not hold the requested type
	ErrTypeMismatch = errors.New("type mismatch")
	//ErrNotIterable reports iteration over a node that is not an internal node
	ErrNotIterable = errors.New("node is not iterable")
	//ErrNotVisitable reports visitation of a node that is not an internal node
	ErrNotVisitable = errors.New("node is not visitable")
	//ErrPathNotFound reports a strict path read of a missing path
	ErrPathNotFound = errors.New("path not found")
	//ErrUnsupportedType reports a value type outside the node type set
	ErrUnsupportedType = errors.New("unsupported type")

	//SkipAll stops a visit without reporting an error
	SkipAll = errors.New("skip all")
)
