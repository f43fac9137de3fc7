// Package dictology implements a hierarchical key-value tree.
//
// Internal nodes map string keys to children in ascending key order, leaves hold
// a value of one of the types declared with NewTypes. Paths such as "a/b/c" address
// nested nodes; writes create missing intermediate nodes, reads never do.
//
//	types := dictology.NewTypes(dictology.Type[int](), dictology.Type[string]())
//	dict := types.New()
//	_ = dictology.Set(dict, "server/port", 8080)
//	port, err := dictology.GetValue[int](dict, "server/port")
//
// Visit and VisitLeaves dispatch children to handlers by the held value type.
// A Node is not safe for concurrent use.
package dictology
