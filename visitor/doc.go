// Package visitor offers callback-based iterators used by dictology.
// It provides ordered key iteration, sorted map iteration and
// xunsafe-backed struct field iteration.
package visitor
