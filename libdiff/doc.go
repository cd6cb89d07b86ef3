// Package libdiff computes the differences between two [ir.Node] trees as
// a list of changes addressed by path.
//
// Objects are matched by key. Arrays are aligned by a diff of element
// summaries, so an inserted element does not make every later element
// appear changed. Strings that mostly agree carry an inline character
// diff.
package libdiff
