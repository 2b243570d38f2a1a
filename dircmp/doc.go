// Package dircmp decides exact equivalence of two directory trees.
//
// The comparison is a depth-first recursion that accumulates every
// discrepancy it finds instead of stopping at the first one: entries
// present on only one side, regular files whose bytes differ, symlinks
// with different targets, type mismatches, and entries that could not be
// examined. Symlinks are compared by target string only, so two dangling
// links with equal targets are still considered identical.
package dircmp
