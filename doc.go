// Package main provides the packtest command-line interface.
//
// packtest is a pair of test utilities for exercising an external pack/unpack
// (archiving) tool. It generates directory trees full of filesystem edge
// cases — duplicates, empty directories, special filenames, symlinks,
// unreadable files, sparse large files — and verifies that a directory tree
// survives a pack/unpack round trip byte for byte.
//
// The main binary supports multiple subcommands:
//   - generate: Populate a base directory with named fixture cases and manifests
//   - verify: Recursively compare two directory trees for exact equivalence
//   - count: Count files in directory trees
package main
