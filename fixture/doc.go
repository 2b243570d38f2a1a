// Package fixture generates test directory trees for pack/unpack testing.
//
// A generator run populates a base directory with a fixed set of named
// cases, each exercising one filesystem scenario the archiver under test
// has to survive:
//
//   - case_normal: mixed text/binary content, nesting, duplicate content
//     in different directories, and same-size files with different content
//   - case_empty_dirs: directories with no files, some deeply nested
//   - case_many_files: many small files with sequential names
//   - case_special_names: spaces, unicode, punctuation, tab and newline
//   - case_symlinks: in-tree, out-of-tree, and dangling links
//   - case_permissions: a file with the owner read bit stripped
//   - case_large_file: one sparse (or capped real) large file
//   - case_dups: byte-identical files across directory branches
//   - case_long_paths: nesting toward the platform path-length ceiling
//     (excluded from the default run)
//
// Each case gets a manifest.txt with one "<sha256>  <relative-path>" line
// per regular file, sorted by path. Recoverable per-file failures are
// collected as Problems and reported at the case boundary rather than
// aborting the run.
package fixture
