package fixture

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ManifestName is the per-case manifest filename.
const ManifestName = "manifest.txt"

// Entry is one manifest line: the content hash of a single file and its
// path relative to the case root. Size is carried for run summaries and is
// not written to the manifest.
type Entry struct {
	Path string
	Hash string
	Size int64
}

// CollectEntries hashes every non-directory entry under root and returns
// the entries sorted by relative path. A file that cannot be hashed gets an
// "ERR:" marker in place of a digest instead of aborting the walk.
func CollectEntries(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == ManifestName {
			return nil
		}
		e := Entry{Path: rel}
		if info, err := d.Info(); err == nil {
			e.Size = info.Size()
		}
		hash, err := FileHash(path)
		if err != nil {
			hash = "ERR:" + err.Error()
		}
		e.Hash = hash
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking case %s: %w", root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// WriteManifest writes entries to manifest.txt at the case root, one
// "<hash>  <relative-path>" line per entry.
func WriteManifest(root string, entries []Entry) error {
	f, err := os.Create(filepath.Join(root, ManifestName))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.Hash, e.Path)
	}
	return w.Flush()
}
