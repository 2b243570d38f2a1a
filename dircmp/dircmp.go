package dircmp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotDirectory is returned by Compare when either argument does not
// resolve to a directory.
var ErrNotDirectory = errors.New("not a directory")

// DiffKind classifies one reported difference between the two trees.
type DiffKind int

const (
	// OnlyInLeft and OnlyInRight report entries present on one side only.
	OnlyInLeft DiffKind = iota
	OnlyInRight
	// ContentMismatch reports two regular files whose bytes differ.
	ContentMismatch
	// SymlinkMismatch reports two symlinks with different targets.
	SymlinkMismatch
	// TypeMismatch reports entries of incompatible types, including a
	// symlink paired with a non-symlink.
	TypeMismatch
	// Problematic reports entries that could not be examined at all.
	Problematic
)

// Diff is one discrepancy between corresponding locations in the two
// trees. Left and Right are the paths involved; for only-in diffs the
// missing side is empty and Detail carries the entry name.
type Diff struct {
	Kind        DiffKind
	Left        string
	Right       string
	LeftTarget  string
	RightTarget string
	Detail      string
}

func (d Diff) String() string {
	switch d.Kind {
	case OnlyInLeft:
		return fmt.Sprintf("Only in %s: %s", d.Left, d.Detail)
	case OnlyInRight:
		return fmt.Sprintf("Only in %s: %s", d.Right, d.Detail)
	case ContentMismatch:
		return fmt.Sprintf("Differing file: %s <-> %s", d.Left, d.Right)
	case SymlinkMismatch:
		return fmt.Sprintf("Symlink targets differ: %s -> %s, %s -> %s",
			d.Left, d.LeftTarget, d.Right, d.RightTarget)
	case TypeMismatch:
		return fmt.Sprintf("Type mismatch (%s): %s, %s", d.Detail, d.Left, d.Right)
	case Problematic:
		return fmt.Sprintf("Problematic: %s, %s: %s", d.Left, d.Right, d.Detail)
	}
	return fmt.Sprintf("Unknown diff: %s, %s", d.Left, d.Right)
}

// Result accumulates every difference found across a whole comparison.
type Result struct {
	Diffs []Diff
}

// Identical reports whether the comparison found no differences.
func (r *Result) Identical() bool {
	return len(r.Diffs) == 0
}

func (r *Result) add(d Diff) {
	r.Diffs = append(r.Diffs, d)
}

// Compare recursively compares two directory trees and returns every
// discrepancy found. It never stops at the first difference: entries
// missing on either side, content mismatches, symlink-target mismatches,
// type mismatches, and inaccessible entries are all accumulated. An error
// is returned only when either argument is not a directory.
func Compare(left, right string) (*Result, error) {
	for _, dir := range []string{left, right} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
		}
	}
	res := &Result{}
	compareDir(left, right, res)
	return res, nil
}

func compareDir(left, right string, res *Result) {
	leftNames, err := readNames(left)
	if err != nil {
		res.add(Diff{Kind: Problematic, Left: left, Right: right, Detail: err.Error()})
		return
	}
	rightNames, err := readNames(right)
	if err != nil {
		res.add(Diff{Kind: Problematic, Left: left, Right: right, Detail: err.Error()})
		return
	}

	var common, leftOnly, rightOnly []string
	for name := range leftNames {
		if rightNames[name] {
			common = append(common, name)
		} else {
			leftOnly = append(leftOnly, name)
		}
	}
	for name := range rightNames {
		if !leftNames[name] {
			rightOnly = append(rightOnly, name)
		}
	}
	sort.Strings(leftOnly)
	sort.Strings(rightOnly)
	sort.Strings(common)
	for _, name := range leftOnly {
		res.add(Diff{Kind: OnlyInLeft, Left: left, Detail: name})
	}
	for _, name := range rightOnly {
		res.add(Diff{Kind: OnlyInRight, Right: right, Detail: name})
	}

	for _, name := range common {
		lp := filepath.Join(left, name)
		rp := filepath.Join(right, name)
		li, lerr := os.Lstat(lp)
		ri, rerr := os.Lstat(rp)
		if lerr != nil || rerr != nil {
			res.add(Diff{Kind: Problematic, Left: lp, Right: rp,
				Detail: fmt.Sprintf("lstat: %v, %v", lerr, rerr)})
			continue
		}

		lLink := li.Mode()&os.ModeSymlink != 0
		rLink := ri.Mode()&os.ModeSymlink != 0
		switch {
		case lLink || rLink:
			compareLinks(lp, rp, lLink, rLink, res)
		case li.IsDir() && ri.IsDir():
			compareDir(lp, rp, res)
		case li.Mode().IsRegular() && ri.Mode().IsRegular():
			compareContents(lp, rp, res)
		case li.IsDir() != ri.IsDir():
			res.add(Diff{Kind: TypeMismatch, Left: lp, Right: rp, Detail: "file vs directory"})
		default:
			// Sockets, devices, fifos: nothing to byte-compare.
			res.add(Diff{Kind: Problematic, Left: lp, Right: rp,
				Detail: fmt.Sprintf("unsupported types %s, %s", li.Mode().Type(), ri.Mode().Type())})
		}
	}
}

func readNames(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	return names, nil
}

// compareLinks handles any pairing where at least one side is a symlink.
// Two links with equal targets are never a difference, even when both
// targets are missing.
func compareLinks(lp, rp string, lLink, rLink bool, res *Result) {
	if lLink != rLink {
		res.add(Diff{Kind: TypeMismatch, Left: lp, Right: rp, Detail: "symlink vs non-symlink"})
		return
	}
	lt, lerr := os.Readlink(lp)
	rt, rerr := os.Readlink(rp)
	if lerr != nil || rerr != nil {
		res.add(Diff{Kind: Problematic, Left: lp, Right: rp,
			Detail: fmt.Sprintf("readlink: %v, %v", lerr, rerr)})
		return
	}
	if lt != rt {
		res.add(Diff{Kind: SymlinkMismatch, Left: lp, Right: rp, LeftTarget: lt, RightTarget: rt})
	}
}

func compareContents(lp, rp string, res *Result) {
	same, err := sameBytes(lp, rp)
	if err != nil {
		res.add(Diff{Kind: Problematic, Left: lp, Right: rp, Detail: err.Error()})
		return
	}
	if !same {
		res.add(Diff{Kind: ContentMismatch, Left: lp, Right: rp})
	}
}

// sameBytes reports whether two files hold identical content. It always
// compares full content in 64 KiB chunks; size and mtime are not trusted as
// shortcuts.
func sameBytes(lp, rp string) (bool, error) {
	lf, err := os.Open(lp)
	if err != nil {
		return false, err
	}
	defer lf.Close()
	rf, err := os.Open(rp)
	if err != nil {
		return false, err
	}
	defer rf.Close()

	lbuf := make([]byte, 64*1024)
	rbuf := make([]byte, 64*1024)
	for {
		ln, lerr := io.ReadFull(lf, lbuf)
		rn, rerr := io.ReadFull(rf, rbuf)
		if lerr != nil && lerr != io.EOF && lerr != io.ErrUnexpectedEOF {
			return false, lerr
		}
		if rerr != nil && rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
			return false, rerr
		}
		if ln != rn || !bytes.Equal(lbuf[:ln], rbuf[:rn]) {
			return false, nil
		}
		if lerr != nil || rerr != nil {
			// Both sides ended at the same offset with equal bytes.
			return lerr != nil && rerr != nil, nil
		}
	}
}
