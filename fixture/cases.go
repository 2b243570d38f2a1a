package fixture

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/taigrr/colorhash"
)

// Problem records a recoverable failure for one path within a case.
// Builders collect problems instead of aborting, so one bad filename or
// unsupported symlink never sinks the rest of the run.
type Problem struct {
	Path string
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// A builder populates one case tree under root. Recoverable per-file
// failures come back as Problems; a non-nil error aborts the case.
type builder func(root string, rng *rand.Rand, cfg Config) ([]Problem, error)

type caseDef struct {
	Name  string
	Build builder
}

// placeholderText simulates textual log content in generated fixtures.
const placeholderText = "Time machine log fragment - placeholder text used for tests.\n" +
	"This simulates textual logs and should NOT contain copyrighted lyrics.\n"

// caseRand returns the random source for one case. The seed mixes in a
// stable hash of the case name, so builders stay reproducible regardless of
// the order they run in.
func caseRand(seed int64, name string) *rand.Rand {
	return rand.New(rand.NewSource(seed ^ int64(colorhash.HashString(name))))
}

func writeTextFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

func writeBinaryFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

const textAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789 \n"

func writeRandomText(path string, size int, rng *rand.Rand) error {
	b := make([]byte, size)
	for i := range b {
		b[i] = textAlphabet[rng.Intn(len(textAlphabet))]
	}
	return writeTextFile(path, string(b))
}

// writeRandomBinary writes size random bytes in 64 KiB chunks to bound
// memory usage.
func writeRandomBinary(path string, size int64, rng *rand.Rand) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 64*1024)
	for remaining := size; remaining > 0; {
		n := int64(len(buf))
		if remaining < n {
			n = remaining
		}
		rng.Read(buf[:n])
		if _, err := f.Write(buf[:n]); err != nil {
			return err
		}
		remaining -= n
	}
	return f.Close()
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

// makeSparse creates a file whose logical size exceeds its allocated blocks
// by seeking past the end and writing a single trailing byte. Works on most
// Unix filesystems and NTFS.
func makeSparse(path string, size int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if size > 0 {
		if _, err := f.Seek(size-1, io.SeekStart); err != nil {
			return err
		}
		if _, err := f.Write([]byte{0}); err != nil {
			return err
		}
	}
	return f.Close()
}

// buildNormal lays down a typical mix: text and binary files, one nested
// subdirectory, duplicate content across two directories, and two files of
// identical size but different content.
func buildNormal(root string, rng *rand.Rand, cfg Config) ([]Problem, error) {
	if err := writeTextFile(filepath.Join(root, "log1.txt"), placeholderText); err != nil {
		return nil, err
	}
	if err := writeRandomBinary(filepath.Join(root, "frame.bin"), int64(cfg.BinarySize), rng); err != nil {
		return nil, err
	}

	nested := filepath.Join(root, "session_2025", "runA")
	if err := writeTextFile(filepath.Join(nested, "notes.txt"), "Run A notes\n"+placeholderText); err != nil {
		return nil, err
	}
	if err := writeRandomBinary(filepath.Join(nested, "dump.bin"), int64(cfg.BinarySize), rng); err != nil {
		return nil, err
	}

	// Duplicate content in different places probes content-addressed dedup.
	dup := randomBytes(rng, 512)
	if err := writeBinaryFile(filepath.Join(root, "d1", "dup1.bin"), dup); err != nil {
		return nil, err
	}
	if err := writeBinaryFile(filepath.Join(root, "d2", "dup_copy.bin"), dup); err != nil {
		return nil, err
	}

	// Identical size, different content. Catches archivers that shortcut
	// equality on file size alone.
	if err := writeBinaryFile(filepath.Join(root, "same_size_1.bin"), randomBytes(rng, 256)); err != nil {
		return nil, err
	}
	if err := writeBinaryFile(filepath.Join(root, "same_size_2.bin"), randomBytes(rng, 256)); err != nil {
		return nil, err
	}
	return nil, nil
}

// buildEmptyDirs creates directories with no files, some nested several
// levels deep.
func buildEmptyDirs(root string, _ *rand.Rand, _ Config) ([]Problem, error) {
	for _, d := range []string{"empty", "empty2/subempty", "deep/nested/a/b/c/d/e", "zero"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0755); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// buildManyFiles fills one directory with many small files to stress
// listing and per-entry overhead. Names are deterministic and sequential so
// reruns stay comparable.
func buildManyFiles(root string, rng *rand.Rand, cfg Config) ([]Problem, error) {
	dir := filepath.Join(root, "many_files")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	count := cfg.ManyFiles
	if count > MaxManyFiles {
		count = MaxManyFiles
	}
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("file_%05d.log", i)
		if err := writeRandomText(filepath.Join(dir, name), cfg.TextSize, rng); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// buildSpecialNames attempts filenames with spaces, unicode, punctuation,
// tab and newline characters. Names the filesystem rejects are skipped and
// reported.
func buildSpecialNames(root string, _ *rand.Rand, _ Config) ([]Problem, error) {
	specials := []string{
		"space in name.txt",
		"ümlaut_unicode_ß.txt",
		"semi;colon.txt",
		"weird#file?.txt",
		"tab\tname.txt",
		"newline\ninname.txt",
	}
	var problems []Problem
	for _, name := range specials {
		path := filepath.Join(root, "special", name)
		if err := writeTextFile(path, "special: "+name+"\n"+placeholderText); err != nil {
			problems = append(problems, Problem{Path: path, Err: err})
		}
	}
	return problems, nil
}

// buildSymlinks creates a target file, a relative in-tree link, a link
// pointing outside the case tree, and a dangling link. Symlink failures are
// reported, never fatal, since some platforms deny them.
func buildSymlinks(root string, _ *rand.Rand, cfg Config) ([]Problem, error) {
	var problems []Problem

	target := filepath.Join(root, "target.txt")
	if err := writeTextFile(target, "I am the target\n"); err != nil {
		return nil, err
	}
	if !cfg.TrySymlinks {
		return nil, nil
	}

	link := filepath.Join(root, "link_to_target.txt")
	if err := relativeSymlink(target, link); err != nil {
		problems = append(problems, Problem{Path: link, Err: err})
	}

	// Link whose target lives outside the case tree.
	outside, err := filepath.Abs(filepath.Join(root, "..", "outside_marker.txt"))
	if err != nil {
		return problems, err
	}
	if err := writeTextFile(outside, "outside"); err != nil {
		return problems, err
	}
	link = filepath.Join(root, "link_to_outside.txt")
	if err := relativeSymlink(outside, link); err != nil {
		problems = append(problems, Problem{Path: link, Err: err})
	}

	// Dangling link.
	link = filepath.Join(root, "broken_link.txt")
	if err := os.Symlink(filepath.Join(root, "does_not_exist_12345.bin"), link); err != nil {
		problems = append(problems, Problem{Path: link, Err: err})
	}
	return problems, nil
}

// relativeSymlink links to target through a path relative to the link's
// directory when one can be computed, matching how archivers usually record
// link targets.
func relativeSymlink(target, link string) error {
	rel, err := filepath.Rel(filepath.Dir(link), target)
	if err != nil {
		rel = target
	}
	return os.Symlink(rel, link)
}

// buildPermissions creates a file and strips the owner read bit, so the
// archiver under test has to cope with a file it can list but not open.
func buildPermissions(root string, _ *rand.Rand, cfg Config) ([]Problem, error) {
	p := filepath.Join(root, "protected", "secret.log")
	if err := writeTextFile(p, "Top secret logs\n"); err != nil {
		return nil, err
	}
	if !cfg.TryPermissions {
		return nil, nil
	}
	if err := makeUnreadable(p); err != nil {
		return []Problem{{Path: p, Err: err}}, nil
	}
	return nil, nil
}

func makeUnreadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode().Perm()&^0o400)
}

// buildLargeFile creates one large file, sparse when configured. If sparse
// creation fails it falls back to writing real random bytes, capped so the
// fallback cannot fill the disk.
func buildLargeFile(root string, rng *rand.Rand, cfg Config) ([]Problem, error) {
	path := filepath.Join(root, "big_logs", "bigfile.bin")
	size := cfg.LargeFileSize

	if cfg.Sparse {
		err := makeSparse(path, size)
		if err == nil {
			return nil, nil
		}
		problems := []Problem{{Path: path, Err: fmt.Errorf("sparse file failed, writing real bytes: %w", err)}}
		if size > largeFileWriteCap {
			size = largeFileWriteCap
		}
		return problems, writeRandomBinary(path, size, rng)
	}

	if size > largeFileWriteCap {
		size = largeFileWriteCap
	}
	return nil, writeRandomBinary(path, size, rng)
}

// buildCrossDirDups spreads byte-identical files across several directory
// branches at varying depths: 8 branches, 3 files each, one shared blob.
// Probes content-based dedup across directory boundaries.
func buildCrossDirDups(root string, rng *rand.Rand, _ Config) ([]Problem, error) {
	blob := randomBytes(rng, 1024)
	for i := 0; i < 8; i++ {
		dir := filepath.Join(root, fmt.Sprintf("branch_%d", i), "deep", fmt.Sprintf("level_%d", i))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		for j := 0; j < 3; j++ {
			if err := writeBinaryFile(filepath.Join(dir, fmt.Sprintf("same_%d.bin", j)), blob); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// buildLongPaths nests fixed-length directory names until the path
// approaches a platform path-length ceiling, then drops a file at the
// bottom. The thresholds are heuristic, not documented OS limits. A
// path-too-long error ends the case cleanly; anything else propagates.
func buildLongPaths(root string, _ *rand.Rand, _ Config) ([]Problem, error) {
	target := longPathTarget()
	base := root
	level := 0
	for len(base) < target-20 {
		base = filepath.Join(base, strings.Repeat("a", 50))
		if err := os.MkdirAll(base, 0755); err != nil {
			if isPathTooLong(err) {
				return []Problem{{Path: base, Err: err}}, nil
			}
			return nil, err
		}
		level++
	}

	path := filepath.Join(base, "long_file.txt")
	err := writeTextFile(path, fmt.Sprintf("File at depth %d, path length %d\n", level, len(path)))
	if err != nil {
		if isPathTooLong(err) {
			return []Problem{{Path: path, Err: err}}, nil
		}
		return nil, err
	}
	return nil, nil
}

func longPathTarget() int {
	switch runtime.GOOS {
	case "windows":
		return 240
	case "darwin":
		return 1000
	default:
		return 3000
	}
}

// isPathTooLong reports whether err is the filesystem refusing a path for
// its length rather than some other failure.
func isPathTooLong(err error) bool {
	return errors.Is(err, syscall.ENAMETOOLONG) || errors.Is(err, syscall.EINVAL)
}
