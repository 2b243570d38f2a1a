package fixture

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testConfig returns a config sized for fast test runs.
func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BaseDir = filepath.Join(t.TempDir(), "test_cases")
	cfg.ManyFiles = 25
	cfg.LargeFileSize = 1 << 20
	return cfg
}

// readManifest parses a case manifest into relative-path -> hash.
func readManifest(t *testing.T, caseRoot string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(caseRoot, ManifestName))
	if err != nil {
		t.Fatalf("failed to read manifest for %s: %v", caseRoot, err)
	}
	entries := make(map[string]string)
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "  ", 2)
		if len(parts) != 2 {
			t.Fatalf("malformed manifest line %q", line)
		}
		entries[parts[1]] = parts[0]
	}
	return entries
}

func TestGenerateCreatesAllDefaultCases(t *testing.T) {
	cfg := testConfig(t)
	res, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	want := []string{
		"case_normal", "case_empty_dirs", "case_many_files", "case_special_names",
		"case_symlinks", "case_permissions", "case_large_file", "case_dups",
	}
	if len(res.Cases) != len(want) {
		t.Fatalf("Generate() produced %d cases, want %d", len(res.Cases), len(want))
	}
	for i, name := range want {
		if res.Cases[i].Name != name {
			t.Errorf("case %d = %s, want %s", i, res.Cases[i].Name, name)
		}
		root := filepath.Join(cfg.BaseDir, name)
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			t.Errorf("case directory %s missing: %v", root, err)
		}
		if _, err := os.Stat(filepath.Join(root, ManifestName)); err != nil {
			t.Errorf("manifest missing for %s: %v", name, err)
		}
	}

	// case_long_paths stays out of the default run.
	if _, err := os.Stat(filepath.Join(cfg.BaseDir, "case_long_paths")); !os.IsNotExist(err) {
		t.Error("case_long_paths should not be generated by default")
	}
	if res.RunID == "" {
		t.Error("Generate() returned empty run ID")
	}
}

func TestManifestSelfConsistency(t *testing.T) {
	cfg := testConfig(t)
	cfg.TryPermissions = false // keep every generated file hashable
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for _, name := range []string{"case_normal", "case_many_files", "case_dups"} {
		root := filepath.Join(cfg.BaseDir, name)
		for rel, want := range readManifest(t, root) {
			got, err := FileHash(filepath.Join(root, rel))
			if err != nil {
				t.Errorf("%s/%s: rehash failed: %v", name, rel, err)
				continue
			}
			if got != want {
				t.Errorf("%s/%s: hash = %s, manifest records %s", name, rel, got, want)
			}
		}
	}
}

func TestNormalCaseDuplicateAndSameSizeProbes(t *testing.T) {
	cfg := testConfig(t)
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	m := readManifest(t, filepath.Join(cfg.BaseDir, "case_normal"))

	dup1 := m[filepath.Join("d1", "dup1.bin")]
	dup2 := m[filepath.Join("d2", "dup_copy.bin")]
	if dup1 == "" || dup2 == "" {
		t.Fatalf("duplicate probe files missing from manifest: %v", m)
	}
	if dup1 != dup2 {
		t.Errorf("duplicate files hash differently: %s vs %s", dup1, dup2)
	}

	s1, s2 := m["same_size_1.bin"], m["same_size_2.bin"]
	if s1 == "" || s2 == "" {
		t.Fatalf("same-size probe files missing from manifest: %v", m)
	}
	if s1 == s2 {
		t.Error("same-size files must have differing content hashes")
	}
}

func TestCrossDirDupsShareOneHash(t *testing.T) {
	cfg := testConfig(t)
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	m := readManifest(t, filepath.Join(cfg.BaseDir, "case_dups"))

	if len(m) != 24 {
		t.Fatalf("case_dups manifest has %d entries, want 24 (8 branches x 3 files)", len(m))
	}
	seen := make(map[string]bool)
	for rel, hash := range m {
		if strings.HasPrefix(hash, "ERR:") {
			t.Fatalf("unexpected hash error for %s: %s", rel, hash)
		}
		seen[hash] = true
	}
	if len(seen) != 1 {
		t.Errorf("case_dups should share one content hash, got %d distinct", len(seen))
	}
}

func TestEmptyDirsCase(t *testing.T) {
	cfg := testConfig(t)
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	root := filepath.Join(cfg.BaseDir, "case_empty_dirs")

	for _, d := range []string{"empty", "empty2/subempty", "deep/nested/a/b/c/d/e", "zero"} {
		p := filepath.Join(root, filepath.FromSlash(d))
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Errorf("empty directory %s missing: %v", d, err)
		}
	}
	if m := readManifest(t, root); len(m) != 0 {
		t.Errorf("case_empty_dirs manifest has %d entries, want 0", len(m))
	}
}

func TestManyFilesCase(t *testing.T) {
	cfg := testConfig(t)
	cfg.ManyFiles = 37
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	root := filepath.Join(cfg.BaseDir, "case_many_files")

	m := readManifest(t, root)
	if len(m) != 37 {
		t.Fatalf("case_many_files manifest has %d entries, want 37", len(m))
	}
	first := filepath.Join("many_files", "file_00000.log")
	if _, ok := m[first]; !ok {
		t.Errorf("expected sequentially named entry %s in manifest", first)
	}
	info, err := os.Stat(filepath.Join(root, first))
	if err != nil {
		t.Fatalf("stat %s: %v", first, err)
	}
	if info.Size() != int64(cfg.TextSize) {
		t.Errorf("small file size = %d, want %d", info.Size(), cfg.TextSize)
	}
}

func TestSymlinksCase(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation is unreliable on windows")
	}
	cfg := testConfig(t)
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	root := filepath.Join(cfg.BaseDir, "case_symlinks")

	link := filepath.Join(root, "link_to_target.txt")
	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("lstat %s: %v", link, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("%s is not a symlink", link)
	}
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != "target.txt" {
		t.Errorf("in-tree link target = %q, want relative %q", target, "target.txt")
	}

	broken := filepath.Join(root, "broken_link.txt")
	if info, err := os.Lstat(broken); err != nil || info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("broken link missing or not a symlink: %v", err)
	}
	if _, err := os.Stat(broken); err == nil {
		t.Error("broken link target unexpectedly exists")
	}

	if _, err := os.Stat(filepath.Join(cfg.BaseDir, "outside_marker.txt")); err != nil {
		t.Errorf("outside marker missing: %v", err)
	}
}

func TestPermissionsCase(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits required")
	}
	cfg := testConfig(t)
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	p := filepath.Join(cfg.BaseDir, "case_permissions", "protected", "secret.log")
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat %s: %v", p, err)
	}
	if info.Mode().Perm()&0o400 != 0 {
		t.Errorf("owner read bit still set on %s: %v", p, info.Mode())
	}
}

func TestLargeFileCaseSparse(t *testing.T) {
	cfg := testConfig(t)
	cfg.LargeFileSize = 4 << 20
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	p := filepath.Join(cfg.BaseDir, "case_large_file", "big_logs", "bigfile.bin")
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat %s: %v", p, err)
	}
	if info.Size() != cfg.LargeFileSize {
		t.Errorf("large file logical size = %d, want %d", info.Size(), cfg.LargeFileSize)
	}
}

func TestGenerateIsSeedDeterministic(t *testing.T) {
	cfgA := testConfig(t)
	cfgB := testConfig(t)
	cfgA.TryPermissions = false
	cfgB.TryPermissions = false

	if _, err := Generate(cfgA); err != nil {
		t.Fatalf("Generate() A failed: %v", err)
	}
	if _, err := Generate(cfgB); err != nil {
		t.Fatalf("Generate() B failed: %v", err)
	}

	for _, name := range []string{"case_normal", "case_many_files", "case_dups"} {
		a, err := os.ReadFile(filepath.Join(cfgA.BaseDir, name, ManifestName))
		if err != nil {
			t.Fatalf("read manifest A: %v", err)
		}
		b, err := os.ReadFile(filepath.Join(cfgB.BaseDir, name, ManifestName))
		if err != nil {
			t.Fatalf("read manifest B: %v", err)
		}
		if string(a) != string(b) {
			t.Errorf("%s manifests differ between equally seeded runs", name)
		}
	}
}

func TestGenerateClearsExistingBaseDir(t *testing.T) {
	cfg := testConfig(t)
	stale := filepath.Join(cfg.BaseDir, "stale_leftover")
	if err := os.MkdirAll(stale, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(cfg); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("Generate() did not clear existing base directory")
	}
}
