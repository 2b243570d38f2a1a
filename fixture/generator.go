package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// CaseResult summarizes one generated case.
type CaseResult struct {
	Name      string
	Path      string
	Files     int
	TotalSize int64
	Problems  []Problem
}

// Result summarizes one full generator run.
type Result struct {
	RunID string
	Cases []CaseResult
}

// caseList returns the builders in their fixed run order. case_long_paths
// is defined but excluded unless Config.LongPaths enables it.
func caseList(cfg Config) []caseDef {
	cases := []caseDef{
		{"case_normal", buildNormal},
		{"case_empty_dirs", buildEmptyDirs},
		{"case_many_files", buildManyFiles},
		{"case_special_names", buildSpecialNames},
		{"case_symlinks", buildSymlinks},
		{"case_permissions", buildPermissions},
		{"case_large_file", buildLargeFile},
		{"case_dups", buildCrossDirDups},
	}
	if cfg.LongPaths {
		cases = append(cases, caseDef{"case_long_paths", buildLongPaths})
	}
	return cases
}

// Generate clears and recreates cfg.BaseDir, builds every case in order,
// and writes per-case manifests. Recoverable per-file problems are printed
// under the case they belong to and never stop the run; only setup failures
// and unexpected filesystem errors abort it.
func Generate(cfg Config) (*Result, error) {
	if cfg.BaseDir == "" {
		cfg.BaseDir = DefaultBaseDir
	}
	if _, err := os.Stat(cfg.BaseDir); err == nil {
		fmt.Printf("Removing existing directory %s\n", cfg.BaseDir)
	}
	if err := os.RemoveAll(cfg.BaseDir); err != nil {
		return nil, fmt.Errorf("failed to clear base directory %s: %w", cfg.BaseDir, err)
	}
	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", cfg.BaseDir, err)
	}

	res := &Result{RunID: uuid.New().String()}
	for _, cd := range caseList(cfg) {
		root := filepath.Join(cfg.BaseDir, cd.Name)
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("failed to create case directory %s: %w", root, err)
		}

		problems, err := cd.Build(root, caseRand(cfg.Seed, cd.Name), cfg)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", cd.Name, err)
		}
		for _, p := range problems {
			fmt.Printf("[%s] %s\n", cd.Name, p)
		}

		cr := CaseResult{Name: cd.Name, Path: root, Problems: problems}
		if cfg.WriteManifest {
			entries, err := CollectEntries(root)
			if err != nil {
				return nil, fmt.Errorf("case %s: %w", cd.Name, err)
			}
			if err := WriteManifest(root, entries); err != nil {
				return nil, fmt.Errorf("case %s: failed to write manifest: %w", cd.Name, err)
			}
			cr.Files = len(entries)
			for _, e := range entries {
				cr.TotalSize += e.Size
			}
		}
		res.Cases = append(res.Cases, cr)
	}
	return res, nil
}

// PrintSummary prints the created case paths with file counts and sizes.
func (r *Result) PrintSummary() {
	fmt.Println("\nCreated cases:")
	for _, c := range r.Cases {
		fmt.Printf("  - %s (%d files, %s)\n", c.Path, c.Files, humanize.Bytes(uint64(c.TotalSize)))
	}
	fmt.Printf("\nRun ID: %s\n", r.RunID)
	fmt.Println("\nNote:")
	fmt.Println(" - Each case has a manifest.txt unless manifests were disabled.")
	fmt.Println(" - Special names and symlinks may be skipped on some OSes; problems printed above.")
}
