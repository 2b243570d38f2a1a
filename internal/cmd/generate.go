package cmd

import (
	"log"

	"github.com/Kirizaki/packtest/fixture"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates and returns the generate subcommand for the
// packtest CLI. It populates a base directory with fixture cases for
// pack/unpack testing.
func NewGenerateCmd() *cobra.Command {
	cfg := fixture.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate fixture directory trees for pack/unpack testing",
		Long: `Generate a base directory of named test cases for validating an archiver.

Each case exercises one filesystem scenario: ordinary mixed content, empty
directories, many small files, special filenames, symlinks, unreadable
files, a sparse large file, and duplicate content across directory
branches. Every case gets a manifest.txt listing the SHA-256 of each
regular file, sorted by relative path.

Running with no flags reproduces the default fixture set in ./test_cases.
The base directory is removed and recreated on every run.`,
		Run: func(cmd *cobra.Command, args []string) {
			runGenerate(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.BaseDir, "output", "o", cfg.BaseDir, "Base directory for generated cases (cleared first)")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Base random seed for case content")
	cmd.Flags().IntVarP(&cfg.ManyFiles, "count", "c", cfg.ManyFiles, "Number of files in the many-files case")
	cmd.Flags().Int64Var(&cfg.LargeFileSize, "large-size", cfg.LargeFileSize, "Logical size of the large-file case in bytes")
	cmd.Flags().BoolVar(&cfg.Sparse, "sparse", cfg.Sparse, "Create the large file sparse, with full-write fallback")
	cmd.Flags().BoolVar(&cfg.TrySymlinks, "symlinks", cfg.TrySymlinks, "Attempt symlink creation")
	cmd.Flags().BoolVar(&cfg.TryPermissions, "permissions", cfg.TryPermissions, "Attempt to create an unreadable file")
	cmd.Flags().BoolVar(&cfg.WriteManifest, "manifest", cfg.WriteManifest, "Write manifest.txt at each case root")
	cmd.Flags().BoolVar(&cfg.LongPaths, "long-paths", cfg.LongPaths, "Include the path-length limit case")

	return cmd
}

func runGenerate(cfg fixture.Config) {
	res, err := fixture.Generate(cfg)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	res.PrintSummary()
}
