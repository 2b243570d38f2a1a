package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the packtest CLI.
// It provides file counting functionality for directory trees.
func NewCountCmd() *cobra.Command {
	var (
		path         string
		showProgress bool
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count files in a directory tree",
		Long: `Count the total number of files in a directory tree.

Recursively walks a directory and counts all files (excluding
directories), reporting the total byte size as well. Useful for
sanity-checking many-files stress runs without hashing anything.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				path = args[0]
			}
			runCount(path, showProgress)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show progress every 10,000 files")

	return cmd
}

func runCount(path string, showProgress bool) {
	count := 0
	var totalBytes int64
	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		count++
		if info, err := d.Info(); err == nil {
			totalBytes += info.Size()
		}
		if showProgress && count%10000 == 0 {
			fmt.Printf("Progress: %d files counted\n", count)
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Error counting files: %v\n", err)
		return
	}

	fmt.Printf("Total files in %s: %d (%s)\n", path, count, humanize.Bytes(uint64(totalBytes)))
}
