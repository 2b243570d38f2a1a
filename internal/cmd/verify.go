package cmd

import (
	"fmt"
	"os"

	"github.com/Kirizaki/packtest/dircmp"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates and returns the verify subcommand for the packtest
// CLI. It decides whether an unpacked tree matches the original exactly.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify ORIGINAL_DIR UNPACKED_DIR",
		Short: "Verify two directory trees are byte-for-byte identical",
		Long: `Recursively compare an original directory against an unpacked one.

Every discrepancy is reported: entries present on only one side, files
whose content differs, symlinks with different targets, type mismatches,
and entries that could not be examined. Symlinks are compared by target,
so matching dangling links are not a difference.

Exit status: 0 if the trees are identical, 2 if any differences were
found, 1 on usage errors or when either argument is not a directory.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runVerify(args[0], args[1])
		},
	}

	return cmd
}

func runVerify(original, unpacked string) {
	res, err := dircmp.Compare(original, unpacked)
	if err != nil {
		fmt.Printf("%v\n", err)
		fmt.Println("Both arguments must be directories.")
		os.Exit(1)
	}

	for _, d := range res.Diffs {
		fmt.Println(d)
	}

	if res.Identical() {
		fmt.Println("Directories are identical!")
		return
	}
	fmt.Println("Directories differ!")
	os.Exit(2)
}
