package cmd

import (
	"github.com/Kirizaki/packtest/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the packtest CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packtest",
		Short: "packtest - fixture generation and verification for pack/unpack testing",
		Long: `packtest supports manual testing of an external pack/unpack tool.

It generates directory trees full of filesystem edge cases (duplicates,
empty directories, special names, symlinks, unreadable files, sparse large
files) and verifies that a tree survives an archive round trip byte for
byte.

Use subcommands to perform different operations:
  - generate: Populate a base directory with named fixture cases and manifests
  - verify: Recursively compare an original tree against an unpacked one
  - count: Count files in directory trees`,
		Version: version.GetFullVersion(),
	}

	groupFixtures := "fixtures"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFixtures,
		Title: "Fixture Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	generateCmd := NewGenerateCmd()
	verifyCmd := NewVerifyCmd()
	countCmd := NewCountCmd()

	generateCmd.GroupID = groupFixtures
	verifyCmd.GroupID = groupFixtures
	countCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(countCmd)

	return rootCmd
}
