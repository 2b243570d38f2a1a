// Package cmd implements the cobra subcommands for the packtest CLI.
package cmd
