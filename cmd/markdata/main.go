package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/markdata/internal/commands"
	"github.com/gerunddev/markdata/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "convert":
		commands.Convert(os.Args[2:])
	case "info":
		commands.Info(os.Args[2:])
	case "extract":
		commands.Extract(os.Args[2:])
	case "md":
		commands.Md(os.Args[2:])
	case "tree":
		commands.Tree(os.Args[2:])
	case "search":
		commands.Search(os.Args[2:])
	case "diff":
		commands.Diff(os.Args[2:])
	case "browse", "elements":
		commands.Browse(os.Args[2:])
	case "batch":
		commands.Batch(os.Args[2:])
	case "config":
		commands.Config(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("markdata v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`markdata - Markdown to structured data converter

Usage:
  markdata <command> [options]

Commands:
  convert     Convert one file to JSON or YAML
  info        Show parse analytics for a file
  extract     Pull out elements by kind
  md          Re-render a file through the serializer
  tree        Print the section hierarchy
  search      Search element contents across files
  diff        Show the round-trip normalization diff
  browse      Browse a file's elements interactively
  batch       Run a subcommand over many files
  config      Manage configuration (show, init, path)
  version     Show version information
  help        Show this help message

Examples:
  markdata convert notes/plan.md
  markdata convert notes/plan.md --format list --to yaml
  markdata info notes/plan.md
  markdata extract notes/plan.md -e table -e code
  markdata md notes/plan.md --exclude code --spacer 2
  markdata tree notes/plan.md --show-content
  markdata search TODO notes/*.md --element-type list
  markdata diff notes/plan.md --pretty
  markdata browse notes/plan.md
  markdata batch convert --format yaml --workers 8
  markdata config init

Configuration:
  Config file: %s
  State file:  %s

For more information, visit: https://github.com/gerunddev/markdata
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
