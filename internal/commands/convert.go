package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/markdata/internal/styles"
)

// Convert parses one markdown file and emits it as structured data
func Convert(args []string) {
	errorStyle := styles.ErrorStyle
	successStyle := styles.SuccessStyle

	paths := positionals(args, "--format", "--to", "--indent", "-o", "--out")
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata convert FILE [--format dict|list] [--to json|yaml] [--indent N] [--compact] [-o OUT] [--overwrite]"))
		os.Exit(1)
	}

	format := flagValue(args, "--format")
	if format == "" {
		format = "dict"
	}
	to := flagValue(args, "--to")
	if to == "" {
		to = "json"
	}
	indent := intFlag(args, 2, "--indent")
	if hasFlag(args, "--compact") {
		indent = 0
	}
	outPath := flagValue(args, "-o", "--out")
	overwrite := hasFlag(args, "--overwrite")

	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	var out string
	switch {
	case format == "dict" && to == "json":
		out, err = doc.ToJSON(indent)
	case format == "dict" && to == "yaml":
		out, err = doc.ToYAML()
	case format == "list" && to == "json":
		out, err = doc.ElementsJSON(indent)
	case format == "list" && to == "yaml":
		out, err = doc.ElementsYAML()
	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown output selection --format %s --to %s (formats: dict, list; targets: json, yaml)", format, to)))
		os.Exit(1)
	}
	if err != nil {
		fmt.Println(errorStyle.Render("✗ Serialization failed: " + err.Error()))
		os.Exit(1)
	}

	if err := emit(out, outPath, overwrite); err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
	if outPath != "" {
		fmt.Println(successStyle.Render("✓ Wrote " + outPath))
	}
}
