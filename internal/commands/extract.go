package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/internal/styles"
)

// Extract emits the elements matching the requested kinds
func Extract(args []string) {
	errorStyle := styles.ErrorStyle
	successStyle := styles.SuccessStyle

	kinds := flagValues(args, "-e", "--element")
	paths := positionals(args, "-e", "--element", "--to", "--indent", "-o", "--out")
	if len(paths) != 1 || len(kinds) == 0 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata extract FILE -e KIND [-e KIND...] [--to json|yaml] [--indent N] [-o OUT] [--overwrite]"))
		os.Exit(1)
	}

	for i, kind := range kinds {
		kinds[i] = strings.ToLower(strings.TrimSpace(kind))
		if !element.KnownTag(kinds[i]) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown element kind %q", kind)))
			os.Exit(1)
		}
	}

	to := flagValue(args, "--to")
	if to == "" {
		to = "json"
	}
	outPath := flagValue(args, "-o", "--out")
	overwrite := hasFlag(args, "--overwrite")

	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	blocks := doc.BuildingBlocks(kinds...)

	var out string
	switch to {
	case "json":
		out, err = element.FlatJSON(blocks, intFlag(args, 2, "--indent"))
	case "yaml":
		out, err = element.FlatYAML(blocks)
	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown extract format %q: must be json or yaml", to)))
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
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Wrote %d element(s) to %s", len(blocks), outPath)))
	}
}
