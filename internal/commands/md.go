package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/markdata/internal/styles"
	"github.com/gerunddev/markdata/render"
)

// Md re-renders a markdown file through the serializer
func Md(args []string) {
	errorStyle := styles.ErrorStyle
	successStyle := styles.SuccessStyle

	paths := positionals(args, "--include", "--exclude", "--spacer", "-o", "--out")
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata md FILE [--include T,...] [--exclude T,...] [--spacer N] [-o OUT] [--overwrite] [--preview]"))
		os.Exit(1)
	}

	opts := render.Options{
		Include: splitList(flagValue(args, "--include")),
		Exclude: splitList(flagValue(args, "--exclude")),
		Spacer:  intFlag(args, 1, "--spacer"),
	}
	outPath := flagValue(args, "-o", "--out")
	overwrite := hasFlag(args, "--overwrite")

	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	out := doc.ToMarkdown(opts)

	if hasFlag(args, "--preview") {
		if rendered, err := renderMarkdown(out); err == nil {
			fmt.Print(rendered)
			return
		}
		// Renderer unavailable, fall through to plain output
	}

	if err := emit(out, outPath, overwrite); err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
	if outPath != "" {
		fmt.Println(successStyle.Render("✓ Wrote " + outPath))
	}
}
