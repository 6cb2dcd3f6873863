package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerunddev/markdata/diff"
	"github.com/gerunddev/markdata/internal/mdfile"
	"github.com/gerunddev/markdata/internal/styles"
	"github.com/gerunddev/markdata/render"
)

// Diff shows what normalization a parse and re-render applies to a file
func Diff(args []string) {
	errorStyle := styles.ErrorStyle
	successStyle := styles.SuccessStyle

	paths := positionals(args, "--spacer")
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata diff FILE [--spacer N] [--pretty]"))
		os.Exit(1)
	}

	text, err := mdfile.Read(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	opts := render.Options{Spacer: intFlag(args, 1, "--spacer")}
	unified := diff.RoundTrip(filepath.Base(paths[0]), text, opts)
	if unified == "" {
		fmt.Println(successStyle.Render("✓ " + paths[0] + " round-trips cleanly"))
		return
	}

	if hasFlag(args, "--pretty") {
		fmt.Print(diff.Pretty(unified))
		return
	}
	fmt.Print(unified)
}
