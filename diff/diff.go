// Package diff reports how markdown text changes across a parse and
// re-render cycle, as a unified diff.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	markdata "github.com/gerunddev/markdata"
	"github.com/gerunddev/markdata/render"
)

// Unified returns the unified diff between two versions of a text. An
// empty string means the texts are identical.
func Unified(oldName, newName, before, after string) string {
	edits := myers.ComputeEdits(span.URIFromPath(oldName), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, before, edits))
}

// RoundTrip parses source, renders it back with opts and diffs the two
// texts. Both sides are normalized to end with a newline before
// comparing. An empty result means the render reproduces the source.
func RoundTrip(name, source string, opts render.Options) string {
	rendered := markdata.New(source).ToMarkdown(opts)
	return Unified(name, name+" (rendered)", ensureNewline(source), ensureNewline(rendered))
}

// Pretty renders a unified diff for the terminal, syntax highlighted as
// a markdown diff fence. On any renderer failure the fenced plain diff
// is returned instead.
func Pretty(unified string) string {
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fenced
	}
	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}
	return rendered
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
