package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	markdata "github.com/gerunddev/markdata"
	"github.com/gerunddev/markdata/element"
)

// hasFlag reports whether any of the given names appears in args
func hasFlag(args []string, names ...string) bool {
	for _, arg := range args {
		for _, name := range names {
			if arg == name {
				return true
			}
		}
	}
	return false
}

// flagValue returns the value following the first occurrence of any of
// the given names, or "" when absent
func flagValue(args []string, names ...string) string {
	for i, arg := range args {
		for _, name := range names {
			if arg == name && i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

// flagValues returns every value following occurrences of the given names
func flagValues(args []string, names ...string) []string {
	var out []string
	for i, arg := range args {
		for _, name := range names {
			if arg == name && i+1 < len(args) {
				out = append(out, args[i+1])
			}
		}
	}
	return out
}

// intFlag parses the value following any of the given names, falling
// back to def when absent or malformed
func intFlag(args []string, def int, names ...string) int {
	v := flagValue(args, names...)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// positionals returns the non-flag arguments, skipping the values
// consumed by the named value-taking flags
func positionals(args []string, valueFlags ...string) []string {
	valued := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		valued[f] = true
	}

	var out []string
	skip := false
	for _, arg := range args {
		if skip {
			skip = false
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			skip = valued[arg]
			continue
		}
		out = append(out, arg)
	}
	return out
}

// splitList splits a comma-separated flag value into trimmed parts
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// loadDoc reads and parses one markdown file
func loadDoc(path string) (*markdata.Document, error) {
	return markdata.ParseFile(path)
}

// emit writes content to path, or to stdout when path is empty. File
// output refuses to clobber an existing file unless overwrite is set.
func emit(content, path string, overwrite bool) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, pass --overwrite to replace it", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// renderMarkdown renders markdown source for the terminal
func renderMarkdown(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}

// elementText flattens an element's textual content, one line per
// content piece. Search matching and previews both run on this form.
func elementText(el element.Element) string {
	switch e := el.(type) {
	case *element.Metadata:
		var parts []string
		for _, entry := range e.Entries {
			parts = append(parts, entry.Key+": "+entry.Value.String())
		}
		return strings.Join(parts, "\n")
	case *element.Header:
		return e.Content
	case *element.Paragraph:
		return e.Content
	case *element.List:
		return strings.Join(listText(e.Items), "\n")
	case *element.Table:
		var parts []string
		for _, row := range e.Rows() {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = cell.String()
			}
			parts = append(parts, strings.Join(cells, " | "))
		}
		names := make([]string, len(e.Columns))
		for i, col := range e.Columns {
			names[i] = col.Name
		}
		return strings.Join(append([]string{strings.Join(names, " | ")}, parts...), "\n")
	case *element.Code:
		if e.Language != "" {
			return e.Language + "\n" + e.Content
		}
		return e.Content
	case *element.Blockquote:
		return strings.Join(quoteText(e.Items), "\n")
	case *element.DefinitionList:
		return strings.Join(append([]string{e.Term}, e.Descriptions...), "\n")
	case *element.Separator:
		return e.Marker
	default:
		return ""
	}
}

func listText(items []element.ListItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Content)
		out = append(out, listText(it.Items)...)
	}
	return out
}

func quoteText(items []element.QuoteItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Content)
		out = append(out, quoteText(it.Items)...)
	}
	return out
}

// elementPreview is the first content line, truncated for display
func elementPreview(el element.Element, width int) string {
	text := elementText(el)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return truncate(text, width)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}
