package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gerunddev/markdata/element"
)

// Element renders a single element to markdown, without surrounding
// spacing. Malformed or empty elements render to the empty string.
func Element(el element.Element) string {
	switch e := el.(type) {
	case *element.Metadata:
		return renderMetadata(e)
	case *element.Header:
		return renderHeader(e)
	case *element.Paragraph:
		return e.Content
	case *element.List:
		return strings.Join(listLines(e.Items, e.Type, 0), "\n")
	case *element.Table:
		return renderTable(e)
	case *element.Code:
		return "```" + e.Language + "\n" + e.Content + "\n```"
	case *element.Blockquote:
		return strings.Join(quoteLines(e.Items, 1), "\n")
	case *element.DefinitionList:
		return renderDefinitionList(e)
	case *element.Separator:
		return e.Marker
	default:
		return ""
	}
}

func renderHeader(h *element.Header) string {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + h.Content
}

func renderMetadata(m *element.Metadata) string {
	if len(m.Entries) == 0 {
		return ""
	}
	lines := []string{"---"}
	for _, entry := range m.Entries {
		key := strings.ReplaceAll(entry.Key, "_", " ")
		lines = append(lines, key+": "+metaValue(entry.Value))
	}
	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}

// metaValue writes a metadata value so it parses back to the same type:
// strings that would be misread get quoted, lists render bracketed.
func metaValue(v element.Value) string {
	switch t := v.(type) {
	case element.Str:
		return metaString(string(t))
	case element.ValueList:
		items := make([]string, len(t))
		for i, item := range t {
			if s, ok := item.(element.Str); ok {
				items[i] = metaString(string(s))
			} else {
				items[i] = item.String()
			}
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return v.String()
	}
}

func metaString(s string) string {
	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return strings.ToLower(s)
	}
	if needsQuotes(s) {
		return `"` + s + `"`
	}
	return s
}

func needsQuotes(s string) bool {
	if !strings.ContainsAny(s, ":,#") {
		return false
	}
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return false
		}
	}
	return true
}

// listLines renders items depth-first. Unordered levels indent by 2,
// ordered by 3 so a numbered child still lines up past its parent marker;
// ordered items renumber 1..N per level.
func listLines(items []element.ListItem, kind element.ListKind, depth int) []string {
	unit := 2
	if kind == element.Ordered {
		unit = 3
	}
	indent := strings.Repeat(" ", depth*unit)

	var lines []string
	for i, item := range items {
		line := indent
		if kind == element.Ordered {
			line += strconv.Itoa(i+1) + ". "
		} else {
			line += "- "
		}
		switch item.Task {
		case element.TaskChecked:
			line += "[x]"
		case element.TaskUnchecked:
			line += "[ ]"
		}
		if item.Task != element.TaskNone && item.Content != "" {
			line += " "
		}
		line += item.Content
		lines = append(lines, line)
		lines = append(lines, listLines(item.Items, kind, depth+1)...)
	}
	return lines
}

// renderTable pads every column to its widest entry plus one space on
// each side, headers included, and writes the dashed separator row after
// the header.
func renderTable(t *element.Table) string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Name
		w := utf8.RuneCountInString(col.Name)
		for _, cell := range col.Cells {
			if n := utf8.RuneCountInString(cell.String()); n > w {
				w = n
			}
		}
		widths[i] = w + 2
	}

	rows := []string{tableRow(header, widths)}

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	rows = append(rows, "|"+strings.Join(seps, "|")+"|")

	for _, row := range t.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		rows = append(rows, tableRow(cells, widths))
	}
	return strings.Join(rows, "\n")
}

func tableRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - utf8.RuneCountInString(cell) - 1
		parts[i] = " " + cell + strings.Repeat(" ", pad)
	}
	return "|" + strings.Join(parts, "|") + "|"
}

func quoteLines(items []element.QuoteItem, level int) []string {
	prefix := strings.Repeat(">", level) + " "
	var lines []string
	for _, item := range items {
		lines = append(lines, prefix+item.Content)
		lines = append(lines, quoteLines(item.Items, level+1)...)
	}
	return lines
}

func renderDefinitionList(d *element.DefinitionList) string {
	lines := []string{d.Term}
	for _, desc := range d.Descriptions {
		lines = append(lines, ": "+desc)
	}
	return strings.Join(lines, "\n")
}
