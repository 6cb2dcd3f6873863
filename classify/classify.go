package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gerunddev/markdata/element"
)

var (
	taskRe    = regexp.MustCompile(`^\[([ xX])\](\s*)(.*)$`)
	orderedRe = regexp.MustCompile(`^(\d{1,9}[).])(\s+)(.+)$`)
	headerRe  = regexp.MustCompile(`^(#+)\s+(.*)$`)
)

// Lines classifies raw markdown text line by line and re-classifies the
// inline content of list items and blockquotes. Leading blank lines are
// skipped; line numbers stay relative to the original document.
func Lines(markdown string) []Line {
	return classifyContent(classifyAll(markdown))
}

func classifyAll(markdown string) []Line {
	raw := strings.Split(markdown, "\n")

	start := 0
	for start < len(raw) && isBlank(raw[start]) {
		start++
	}

	classified := make([]Line, 0, len(raw)-start)
	inCode := false

	for i := start; i < len(raw); i++ {
		line := raw[i]
		num := i + 1
		trimmed := strings.TrimSpace(line)
		indent := leadingSpace(line)

		// Fence lines toggle code mode; inside a fence every line is
		// code verbatim, whatever it looks like.
		if strings.HasPrefix(trimmed, "```") {
			classified = append(classified, Line{Kind: LineCode, Num: num, Indent: indent, Text: line})
			inCode = !inCode
			continue
		}
		if inCode {
			classified = append(classified, Line{Kind: LineCode, Num: num, Indent: indent, Text: line})
			continue
		}

		if indent <= 3 && isRule(trimmed) {
			classified = append(classified, Line{Kind: LineRule, Num: num, Indent: indent, Text: trimmed})
			continue
		}

		if l, ok := unorderedItem(line); ok {
			l.Num, l.Indent = num, indent
			classified = append(classified, l)
			continue
		}

		if l, ok := orderedItem(line); ok {
			l.Num, l.Indent = num, indent
			classified = append(classified, l)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			classified = append(classified, headerOrParagraph(trimmed, line, indent, num))
			continue
		}

		if l, ok := tableRow(line); ok {
			l.Num = num
			classified = append(classified, l)
			continue
		}

		if l, ok := quoteLine(line); ok {
			l.Num, l.Indent = num, indent
			classified = append(classified, l)
			continue
		}

		// A ": " line continues a definition list only with a usable
		// antecedent: a non-blank paragraph (retagged to a term, one
		// step back) or a previous term/description.
		if strings.HasPrefix(trimmed, ": ") && len(classified) > 0 {
			prev := &classified[len(classified)-1]
			switch prev.Kind {
			case LineParagraph:
				if !isBlank(prev.Text) && !strings.HasPrefix(prev.Text, ":") {
					*prev = Line{Kind: LineTerm, Num: prev.Num, Indent: prev.Indent, Text: prev.Text}
					classified = append(classified, Line{Kind: LineDescription, Num: num, Indent: indent, Text: trimmed[2:]})
					continue
				}
			case LineDescription, LineTerm:
				classified = append(classified, Line{Kind: LineDescription, Num: num, Indent: indent, Text: trimmed[2:]})
				continue
			}
		}

		classified = append(classified, Line{Kind: LineParagraph, Num: num, Indent: indent, Text: line})
	}

	return classified
}

// classifyContent re-applies header/paragraph detection to the inner text
// of list items and blockquotes, one level deep.
func classifyContent(lines []Line) []Line {
	for i := range lines {
		switch lines[i].Kind {
		case LineUnordered, LineOrdered, LineBlockquote:
			lines[i].Content = inlineContent(lines[i].Text)
		}
	}
	return lines
}

func inlineContent(content string) Inline {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "#") {
		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			return Inline{Header: true, Level: clampLevel(len(m[1])), Text: m[2]}
		}
	}
	return Inline{Text: content}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

func clampLevel(level int) int {
	if level > 6 {
		return 6
	}
	return level
}

// isRule reports whether a trimmed line is a horizontal rule: at least
// three repeats of -, * or _, with only that marker and whitespace.
func isRule(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	marker := rune(trimmed[0])
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for _, r := range trimmed {
		switch {
		case r == marker:
			count++
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return count >= 3
}

func unorderedItem(raw string) (Line, bool) {
	rest := strings.TrimLeftFunc(raw, unicode.IsSpace)
	markerIndent := len(raw) - len(rest)

	if rest == "" {
		return Line{}, false
	}
	marker := rest[0]
	if marker != '-' && marker != '*' && marker != '+' {
		return Line{}, false
	}
	if len(rest) < 2 || rest[1] != ' ' {
		return Line{}, false
	}

	remaining := strings.TrimLeftFunc(rest[2:], unicode.IsSpace)

	if m := taskRe.FindStringSubmatch(remaining); m != nil {
		task := element.TaskUnchecked
		if strings.EqualFold(m[1], "x") {
			task = element.TaskChecked
		}
		content := strings.TrimRightFunc(m[3], unicode.IsSpace)
		itemIndent := markerIndent + 5 // marker, space, checkbox
		if content != "" {
			itemIndent += len(m[2])
		}
		return Line{
			Kind:         LineUnordered,
			Text:         content,
			Marker:       string(marker),
			Task:         task,
			ItemIndent:   itemIndent,
			MarkerIndent: markerIndent,
		}, true
	}

	content := strings.TrimRightFunc(remaining, unicode.IsSpace)

	// A line of repeated markers is a rule, not a list item.
	if markerOnly(content, rune(marker)) {
		return Line{}, false
	}

	spacesAfterMarker := len(rest[2:]) - len(remaining)
	itemIndent := markerIndent + 2
	if content != "" {
		itemIndent += spacesAfterMarker
	}
	return Line{
		Kind:         LineUnordered,
		Text:         content,
		Marker:       string(marker),
		ItemIndent:   itemIndent,
		MarkerIndent: markerIndent,
	}, true
}

func markerOnly(content string, marker rune) bool {
	count := 0
	for _, r := range content {
		switch {
		case r == marker:
			count++
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return count >= 2
}

func orderedItem(raw string) (Line, bool) {
	rest := strings.TrimLeftFunc(raw, unicode.IsSpace)
	markerIndent := len(raw) - len(rest)

	m := orderedRe.FindStringSubmatch(rest)
	if m == nil {
		return Line{}, false
	}
	marker, spaces, remaining := m[1], m[2], m[3]

	if tm := taskRe.FindStringSubmatch(remaining); tm != nil {
		task := element.TaskUnchecked
		if strings.EqualFold(tm[1], "x") {
			task = element.TaskChecked
		}
		content := strings.TrimRightFunc(tm[3], unicode.IsSpace)
		itemIndent := markerIndent + len(marker) + len(spaces) + 3
		if content != "" {
			itemIndent += len(tm[2])
		}
		return Line{
			Kind:         LineOrdered,
			Text:         content,
			Marker:       marker,
			Task:         task,
			ItemIndent:   itemIndent,
			MarkerIndent: markerIndent,
		}, true
	}

	content := strings.TrimRightFunc(remaining, unicode.IsSpace)
	itemIndent := markerIndent + len(marker)
	if content != "" {
		itemIndent += len(spaces)
	}
	return Line{
		Kind:         LineOrdered,
		Text:         content,
		Marker:       marker,
		ItemIndent:   itemIndent,
		MarkerIndent: markerIndent,
	}, true
}

func headerOrParagraph(trimmed, raw string, indent, num int) Line {
	if m := headerRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineHeader, Num: num, Indent: indent, Level: clampLevel(len(m[1])), Text: m[2]}
	}
	return Line{Kind: LineParagraph, Num: num, Indent: indent, Text: raw}
}

func tableRow(raw string) (Line, bool) {
	if !strings.Contains(raw, "|") {
		return Line{}, false
	}
	trimmed := strings.TrimSpace(raw)
	indent := leadingSpace(raw)

	if isSeparatorRow(trimmed) {
		return Line{Kind: LineTableRow, Indent: indent, SeparatorRow: true}, true
	}

	inner := strings.Trim(trimmed, "|")
	if inner == "" {
		return Line{}, false
	}
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return Line{Kind: LineTableRow, Indent: indent, Cells: cells}, true
}

// isSeparatorRow reports whether a trimmed line is a table separator row:
// at least one hyphen and nothing but hyphens and spaces per cell.
func isSeparatorRow(trimmed string) bool {
	cleaned := strings.Trim(trimmed, "| \t")
	if cleaned == "" {
		return false
	}
	if !strings.Contains(cleaned, "-") {
		return false
	}
	for _, cell := range strings.Split(cleaned, "|") {
		for _, r := range strings.TrimSpace(cell) {
			if r != '-' && r != ' ' {
				return false
			}
		}
	}
	return true
}

func quoteLine(raw string) (Line, bool) {
	rest := strings.TrimLeftFunc(raw, unicode.IsSpace)
	if !strings.HasPrefix(rest, ">") {
		return Line{}, false
	}

	// Count all > markers up to the first real content character;
	// interleaved spaces do not break the run.
	level := 0
	contentStart := 0
scan:
	for i, r := range rest {
		switch {
		case r == '>':
			level++
			contentStart = i + 1
		case unicode.IsSpace(r):
		default:
			break scan
		}
	}

	return Line{Kind: LineBlockquote, Level: level, Text: strings.TrimSpace(rest[contentStart:])}, true
}
