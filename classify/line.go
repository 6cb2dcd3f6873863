// Package classify turns raw markdown text into a flat sequence of
// classified lines, the input of the merge step. Classification never
// rejects a line; anything ambiguous degrades to a paragraph.
package classify

import "github.com/gerunddev/markdata/element"

// LineKind is the detected block kind of a single input line.
type LineKind int

const (
	LineParagraph LineKind = iota
	LineHeader
	LineUnordered
	LineOrdered
	LineTableRow
	LineBlockquote
	LineCode
	LineRule
	LineTerm
	LineDescription
)

func (k LineKind) String() string {
	switch k {
	case LineHeader:
		return "header"
	case LineUnordered:
		return "ul"
	case LineOrdered:
		return "ol"
	case LineTableRow:
		return "table_row"
	case LineBlockquote:
		return "blockquote"
	case LineCode:
		return "code"
	case LineRule:
		return "hr"
	case LineTerm:
		return "dt"
	case LineDescription:
		return "dd"
	default:
		return "paragraph"
	}
}

// Inline is the re-classified content of a list item or blockquote line: a
// header if the text looks like one, otherwise a paragraph carrying the raw
// text.
type Inline struct {
	Header bool
	Level  int
	Text   string
}

// Line is one classified input line. Kind decides which fields carry data:
// Text holds the raw line for paragraphs and code, the content for headers,
// terms and descriptions, the item content for list lines, the quoted text
// for blockquotes and the literal marker for rules. The content pass fills
// Content for list and blockquote lines.
type Line struct {
	Kind   LineKind
	Num    int // 1-based document line number
	Indent int

	Text  string
	Level int // header level, or blockquote nesting depth

	// List item fields.
	Marker       string
	Task         element.Task
	MarkerIndent int
	ItemIndent   int

	// Table row fields.
	Cells        []string
	SeparatorRow bool

	Content Inline
}

// Blank reports whether the line is an empty or whitespace-only paragraph.
func (l Line) Blank() bool {
	return l.Kind == LineParagraph && isBlank(l.Text)
}
