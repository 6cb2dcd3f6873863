// Package element defines the typed block elements a markdown document is
// parsed into, plus their JSON and YAML payload encodings.
package element

// Kind identifies the block kind of an element. String() returns the
// canonical lowercase tag used for hierarchy keys and render filters.
type Kind int

const (
	KindUnknown Kind = iota
	KindMetadata
	KindHeader
	KindParagraph
	KindList
	KindTable
	KindCode
	KindBlockquote
	KindDefinitionList
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindMetadata:
		return "metadata"
	case KindHeader:
		return "header"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	case KindCode:
		return "code"
	case KindBlockquote:
		return "blockquote"
	case KindDefinitionList:
		return "def_list"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Element is the interface implemented by all block elements. The set of
// implementations is closed; code switching on the concrete type can treat
// the cases here as exhaustive.
type Element interface {
	Kind() Kind
	// Start and End are the 1-based document line range (inclusive) the
	// element was merged from.
	Start() int
	End() int
	element()
}

// Span records the document line range an element covers. Embed it in a
// variant and set it once at merge time.
type Span struct {
	StartLine int
	EndLine   int
}

func (s Span) Start() int { return s.StartLine }
func (s Span) End() int   { return s.EndLine }

// MetaEntry is one key/value pair of a metadata block. Keys keep their
// document order; use Metadata.Get for lookup.
type MetaEntry struct {
	Key   string
	Value Value
}

// Metadata is a validated frontmatter block. Entry order matches the
// document.
type Metadata struct {
	Entries []MetaEntry
	Span
}

func (m *Metadata) Kind() Kind { return KindMetadata }
func (m *Metadata) element()   {}

// Get returns the value for key, or nil and false if the key is absent.
func (m *Metadata) Get(key string) (Value, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Header is an ATX heading. Level is clamped to 1..6 at classification.
type Header struct {
	Level   int
	Content string
	Span
}

func (h *Header) Kind() Kind { return KindHeader }
func (h *Header) element()   {}

// Paragraph is a line of plain text. Blank paragraphs are pruned before the
// merged sequence is returned.
type Paragraph struct {
	Content string
	Span
}

func (p *Paragraph) Kind() Kind { return KindParagraph }
func (p *Paragraph) element()   {}

// ListKind distinguishes unordered from ordered lists. A kind change always
// starts a new List element.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) String() string {
	if k == Ordered {
		return "ol"
	}
	return "ul"
}

// Task is the checkbox state of a list item.
type Task int

const (
	TaskNone Task = iota
	TaskUnchecked
	TaskChecked
)

func (t Task) String() string {
	switch t {
	case TaskUnchecked:
		return "unchecked"
	case TaskChecked:
		return "checked"
	default:
		return ""
	}
}

// ListItem is one item of a List. Items nests arbitrarily deep; nesting is
// derived from marker indentation at merge time.
type ListItem struct {
	Content string
	Items   []ListItem
	Task    Task
}

// List is a run of same-kind list items.
type List struct {
	Type  ListKind
	Items []ListItem
	Span
}

func (l *List) Kind() Kind { return KindList }
func (l *List) element()   {}

// Column is one column of a Table. All columns of a table hold the same
// number of cells; short rows are padded with Null.
type Column struct {
	Name  string
	Cells []Value
}

// Table stores a pipe table column-oriented, preserving column order.
type Table struct {
	Columns []Column
	Span
}

func (t *Table) Kind() Kind { return KindTable }
func (t *Table) element()   {}

// Column returns the named column, or nil and false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Rows transposes the column-oriented storage back into rows. Useful for
// rendering and display; the column form stays authoritative.
func (t *Table) Rows() [][]Value {
	if len(t.Columns) == 0 {
		return nil
	}
	n := len(t.Columns[0].Cells)
	rows := make([][]Value, n)
	for i := 0; i < n; i++ {
		row := make([]Value, len(t.Columns))
		for j, col := range t.Columns {
			if i < len(col.Cells) {
				row[j] = col.Cells[i]
			} else {
				row[j] = Null{}
			}
		}
		rows[i] = row
	}
	return rows
}

// Code is a fenced code block. Language is empty when the fence had no tag
// or the tag failed validation; Content holds the dedented body verbatim.
type Code struct {
	Language string
	Content  string
	Span
}

func (c *Code) Kind() Kind { return KindCode }
func (c *Code) element()   {}

// QuoteItem is one line of a blockquote. Items holds quotes nested one `>`
// deeper.
type QuoteItem struct {
	Content string
	Items   []QuoteItem
}

// Blockquote is a run of `>`-prefixed lines merged by nesting level.
type Blockquote struct {
	Items []QuoteItem
	Span
}

func (b *Blockquote) Kind() Kind { return KindBlockquote }
func (b *Blockquote) element()   {}

// DefinitionList is a term plus its `: `-prefixed descriptions. A term with
// no descriptions keeps an empty slice.
type DefinitionList struct {
	Term         string
	Descriptions []string
	Span
}

func (d *DefinitionList) Kind() Kind { return KindDefinitionList }
func (d *DefinitionList) element()   {}

// Separator is a horizontal rule. Marker keeps the literal rule text so
// re-rendering preserves the author's choice of `---`, `***` or `___`.
type Separator struct {
	Marker string
	Span
}

func (s *Separator) Kind() Kind { return KindSeparator }
func (s *Separator) element()   {}
