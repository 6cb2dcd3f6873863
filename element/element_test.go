package element

import (
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindMetadata, "metadata"},
		{KindHeader, "header"},
		{KindParagraph, "paragraph"},
		{KindList, "list"},
		{KindTable, "table"},
		{KindCode, "code"},
		{KindBlockquote, "blockquote"},
		{KindDefinitionList, "def_list"},
		{KindSeparator, "separator"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestMatchTag(t *testing.T) {
	h2 := &Header{Level: 2, Content: "Section"}
	para := &Paragraph{Content: "text"}
	table := &Table{}

	tests := []struct {
		name     string
		el       Element
		tag      string
		expected bool
	}{
		{"all matches header", h2, "all", true},
		{"all matches paragraph", para, "all", true},
		{"headers matches header", h2, "headers", true},
		{"header matches header", h2, "header", true},
		{"headers rejects paragraph", para, "headers", false},
		{"level tag matches", h2, "h2", true},
		{"level tag rejects other level", h2, "h3", false},
		{"level tag rejects non-header", para, "h1", false},
		{"kind tag matches", table, "table", true},
		{"kind tag rejects other kind", table, "paragraph", false},
		{"unknown tag matches nothing", para, "section", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchTag(tt.el, tt.tag); got != tt.expected {
				t.Errorf("MatchTag(%v, %q) = %v, want %v", tt.el.Kind(), tt.tag, got, tt.expected)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"string", Str("hello"), "hello"},
		{"int", Int(42), "42"},
		{"float keeps fraction", Float(2.5), "2.5"},
		{"integral float keeps decimal point", Float(2.0), "2.0"},
		{"bool true", Bool(true), "True"},
		{"bool false", Bool(false), "False"},
		{"null", Null{}, ""},
		{"list", ValueList{Str("a"), Int(1), Bool(true)}, "[a, 1, True]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMetadataGet(t *testing.T) {
	m := &Metadata{Entries: []MetaEntry{
		{Key: "title", Value: Str("A")},
		{Key: "draft", Value: Bool(false)},
	}}

	v, ok := m.Get("title")
	if !ok || v.String() != "A" {
		t.Errorf("Get(title) = %v, %v, want A, true", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) reported a value")
	}
}

func TestTableRows(t *testing.T) {
	table := &Table{Columns: []Column{
		{Name: "A", Cells: []Value{Int(1), Int(3)}},
		{Name: "B", Cells: []Value{Int(2)}},
	}}

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0].String() != "1" || rows[0][1].String() != "2" {
		t.Errorf("first row = [%v %v], want [1 2]", rows[0][0], rows[0][1])
	}
	if _, ok := rows[1][1].(Null); !ok {
		t.Errorf("short column not padded with Null, got %T", rows[1][1])
	}
}

func TestFlatJSON(t *testing.T) {
	elements := []Element{
		&Header{Level: 1, Content: "Title", Span: Span{1, 1}},
		&List{Type: Unordered, Items: []ListItem{
			{Content: "done", Task: TaskChecked},
		}, Span: Span{3, 3}},
		&Code{Language: "go", Content: "fmt.Println()", Span: Span{5, 7}},
	}

	got, err := FlatJSON(elements, 0)
	if err != nil {
		t.Fatalf("FlatJSON returned error: %v", err)
	}

	expected := `[{"header":{"level":1,"content":"Title"},"start_line":1,"end_line":1},` +
		`{"list":{"type":"ul","items":[{"content":"done","items":[],"task":"checked"}]},"start_line":3,"end_line":3},` +
		`{"code":{"language":"go","content":"fmt.Println()"},"start_line":5,"end_line":7}]`
	if got != expected {
		t.Errorf("FlatJSON output mismatch\ngot:  %s\nwant: %s", got, expected)
	}
}

func TestFlatJSONMetadataOrder(t *testing.T) {
	m := &Metadata{Entries: []MetaEntry{
		{Key: "zebra", Value: Str("z")},
		{Key: "alpha", Value: Str("a")},
		{Key: "tags", Value: ValueList{Str("x"), Str("y")}},
	}}

	got, err := FlatJSON([]Element{m}, 0)
	if err != nil {
		t.Fatalf("FlatJSON returned error: %v", err)
	}
	if strings.Index(got, "zebra") > strings.Index(got, "alpha") {
		t.Errorf("metadata keys reordered: %s", got)
	}
	if !strings.Contains(got, `"tags":["x","y"]`) {
		t.Errorf("list value not serialized as array: %s", got)
	}
}

func TestFlatYAML(t *testing.T) {
	elements := []Element{
		&Metadata{Entries: []MetaEntry{
			{Key: "title", Value: Str("A")},
			{Key: "count", Value: Int(3)},
		}, Span: Span{1, 3}},
	}

	got, err := FlatYAML(elements)
	if err != nil {
		t.Fatalf("FlatYAML returned error: %v", err)
	}
	for _, want := range []string{"metadata:", "title: A", "count: 3", "start_line: 1", "end_line: 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("FlatYAML output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "title") > strings.Index(got, "count") {
		t.Errorf("metadata key order not preserved:\n%s", got)
	}
}
