package markdata

import "testing"

func TestStatsHeaders(t *testing.T) {
	header := mixed().Stats().Kinds["header"]
	if header == nil {
		t.Fatal("missing header stats")
	}
	if header.Count != 2 {
		t.Errorf("count: got %d, want 2", header.Count)
	}
	if !equalInts(header.Positions, []int{1, 3}) {
		t.Errorf("positions: got %v, want [1 3]", header.Positions)
	}
	if !equalStrings(header.Variants, []string{"h1", "h2"}) {
		t.Errorf("variants: got %v, want [h1 h2]", header.Variants)
	}
	if header.Levels[1] != 1 || header.Levels[2] != 1 {
		t.Errorf("levels: got %v", header.Levels)
	}
}

func TestStatsListTasks(t *testing.T) {
	list := mixed().Stats().Kinds["list"]
	if list == nil || list.Tasks == nil {
		t.Fatal("missing list task stats")
	}
	if list.Tasks.Checked != 1 || list.Tasks.Unchecked != 1 || list.Tasks.Total != 2 {
		t.Errorf("tasks: got %+v", *list.Tasks)
	}
	if !equalStrings(list.Variants, []string{"task", "ul"}) {
		t.Errorf("variants: got %v, want [task ul]", list.Variants)
	}
}

func TestStatsNestedTasksCounted(t *testing.T) {
	d := doc(
		"- [x] top",
		"  - [ ] child",
		"  - [x] child",
	)
	list := d.Stats().Kinds["list"]
	if list == nil || list.Tasks == nil {
		t.Fatal("missing list task stats")
	}
	if list.Tasks.Checked != 2 || list.Tasks.Unchecked != 1 || list.Tasks.Total != 3 {
		t.Errorf("tasks: got %+v", *list.Tasks)
	}
}

func TestStatsCodeLanguages(t *testing.T) {
	d := doc(
		"```go",
		"a",
		"```",
		"",
		"```",
		"b",
		"```",
	)
	code := d.Stats().Kinds["code"]
	if code == nil || code.Count != 2 {
		t.Fatalf("code stats: got %+v, want count 2", code)
	}
	if code.Languages["go"] != 1 || code.Languages["no_language"] != 1 {
		t.Errorf("languages: got %v", code.Languages)
	}
	if !equalStrings(code.Variants, []string{"go", "no_language"}) {
		t.Errorf("variants: got %v", code.Variants)
	}
}

func TestStatsTableCells(t *testing.T) {
	table := mixed().Stats().Kinds["table"]
	if table == nil {
		t.Fatal("missing table stats")
	}
	if table.TotalCells != 2 {
		t.Errorf("total cells: got %d, want 2", table.TotalCells)
	}
	if !equalInts(table.ColumnCounts, []int{2}) {
		t.Errorf("column counts: got %v, want [2]", table.ColumnCounts)
	}
	if !equalStrings(table.Variants, []string{"2_columns"}) {
		t.Errorf("variants: got %v, want [2_columns]", table.Variants)
	}
}

func TestStatsBlockquoteDepth(t *testing.T) {
	bq := mixed().Stats().Kinds["blockquote"]
	if bq == nil {
		t.Fatal("missing blockquote stats")
	}
	if bq.MaxDepth != 2 {
		t.Errorf("max depth: got %d, want 2", bq.MaxDepth)
	}
	if !equalStrings(bq.Variants, []string{"depth_2"}) {
		t.Errorf("variants: got %v, want [depth_2]", bq.Variants)
	}
}

func TestStatsMetadataFields(t *testing.T) {
	meta := mixed().Stats().Kinds["metadata"]
	if meta == nil {
		t.Fatal("missing metadata stats")
	}
	if !equalStrings(meta.Variants, []string{"2_fields"}) {
		t.Errorf("variants: got %v, want [2_fields]", meta.Variants)
	}
}

func TestStatsOnlySeenKinds(t *testing.T) {
	stats := New("plain").Stats()
	if len(stats.Kinds) != 1 {
		t.Fatalf("got %d kinds, want 1", len(stats.Kinds))
	}
	if _, ok := stats.Kinds["table"]; ok {
		t.Error("table stats present for document without tables")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
