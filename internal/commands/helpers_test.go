package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	markdata "github.com/gerunddev/markdata"
)

func TestFlagHelpers(t *testing.T) {
	args := []string{"a.md", "--format", "list", "-e", "table", "-e", "code", "--compact"}

	if !hasFlag(args, "--compact") {
		t.Error("hasFlag should find --compact")
	}
	if hasFlag(args, "--missing") {
		t.Error("hasFlag should not find --missing")
	}
	if got := flagValue(args, "--format"); got != "list" {
		t.Errorf("flagValue: got %q, want list", got)
	}
	if got := flagValue(args, "--absent"); got != "" {
		t.Errorf("flagValue for absent flag: got %q, want empty", got)
	}

	kinds := flagValues(args, "-e", "--element")
	if len(kinds) != 2 || kinds[0] != "table" || kinds[1] != "code" {
		t.Errorf("flagValues: got %v, want [table code]", kinds)
	}
}

func TestIntFlag(t *testing.T) {
	if got := intFlag([]string{"--indent", "4"}, 2, "--indent"); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := intFlag([]string{"a.md"}, 2, "--indent"); got != 2 {
		t.Errorf("absent flag: got %d, want default 2", got)
	}
	if got := intFlag([]string{"--indent", "x"}, 2, "--indent"); got != 2 {
		t.Errorf("malformed value: got %d, want default 2", got)
	}
}

func TestPositionals(t *testing.T) {
	args := []string{"a.md", "--format", "list", "b.md", "--compact", "c.md"}
	got := positionals(args, "--format")
	want := []string{"a.md", "b.md", "c.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("positionals[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	got := splitList("headers, table ,,code")
	want := []string{"headers", "table", "code"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmitRefusesToClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := emit("first", path, false); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "first\n" {
		t.Errorf("got %q, want newline-terminated content", data)
	}

	if err := emit("second", path, false); err == nil {
		t.Error("expected error when overwriting without --overwrite")
	}
	if err := emit("second", path, true); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second\n" {
		t.Errorf("got %q after overwrite", data)
	}
}

func TestElementTextFlattensNestedContent(t *testing.T) {
	doc := markdata.New("- outer\n    - inner\n")
	elements := doc.Elements()
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}

	text := elementText(elements[0])
	if text != "outer\ninner" {
		t.Errorf("got %q, want outer and inner on separate lines", text)
	}
}

func TestElementTextTable(t *testing.T) {
	doc := markdata.New("| X | Y |\n|---|---|\n| 1 | 2 |\n")
	text := elementText(doc.Elements()[0])
	if !strings.Contains(text, "X | Y") || !strings.Contains(text, "1 | 2") {
		t.Errorf("table text missing header or cells: %q", text)
	}
}

func TestElementPreviewTruncates(t *testing.T) {
	doc := markdata.New("a very long paragraph that keeps going for a while\n")
	preview := elementPreview(doc.Elements()[0], 10)
	if !strings.HasSuffix(preview, "…") {
		t.Errorf("got %q, want ellipsis suffix", preview)
	}
	if n := len([]rune(preview)); n != 10 {
		t.Errorf("preview length: got %d runes, want 10", n)
	}
}

func TestTruncateShortStringUnchanged(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}
