package render

import (
	"encoding/json"
	"testing"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/merge"
)

func parse(md string) []element.Element {
	return merge.Elements(classify.Lines(md))
}

func TestElementRendering(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "header",
			md:   "## Section",
			want: "## Section",
		},
		{
			name: "paragraph",
			md:   "plain text",
			want: "plain text",
		},
		{
			name: "separator keeps literal",
			md:   "***",
			want: "***",
		},
		{
			name: "unordered list nests by two",
			md:   "- a\n- b\n  - c\n- [x] d",
			want: "- a\n- b\n  - c\n- [x] d",
		},
		{
			name: "ordered list renumbers",
			md:   "1. a\n7. b",
			want: "1. a\n2. b",
		},
		{
			name: "ordered list nests by three",
			md:   "1. one\n2. two\n   1. nested",
			want: "1. one\n2. two\n   1. nested",
		},
		{
			name: "table pads to widest cell",
			md:   "| A | B |\n|---|---|\n| 1 | 22 |",
			want: "| A | B  |\n|---|----|\n| 1 | 22 |",
		},
		{
			name: "code with language",
			md:   "```go\nfunc main() {}\n```",
			want: "```go\nfunc main() {}\n```",
		},
		{
			name: "code without language",
			md:   "```\nplain\n```",
			want: "```\nplain\n```",
		},
		{
			name: "blockquote nesting",
			md:   "> a\n>> b\n> c",
			want: "> a\n>> b\n> c",
		},
		{
			name: "definition list",
			md:   "Term\n: Def 1\n: Def 2",
			want: "Term\n: Def 1\n: Def 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(parse(tt.md), Options{})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetadataRendering(t *testing.T) {
	md := "---\ntitle: My Doc\nmy tags: [x, y]\npublished: true\ncount: 3\nnote: 'a: b'\n---"
	got := Markdown(parse(md), Options{})
	want := "---\ntitle: My Doc\nmy tags: [x, y]\npublished: True\ncount: 3\nnote: \"a: b\"\n---"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmptyMetadataRendersNothing(t *testing.T) {
	if got := Markdown(parse("---\n---"), Options{}); got != "" {
		t.Errorf("got %q, want empty output", got)
	}
}

func TestSpacer(t *testing.T) {
	elements := parse("a\n\nb")
	tests := []struct {
		spacer int
		want   string
	}{
		{0, "a\nb"},
		{1, "a\n\nb"},
		{2, "a\n\n\nb"},
	}
	for _, tt := range tests {
		if got := Markdown(elements, Options{Spacer: tt.spacer}); got != tt.want {
			t.Errorf("spacer %d: got %q, want %q", tt.spacer, got, tt.want)
		}
	}
}

func TestIncludeExclude(t *testing.T) {
	elements := parse("# T\n\npara\n\n## S\n\n- x")

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "include headers shorthand",
			opts: Options{Include: []string{"headers"}, Spacer: 1},
			want: "# T\n\n## S",
		},
		{
			name: "include by level",
			opts: Options{Include: []string{"h2"}},
			want: "## S",
		},
		{
			name: "exclude headers",
			opts: Options{Exclude: []string{"headers"}, Spacer: 1},
			want: "para\n\n- x",
		},
		{
			name: "exclude beats include",
			opts: Options{Include: []string{"headers"}, Exclude: []string{"h2"}},
			want: "# T",
		},
		{
			name: "include by index",
			opts: Options{Include: []string{"0", "3"}, Spacer: 1},
			want: "# T\n\n- x",
		},
		{
			name: "exclude by index",
			opts: Options{Exclude: []string{"1", "2", "3"}},
			want: "# T",
		},
		{
			name: "exclude all",
			opts: Options{Include: []string{"headers"}, Exclude: []string{"all"}},
			want: "",
		},
		{
			name: "include all explicit",
			opts: Options{Include: []string{"all"}, Spacer: 0},
			want: "# T\npara\n## S\n- x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Markdown(elements, tt.opts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// payloadJSON flattens elements to their kind-keyed payloads, dropping
// line spans so re-parses of re-rendered text compare structurally.
func payloadJSON(t *testing.T, elements []element.Element) string {
	t.Helper()
	parts := make([]any, len(elements))
	for i, el := range elements {
		parts[i] = map[string]any{el.Kind().String(): element.JSONPayload(el)}
	}
	b, err := json.Marshal(parts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestParseRenderParseIsStable(t *testing.T) {
	corpus := []string{
		"# Title\n\npara",
		"- a\n- b\n  - c\n  - d\n- e",
		"- [x] done\n- [ ] open",
		"1. one\n2. two\n   1. nested",
		"| A | B |\n|---|---|\n| 1 | 2.5 |\n| x | |",
		"| x | y |\n| z | w |",
		"---\ntitle: Doc\ntags: [x, y]\ncount: 3\nok: true\n---\n\n# H\n\ntext",
		"> a\n>> b\n> c",
		"Term\n: Def 1\n: Def 2",
		"```go\nfunc main() {}\n```",
		"***\n\ntext\n\n---",
	}

	for _, md := range corpus {
		first := parse(md)
		rendered := Markdown(first, Options{Spacer: 1})
		second := parse(rendered)

		if got, want := payloadJSON(t, second), payloadJSON(t, first); got != want {
			t.Errorf("structure changed after render\ninput: %q\ngot:  %s\nwant: %s", md, got, want)
		}
		if again := Markdown(second, Options{Spacer: 1}); again != rendered {
			t.Errorf("render not stable\ninput: %q\nfirst:  %q\nsecond: %q", md, rendered, again)
		}
	}
}
