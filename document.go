// Package markdata parses markdown text into typed block elements, folds
// them into a header-keyed hierarchy and serializes both views back out
// as markdown, JSON or YAML.
//
// Parsing is line based: every supported block form lives on its own line
// or run of lines. Inline spans (emphasis, links) are not modeled; their
// text passes through untouched. Parsing never fails: anything ambiguous
// or malformed degrades to a plain paragraph.
package markdata

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/hierarchy"
	"github.com/gerunddev/markdata/internal/mdfile"
	"github.com/gerunddev/markdata/merge"
	"github.com/gerunddev/markdata/render"
)

// Document wraps one markdown text and derives its structured views
// lazily: classification, merging, hierarchy and stats are each computed
// on first use and cached. A Document is not safe for concurrent use.
type Document struct {
	source string

	lines    []classify.Line
	elements []element.Element
	tree     *hierarchy.Map
	stats    *Stats

	classified bool
	merged     bool
}

// New wraps markdown text in a Document. No parsing happens yet.
func New(markdown string) *Document {
	return &Document{source: markdown}
}

// ParseFile reads a markdown file through the mdfile guards (extension
// check, size cap, newline normalization) and wraps it in a Document.
func ParseFile(path string) (*Document, error) {
	text, err := mdfile.Read(path)
	if err != nil {
		return nil, err
	}
	return New(text), nil
}

// Source returns the original markdown text unchanged.
func (d *Document) Source() string { return d.source }

// Lines returns the classified line sequence.
func (d *Document) Lines() []classify.Line {
	if !d.classified {
		d.lines = classify.Lines(d.source)
		d.classified = true
	}
	return d.lines
}

// Elements returns the flat merged element sequence.
func (d *Document) Elements() []element.Element {
	if !d.merged {
		d.elements = merge.Elements(d.Lines())
		d.merged = true
	}
	return d.elements
}

// Hierarchy returns the header-keyed tree over Elements.
func (d *Document) Hierarchy() *hierarchy.Map {
	if d.tree == nil {
		d.tree = hierarchy.Build(d.Elements())
	}
	return d.tree
}

// Stats returns per-kind counts, positions and variants.
func (d *Document) Stats() *Stats {
	if d.stats == nil {
		d.stats = buildStats(d.Elements())
	}
	return d.stats
}

// ToMarkdown renders the document back to markdown text.
func (d *Document) ToMarkdown(opts render.Options) string {
	return render.Markdown(d.Elements(), opts)
}

// ToJSON serializes the hierarchy view. indent <= 0 is compact.
func (d *Document) ToJSON(indent int) (string, error) {
	return marshalJSON(d.Hierarchy(), indent)
}

// ElementsJSON serializes the flat element sequence, one object per
// element with its kind tag and line range.
func (d *Document) ElementsJSON(indent int) (string, error) {
	return element.FlatJSON(d.Elements(), indent)
}

// ToYAML serializes the hierarchy view with key order preserved.
func (d *Document) ToYAML() (string, error) {
	b, err := yaml.Marshal(d.Hierarchy())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ElementsYAML serializes the flat element sequence.
func (d *Document) ElementsYAML() (string, error) {
	return element.FlatYAML(d.Elements())
}

// StatsJSON serializes the per-kind statistics.
func (d *Document) StatsJSON(indent int) (string, error) {
	return marshalJSON(d.Stats(), indent)
}

// BuildingBlocks returns the elements matching any of the given filter
// tags ("table", "h2", "headers", ...), in document order.
func (d *Document) BuildingBlocks(tags ...string) []element.Element {
	var blocks []element.Element
	for _, el := range d.Elements() {
		for _, tag := range tags {
			if element.MatchTag(el, strings.ToLower(strings.TrimSpace(tag))) {
				blocks = append(blocks, el)
				break
			}
		}
	}
	return blocks
}

func marshalJSON(v any, indent int) (string, error) {
	var (
		b   []byte
		err error
	)
	if indent > 0 {
		b, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
