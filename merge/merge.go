// Package merge folds a classified line sequence into markdown elements.
// The multi-line mergers run in a fixed order over the full sequence, each
// consuming maximal runs of its own line kind and leaving everything else
// untouched; whatever survives the mergers is converted line by line.
package merge

import (
	"strings"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// node is one slot of the working sequence: still a classified line, or an
// element a merger already produced in its place.
type node struct {
	line classify.Line
	el   element.Element
}

func (n node) isLine(k classify.LineKind) bool {
	return n.el == nil && n.line.Kind == k
}

// Elements merges classified lines into the flat element sequence. Blank
// paragraphs are pruned after conversion; this is the only pruning step.
func Elements(lines []classify.Line) []element.Element {
	nodes := make([]node, len(lines))
	for i, l := range lines {
		nodes[i] = node{line: l}
	}

	nodes = mergeMetadata(nodes)
	nodes = mergeLists(nodes)
	nodes = mergeDefinitionLists(nodes)
	nodes = mergeBlockquotes(nodes)
	nodes = mergeTables(nodes)
	nodes = mergeCode(nodes)

	out := make([]element.Element, 0, len(nodes))
	for _, n := range nodes {
		el := n.el
		if el == nil {
			el = convertLine(n.line)
		}
		if p, ok := el.(*element.Paragraph); ok && strings.TrimSpace(p.Content) == "" {
			continue
		}
		out = append(out, el)
	}
	return out
}

// convertLine turns a leftover single line into its element form. Only
// headers, rules and paragraphs survive the mergers; anything unexpected
// degrades to a paragraph.
func convertLine(l classify.Line) element.Element {
	span := element.Span{StartLine: l.Num, EndLine: l.Num}
	switch l.Kind {
	case classify.LineHeader:
		return &element.Header{Level: l.Level, Content: l.Text, Span: span}
	case classify.LineRule:
		return &element.Separator{Marker: l.Text, Span: span}
	default:
		return &element.Paragraph{Content: l.Text, Span: span}
	}
}
