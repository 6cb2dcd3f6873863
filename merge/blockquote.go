package merge

import (
	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// mergeBlockquotes folds consecutive blockquote lines into one Blockquote,
// nesting by marker level: a deeper line nests under the previous item, a
// drop back out exits that many frames. A drop below the level the run
// opened with ends the element, so the next line starts a fresh one.
func mergeBlockquotes(nodes []node) []node {
	var out []node
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if !n.isLine(classify.LineBlockquote) {
			out = append(out, n)
			i++
			continue
		}

		items, next := buildQuoteItems(nodes, i, n.line.Level)
		out = append(out, node{el: &element.Blockquote{
			Items: items,
			Span:  element.Span{StartLine: n.line.Num, EndLine: nodes[next-1].line.Num},
		}})
		i = next
	}
	return out
}

// buildQuoteItems collects items at base level, recursing for deeper lines
// and attaching their subtrees to the most recent item. The first line at
// start is always at base level, so a deeper line always has a parent.
func buildQuoteItems(nodes []node, start, base int) ([]element.QuoteItem, int) {
	var items []element.QuoteItem
	i := start
	for i < len(nodes) {
		n := nodes[i]
		if !n.isLine(classify.LineBlockquote) || n.line.Level < base {
			break
		}
		if n.line.Level > base {
			children, next := buildQuoteItems(nodes, i, n.line.Level)
			items[len(items)-1].Items = append(items[len(items)-1].Items, children...)
			i = next
			continue
		}
		items = append(items, element.QuoteItem{Content: n.line.Content.Text})
		i++
	}
	return items, i
}
