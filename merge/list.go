package merge

import (
	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// mergeLists groups consecutive same-kind list item lines into List
// elements. A kind change inside a run closes the current element and
// starts the next one immediately; any other line ends the run.
func mergeLists(nodes []node) []node {
	var out []node
	var seg []classify.Line
	var segKind element.ListKind

	flush := func() {
		if len(seg) == 0 {
			return
		}
		out = append(out, node{el: buildList(seg, segKind)})
		seg = nil
	}

	for _, n := range nodes {
		var kind element.ListKind
		switch {
		case n.isLine(classify.LineUnordered):
			kind = element.Unordered
		case n.isLine(classify.LineOrdered):
			kind = element.Ordered
		default:
			flush()
			out = append(out, n)
			continue
		}
		if len(seg) > 0 && kind != segKind {
			flush()
		}
		if len(seg) == 0 {
			segKind = kind
		}
		seg = append(seg, n.line)
	}
	flush()
	return out
}

func buildList(lines []classify.Line, kind element.ListKind) *element.List {
	items, _ := buildListItems(lines, 0, 0)
	return &element.List{
		Type:  kind,
		Items: items,
		Span:  element.Span{StartLine: lines[0].Num, EndLine: lines[len(lines)-1].Num},
	}
}

// buildListItems builds the item tree from marker indentation: an item
// indented strictly deeper than its predecessor nests under it. Returns
// the items at this level and the index of the first line outside it.
func buildListItems(lines []classify.Line, start, base int) ([]element.ListItem, int) {
	var items []element.ListItem
	i := start
	for i < len(lines) {
		ln := lines[i]
		if ln.MarkerIndent < base {
			break
		}
		item := element.ListItem{Content: ln.Content.Text, Task: ln.Task}
		if i+1 < len(lines) && lines[i+1].MarkerIndent > ln.MarkerIndent {
			children, next := buildListItems(lines, i+1, lines[i+1].MarkerIndent)
			item.Items = children
			i = next - 1
		}
		items = append(items, item)
		i++
	}
	return items, i
}
