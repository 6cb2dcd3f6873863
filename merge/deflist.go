package merge

import (
	"strings"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// mergeDefinitionLists folds a term line plus its consecutive description
// lines into one DefinitionList. A term the classifier retagged without
// any following description still yields an element with an empty list.
func mergeDefinitionLists(nodes []node) []node {
	var out []node
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if !n.isLine(classify.LineTerm) {
			out = append(out, n)
			i++
			continue
		}

		def := &element.DefinitionList{
			Term:         strings.TrimSpace(n.line.Text),
			Descriptions: []string{},
		}
		last := n.line.Num
		j := i + 1
		for j < len(nodes) && nodes[j].isLine(classify.LineDescription) {
			def.Descriptions = append(def.Descriptions, nodes[j].line.Text)
			last = nodes[j].line.Num
			j++
		}
		def.Span = element.Span{StartLine: n.line.Num, EndLine: last}
		out = append(out, node{el: def})
		i = j
	}
	return out
}
