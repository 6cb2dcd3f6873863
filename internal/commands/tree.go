package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/hierarchy"
	"github.com/gerunddev/markdata/internal/styles"
)

// Tree prints the document hierarchy as an indented outline
func Tree(args []string) {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle

	paths := positionals(args, "--max-depth")
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata tree FILE [--max-depth N] [--show-content]"))
		os.Exit(1)
	}
	maxDepth := intFlag(args, 0, "--max-depth")
	showContent := hasFlag(args, "--show-content")

	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	tree := doc.Hierarchy()
	fmt.Println(titleStyle.Render(paths[0]))
	if tree.Len() == 0 {
		fmt.Println(dimStyle.Render("  (empty document)"))
		return
	}
	printBranch(tree, "  ", 1, maxDepth, showContent)
}

func printBranch(m *hierarchy.Map, indent string, depth, maxDepth int, showContent bool) {
	highlightStyle := styles.HighlightStyle
	dimStyle := styles.DimStyle
	kindStyle := styles.KindStyle

	if maxDepth > 0 && depth > maxDepth {
		return
	}

	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		switch node := value.(type) {
		case *hierarchy.Map:
			fmt.Println(indent + highlightStyle.Render(key))
			printBranch(node, indent+"  ", depth+1, maxDepth, showContent)
		case element.Element:
			line := indent + kindStyle.Render(key) +
				dimStyle.Render(fmt.Sprintf(" (%d-%d)", node.Start(), node.End()))
			if showContent {
				if preview := elementPreview(node, 60); preview != "" {
					line += "  " + dimStyle.Render(preview)
				}
			}
			fmt.Println(line)
		}
	}
}
