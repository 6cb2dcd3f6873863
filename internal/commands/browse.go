package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/internal/styles"
	"github.com/gerunddev/markdata/internal/tui"
	"github.com/gerunddev/markdata/render"
)

// Browse opens the interactive element browser for one file
func Browse(args []string) {
	errorStyle := styles.ErrorStyle

	paths := positionals(args)
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata browse FILE"))
		os.Exit(1)
	}

	// Parse up front so a read error surfaces before the screen clears
	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
	elements := doc.Elements()

	previewFunc := func(index int) (string, error) {
		if index < 0 || index >= len(elements) {
			return "", fmt.Errorf("element %d out of range", index)
		}
		source := render.Markdown([]element.Element{elements[index]}, render.Options{Spacer: 1})
		rendered, err := renderMarkdown(source)
		if err != nil {
			// Renderer unavailable, show the raw markdown instead
			return source, nil
		}
		return rendered, nil
	}

	m := tui.InitBrowseModel(previewFunc)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	go func() {
		rows := make([]tui.ElementRow, 0, len(elements))
		for i, el := range elements {
			rows = append(rows, tui.ElementRow{
				Index:   i,
				Kind:    el.Kind().String(),
				Lines:   fmt.Sprintf("%d-%d", el.Start(), el.End()),
				Preview: elementPreview(el, 50),
			})
		}
		p.Send(tui.BrowseMsg{
			Data: &tui.BrowseData{File: filepath.Base(paths[0]), Elements: rows},
		})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Println(errorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}
