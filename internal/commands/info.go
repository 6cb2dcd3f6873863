package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gerunddev/markdata/internal/styles"
)

// Info prints parse analytics for one markdown file
func Info(args []string) {
	titleStyle := styles.TitleStyle
	errorStyle := styles.ErrorStyle
	dimStyle := styles.DimStyle
	kindStyle := styles.KindStyle
	countStyle := styles.CountStyle
	valueStyle := styles.NormalTextStyle

	paths := positionals(args, "--format", "--indent", "-o", "--out")
	if len(paths) != 1 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata info FILE [--format table|json] [--indent N] [-o OUT]"))
		os.Exit(1)
	}

	format := flagValue(args, "--format")
	if format == "" {
		format = "table"
	}

	doc, err := loadDoc(paths[0])
	if err != nil {
		fmt.Println(errorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	if format == "json" {
		out, err := doc.StatsJSON(intFlag(args, 2, "--indent"))
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Serialization failed: " + err.Error()))
			os.Exit(1)
		}
		outPath := flagValue(args, "-o", "--out")
		if err := emit(out, outPath, hasFlag(args, "--overwrite")); err != nil {
			fmt.Println(errorStyle.Render("✗ " + err.Error()))
			os.Exit(1)
		}
		return
	}
	if format != "table" {
		fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown info format %q: must be table or json", format)))
		os.Exit(1)
	}

	stats := doc.Stats()

	fmt.Println(titleStyle.Render("Markdata Info"))
	fmt.Println()
	fmt.Printf("%s %s\n", dimStyle.Render("File:    "), valueStyle.Render(paths[0]))
	fmt.Printf("%s %s\n", dimStyle.Render("Lines:   "), valueStyle.Render(fmt.Sprintf("%d", len(doc.Lines()))))
	fmt.Printf("%s %s\n", dimStyle.Render("Elements:"), valueStyle.Render(fmt.Sprintf("%d", len(doc.Elements()))))
	fmt.Println()

	if len(stats.Kinds) == 0 {
		fmt.Println(dimStyle.Render("No elements found"))
		return
	}

	kinds := make([]string, 0, len(stats.Kinds))
	for kind := range stats.Kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		ks := stats.Kinds[kind]

		line := fmt.Sprintf("  %s %s",
			kindStyle.Render(fmt.Sprintf("%-11s", kind)),
			countStyle.Render(fmt.Sprintf("%3d", ks.Count)))
		if len(ks.Variants) > 0 {
			line += dimStyle.Render("  " + strings.Join(ks.Variants, ", "))
		}
		fmt.Println(line)

		if ks.Tasks != nil {
			fmt.Println(dimStyle.Render(fmt.Sprintf("                  %d/%d tasks checked",
				ks.Tasks.Checked, ks.Tasks.Total)))
		}
		if ks.TotalCells > 0 {
			fmt.Println(dimStyle.Render(fmt.Sprintf("                  %d cells", ks.TotalCells)))
		}
		if ks.MaxDepth > 1 {
			fmt.Println(dimStyle.Render(fmt.Sprintf("                  nested %d deep", ks.MaxDepth)))
		}
	}
}
