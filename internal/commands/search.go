package commands

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gerunddev/markdata/element"
	"github.com/gerunddev/markdata/internal/styles"
)

type searchMatch struct {
	file string
	line int // 1-based source line
	kind string
	text string
	loc  []int // match byte offsets within text, [start, end)
}

// Search finds a pattern inside the elements of one or more files
func Search(args []string) {
	errorStyle := styles.ErrorStyle
	warningStyle := styles.WarningStyle
	dimStyle := styles.DimStyle

	kindFilter := flagValue(args, "--element-type", "-t")
	words := positionals(args, "--element-type", "-t", "--context")
	if len(words) < 2 {
		fmt.Println(errorStyle.Render("✗ Usage: markdata search PATTERN FILE... [--element-type T] [--regex] [--case-sensitive] [--context N] [--count-only] [--files-only]"))
		os.Exit(1)
	}
	pattern, files := words[0], words[1:]

	if kindFilter != "" {
		kindFilter = strings.ToLower(strings.TrimSpace(kindFilter))
		if !element.KnownTag(kindFilter) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Unknown element kind %q", kindFilter)))
			os.Exit(1)
		}
	}

	caseSensitive := hasFlag(args, "--case-sensitive")
	context := intFlag(args, 0, "--context")
	countOnly := hasFlag(args, "--count-only")
	filesOnly := hasFlag(args, "--files-only")

	var match func(line string) []int
	if hasFlag(args, "--regex") {
		expr := pattern
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Bad pattern: " + err.Error()))
			os.Exit(1)
		}
		match = re.FindStringIndex
	} else {
		needle := pattern
		if !caseSensitive {
			needle = strings.ToLower(needle)
		}
		match = func(line string) []int {
			haystack := line
			if !caseSensitive {
				haystack = strings.ToLower(haystack)
			}
			if i := strings.Index(haystack, needle); i >= 0 {
				return []int{i, i + len(needle)}
			}
			return nil
		}
	}

	total := 0
	for _, file := range files {
		matches, err := searchFile(file, kindFilter, match)
		if err != nil {
			fmt.Println(warningStyle.Render("✗ " + err.Error()))
			continue
		}
		total += len(matches)

		switch {
		case filesOnly:
			if len(matches) > 0 {
				fmt.Println(file)
			}
		case countOnly:
			fmt.Printf("%s: %d\n", file, len(matches))
		default:
			printMatches(file, matches, context)
		}
	}

	if !countOnly && !filesOnly {
		fmt.Println()
		if total == 0 {
			fmt.Println(dimStyle.Render("No matches"))
		} else {
			fmt.Println(dimStyle.Render(fmt.Sprintf("%d match(es) in %d file(s)", total, len(files))))
		}
	}
}

// searchFile runs the matcher over every source line that belongs to a
// (kind-filtered) element of the file
func searchFile(path, kindFilter string, match func(string) []int) ([]searchMatch, error) {
	doc, err := loadDoc(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(doc.Source(), "\n")

	var matches []searchMatch
	for _, el := range doc.Elements() {
		if kindFilter != "" && !element.MatchTag(el, kindFilter) {
			continue
		}
		for n := el.Start(); n <= el.End() && n <= len(lines); n++ {
			if loc := match(lines[n-1]); loc != nil {
				matches = append(matches, searchMatch{
					file: path,
					line: n,
					kind: el.Kind().String(),
					text: lines[n-1],
					loc:  loc,
				})
			}
		}
	}
	return matches, nil
}

func printMatches(file string, matches []searchMatch, context int) {
	dimStyle := styles.DimStyle
	kindStyle := styles.KindStyle
	countStyle := styles.CountStyle

	var lines []string
	if context > 0 && len(matches) > 0 {
		// Re-read once for context display
		if doc, err := loadDoc(file); err == nil {
			lines = strings.Split(doc.Source(), "\n")
		}
	}

	for _, m := range matches {
		prefix := fmt.Sprintf("%s%s %s",
			dimStyle.Render(m.file+":"),
			countStyle.Render(fmt.Sprintf("%d", m.line)),
			kindStyle.Render(m.kind))

		if context <= 0 || lines == nil {
			fmt.Printf("%s  %s\n", prefix, highlightMatch(m.text, m.loc))
			continue
		}

		fmt.Println(prefix)
		for n := m.line - context; n <= m.line+context; n++ {
			if n < 1 || n > len(lines) {
				continue
			}
			if n == m.line {
				fmt.Println("  " + highlightMatch(m.text, m.loc))
			} else {
				fmt.Println("  " + dimStyle.Render(lines[n-1]))
			}
		}
		fmt.Println()
	}
}

func highlightMatch(text string, loc []int) string {
	if len(loc) != 2 || loc[0] < 0 || loc[1] > len(text) || loc[0] >= loc[1] {
		return text
	}
	return text[:loc[0]] + styles.HighlightStyle.Render(text[loc[0]:loc[1]]) + text[loc[1]:]
}
