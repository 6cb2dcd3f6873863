package merge

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

var codeLangRe = regexp.MustCompile(`^[A-Za-z0-9+-]+$`)

// mergeCode folds a fenced run of code lines into one Code element. The
// language tag comes from the opening fence; a tag that fails validation
// is treated as absent and prepended to the content as a literal first
// line. A fence left open at end of input still yields one element from
// all remaining lines.
func mergeCode(nodes []node) []node {
	var out []node
	i := 0
	for i < len(nodes) {
		n := nodes[i]
		if !n.isLine(classify.LineCode) || !isFence(n.line.Text) {
			out = append(out, n)
			i++
			continue
		}

		open := n.line
		var body []string
		last := open.Num
		j := i + 1
		closed := false
		for j < len(nodes) {
			m := nodes[j]
			if !m.isLine(classify.LineCode) {
				break
			}
			if isFence(m.line.Text) {
				closed = true
				last = m.line.Num
				break
			}
			body = append(body, m.line.Text)
			last = m.line.Num
			j++
		}

		out = append(out, node{el: buildCode(open, body, last)})
		if closed {
			i = j + 1
		} else {
			i = j
		}
	}
	return out
}

func isFence(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "```")
}

func buildCode(open classify.Line, body []string, last int) *element.Code {
	content := dedent(body)

	tag := strings.TrimSpace(strings.TrimSpace(open.Text)[3:])
	language := ""
	if tag != "" {
		if codeLangRe.MatchString(tag) {
			language = strings.ToLower(tag)
		} else {
			content = tag + "\n" + content
		}
	}

	return &element.Code{
		Language: language,
		Content:  content,
		Span:     element.Span{StartLine: open.Num, EndLine: last},
	}
}

// dedent strips the common leading whitespace of the non-blank lines,
// blanks out whitespace-only lines and trims the joined result.
func dedent(lines []string) string {
	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeftFunc(l, unicode.IsSpace))
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		return ""
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			out[i] = l[minIndent:]
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
