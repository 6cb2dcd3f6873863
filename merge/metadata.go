package merge

import (
	"strconv"
	"strings"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// mergeMetadata recognizes a frontmatter block at the top of the document:
// optional blank lines, an opening rule, zero or more key: value lines
// (blank lines inside the block are skipped) and a closing rule of the
// same marker. A malformed block is left exactly as classified.
func mergeMetadata(nodes []node) []node {
	start := 0
	for start < len(nodes) && nodes[start].el == nil && nodes[start].line.Blank() {
		start++
	}
	if start >= len(nodes) || !nodes[start].isLine(classify.LineRule) {
		return nodes
	}
	open := nodes[start].line

	end := -1
	for i := start + 1; i < len(nodes); i++ {
		n := nodes[i]
		if n.isLine(classify.LineRule) {
			if n.line.Text[0] != open.Text[0] {
				return nodes
			}
			end = i
			break
		}
		if !n.isLine(classify.LineParagraph) {
			return nodes
		}
		if n.line.Blank() {
			continue
		}
		if _, _, ok := splitKeyValue(n.line.Text); !ok {
			return nodes
		}
	}
	if end < 0 {
		return nodes
	}

	meta := &element.Metadata{Span: element.Span{StartLine: open.Num, EndLine: nodes[end].line.Num}}
	seen := make(map[string]int)
	for _, n := range nodes[start+1 : end] {
		if n.line.Blank() {
			continue
		}
		key, value, _ := splitKeyValue(n.line.Text)
		key = normalizeKey(key)
		parsed := parseMetaValue(value)
		if j, dup := seen[key]; dup {
			meta.Entries[j].Value = parsed
			continue
		}
		seen[key] = len(meta.Entries)
		meta.Entries = append(meta.Entries, element.MetaEntry{Key: key, Value: parsed})
	}

	out := make([]node, 0, len(nodes)-end)
	out = append(out, node{el: meta})
	out = append(out, nodes[end+1:]...)
	return out
}

// splitKeyValue splits a "key: value" line at the first colon. A missing
// colon or an empty key is invalid.
func splitKeyValue(text string) (key, value string, ok bool) {
	i := strings.IndexByte(text, ':')
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(text[:i])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(text[i+1:]), true
}

// normalizeKey collapses internal whitespace runs to single underscores.
func normalizeKey(key string) string {
	return strings.Join(strings.Fields(key), "_")
}

// parseMetaValue coerces a metadata value. Bracketed or bare comma-joined
// values become lists; everything else parses as a scalar.
func parseMetaValue(raw string) element.Value {
	v := strings.TrimSpace(raw)
	if isBracketed(v) {
		return parseListValue(v)
	}
	if strings.Contains(v, ",") && !strings.HasPrefix(v, `"`) && !strings.HasPrefix(v, "'") {
		return parseListValue(v)
	}
	return parseScalar(v)
}

// parseScalar coerces one scalar value: a quoted string keeps its exact
// content, then booleans (case-insensitive), the empty value, numbers and
// finally a plain string.
func parseScalar(raw string) element.Value {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return element.Str(v[1 : len(v)-1])
		}
	}
	switch {
	case strings.EqualFold(v, "true"):
		return element.Bool(true)
	case strings.EqualFold(v, "false"):
		return element.Bool(false)
	case v == "":
		return element.Null{}
	}
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return element.Float(f)
		}
		return element.Str(v)
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return element.Int(n)
	}
	return element.Str(v)
}

func isBracketed(v string) bool {
	if len(v) < 2 {
		return false
	}
	opened := v[0] == '[' || v[0] == '('
	closed := v[len(v)-1] == ']' || v[len(v)-1] == ')'
	return opened && closed
}

// parseListValue splits a list value on commas, respecting quotes: a
// quoted item keeps its commas and loses the quote characters. Empty items
// are dropped and each survivor is coerced like a scalar.
func parseListValue(raw string) element.ValueList {
	v := strings.TrimSpace(raw)
	if isBracketed(v) {
		v = v[1 : len(v)-1]
	}

	items := element.ValueList{}
	var current strings.Builder
	inQuotes := false
	var quote rune

	flush := func() {
		item := strings.TrimSpace(current.String())
		current.Reset()
		if item != "" {
			items = append(items, parseScalar(item))
		}
	}

	for _, r := range v {
		switch {
		case r == '"' || r == '\'':
			switch {
			case !inQuotes:
				inQuotes, quote = true, r
			case r == quote:
				inQuotes, quote = false, 0
			default:
				current.WriteRune(r)
			}
		case r == ',' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return items
}
