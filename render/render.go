// Package render serializes a merged element sequence back to markdown.
// Each element kind renders through the inverse of its merger; a filter
// selects elements by kind tag or position before joining.
package render

import (
	"strconv"
	"strings"

	"github.com/gerunddev/markdata/element"
)

// Options filter and lay out the output. Include and Exclude hold kind
// tags ("list", "h2", "headers", "all") or decimal element indices; an
// empty Include selects everything and Exclude always wins on conflict.
// Spacer is the number of blank lines between rendered elements.
type Options struct {
	Include []string
	Exclude []string
	Spacer  int
}

// Markdown renders the filtered sequence. Elements rendering to an empty
// string are dropped rather than joined as blank entries.
func Markdown(elements []element.Element, opts Options) string {
	includeTags, includeIdx := splitSelectors(opts.Include)
	excludeTags, excludeIdx := splitSelectors(opts.Exclude)

	for _, tag := range excludeTags {
		if tag == "all" {
			return ""
		}
	}

	all := len(includeTags) == 0 && len(includeIdx) == 0
	for _, tag := range includeTags {
		if tag == "all" {
			all = true
		}
	}

	var parts []string
	for i, el := range elements {
		if matches(el, i, excludeTags, excludeIdx) {
			continue
		}
		if !all && !matches(el, i, includeTags, includeIdx) {
			continue
		}
		if s := Element(el); s != "" {
			parts = append(parts, s)
		}
	}

	spacer := opts.Spacer
	if spacer < 0 {
		spacer = 0
	}
	return strings.Join(parts, strings.Repeat("\n", spacer+1))
}

// splitSelectors separates kind tags from element indices. Selectors are
// case-insensitive; anything parsing as an integer is an index.
func splitSelectors(selectors []string) ([]string, map[int]bool) {
	var tags []string
	indices := make(map[int]bool)
	for _, s := range selectors {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			indices[n] = true
			continue
		}
		tags = append(tags, s)
	}
	return tags, indices
}

func matches(el element.Element, idx int, tags []string, indices map[int]bool) bool {
	if indices[idx] {
		return true
	}
	for _, tag := range tags {
		if element.MatchTag(el, tag) {
			return true
		}
	}
	return false
}
