package element

// Filter tags accepted by render include/exclude sets and building-block
// selection. "all" matches every element, "headers" any header, "h1".."h6"
// headers of that level only; the remaining tags match their kind.
var knownTags = map[string]bool{
	"all":        true,
	"headers":    true,
	"header":     true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"metadata":   true,
	"paragraph":  true,
	"list":       true,
	"table":      true,
	"code":       true,
	"blockquote": true,
	"def_list":   true,
	"separator":  true,
}

// KnownTag reports whether tag is a recognized filter tag.
func KnownTag(tag string) bool { return knownTags[tag] }

// MatchTag reports whether the element is selected by the given tag.
// Unrecognized tags match nothing.
func MatchTag(el Element, tag string) bool {
	switch tag {
	case "all":
		return true
	case "headers", "header":
		return el.Kind() == KindHeader
	case "h1", "h2", "h3", "h4", "h5", "h6":
		h, ok := el.(*Header)
		return ok && h.Level == int(tag[1]-'0')
	default:
		return tag == el.Kind().String()
	}
}
