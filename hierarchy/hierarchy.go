// Package hierarchy folds the flat element sequence into a nested map
// keyed by header text. Header levels drive a stack discipline: a header
// at level L pops back to depth L-1 and opens a new frame there; every
// other element lands in the current frame under a numbered kind key.
package hierarchy

import (
	"fmt"

	"github.com/gerunddev/markdata/element"
)

// Build folds elements into the header tree. Metadata is hoisted to the
// root map under "metadata" wherever it occurs. Kind counters reset with
// every new header frame, so sibling frames number independently. Equal
// header text at the same position overwrites the earlier entry; the
// element sequence itself is not modified.
func Build(elements []element.Element) *Map {
	root := NewMap()
	frames := []*Map{root}
	counts := make(map[string]int)

	for _, el := range elements {
		switch e := el.(type) {
		case *element.Metadata:
			root.Set("metadata", e)
		case *element.Header:
			for len(frames) > e.Level {
				frames = frames[:len(frames)-1]
			}
			child := NewMap()
			frames[len(frames)-1].Set(e.Content, child)
			frames = append(frames, child)
			counts = make(map[string]int)
		default:
			kind := el.Kind().String()
			counts[kind]++
			frames[len(frames)-1].Set(fmt.Sprintf("%s_%d", kind, counts[kind]), el)
		}
	}
	return root
}
