package markdata

import (
	"fmt"
	"sort"

	"github.com/gerunddev/markdata/element"
)

// Stats summarizes a document's element sequence: one entry per element
// kind that occurs, keyed by the kind name.
type Stats struct {
	Kinds map[string]*KindStats `json:"kinds"`
}

// KindStats holds the per-kind numbers. Variants names the shapes seen
// for the kind: "ul"/"ol"/"task" for lists, languages for code blocks,
// "hN" for headers, "N_columns" for tables, "depth_N" for blockquotes,
// "N_definitions" for definition lists and "N_fields" for metadata.
type KindStats struct {
	Count     int      `json:"count"`
	Positions []int    `json:"positions"`
	Variants  []string `json:"variants,omitempty"`

	Tasks        *TaskStats     `json:"task_stats,omitempty"`
	Languages    map[string]int `json:"languages,omitempty"`
	Levels       map[int]int    `json:"levels,omitempty"`
	ColumnCounts []int          `json:"column_counts,omitempty"`
	TotalCells   int            `json:"total_cells,omitempty"`
	MaxDepth     int            `json:"max_nesting_depth,omitempty"`
}

// TaskStats counts checkbox items across every list of the document,
// nested items included.
type TaskStats struct {
	Checked   int `json:"checked"`
	Unchecked int `json:"unchecked"`
	Total     int `json:"total"`
}

func buildStats(elements []element.Element) *Stats {
	stats := &Stats{Kinds: make(map[string]*KindStats)}

	variants := make(map[string]map[string]bool)
	columnCounts := make(map[int]bool)

	for i, el := range elements {
		kind := el.Kind().String()
		ks := stats.Kinds[kind]
		if ks == nil {
			ks = &KindStats{}
			stats.Kinds[kind] = ks
			variants[kind] = make(map[string]bool)
		}
		ks.Count++
		ks.Positions = append(ks.Positions, i)

		switch e := el.(type) {
		case *element.List:
			variants[kind][e.Type.String()] = true
			tasks := countTasks(e.Items)
			if tasks.Total > 0 {
				variants[kind]["task"] = true
				if ks.Tasks == nil {
					ks.Tasks = &TaskStats{}
				}
				ks.Tasks.Checked += tasks.Checked
				ks.Tasks.Unchecked += tasks.Unchecked
				ks.Tasks.Total += tasks.Total
			}
		case *element.Code:
			lang := e.Language
			if lang == "" {
				lang = "no_language"
			}
			variants[kind][lang] = true
			if ks.Languages == nil {
				ks.Languages = make(map[string]int)
			}
			ks.Languages[lang]++
		case *element.Header:
			variants[kind][fmt.Sprintf("h%d", e.Level)] = true
			if ks.Levels == nil {
				ks.Levels = make(map[int]int)
			}
			ks.Levels[e.Level]++
		case *element.Table:
			n := len(e.Columns)
			variants[kind][fmt.Sprintf("%d_columns", n)] = true
			columnCounts[n] = true
			for _, col := range e.Columns {
				ks.TotalCells += len(col.Cells)
			}
		case *element.Blockquote:
			depth := quoteDepth(e.Items, 1)
			variants[kind][fmt.Sprintf("depth_%d", depth)] = true
			if depth > ks.MaxDepth {
				ks.MaxDepth = depth
			}
		case *element.DefinitionList:
			variants[kind][fmt.Sprintf("%d_definitions", len(e.Descriptions))] = true
		case *element.Metadata:
			variants[kind][fmt.Sprintf("%d_fields", len(e.Entries))] = true
		}
	}

	for kind, set := range variants {
		ks := stats.Kinds[kind]
		for v := range set {
			ks.Variants = append(ks.Variants, v)
		}
		sort.Strings(ks.Variants)
	}
	if table := stats.Kinds[element.KindTable.String()]; table != nil {
		for n := range columnCounts {
			table.ColumnCounts = append(table.ColumnCounts, n)
		}
		sort.Ints(table.ColumnCounts)
	}

	return stats
}

func countTasks(items []element.ListItem) TaskStats {
	var t TaskStats
	for _, item := range items {
		switch item.Task {
		case element.TaskChecked:
			t.Checked++
			t.Total++
		case element.TaskUnchecked:
			t.Unchecked++
			t.Total++
		}
		nested := countTasks(item.Items)
		t.Checked += nested.Checked
		t.Unchecked += nested.Unchecked
		t.Total += nested.Total
	}
	return t
}

func quoteDepth(items []element.QuoteItem, depth int) int {
	deepest := depth
	for _, item := range items {
		if len(item.Items) > 0 {
			if d := quoteDepth(item.Items, depth+1); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}
