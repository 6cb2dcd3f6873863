package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gerunddev/markdata/classify"
	"github.com/gerunddev/markdata/element"
)

// mergeTables folds consecutive table row lines into Table elements. A run
// normally becomes one table; a second separator row after data rows have
// been collected closes the table and opens the next one, promoting the row
// just before that separator to the new header.
func mergeTables(nodes []node) []node {
	var out []node
	var run []classify.Line

	flush := func() {
		if len(run) == 0 {
			return
		}
		for _, seg := range splitTableRun(run) {
			out = append(out, node{el: buildTable(seg)})
		}
		run = nil
	}

	for _, n := range nodes {
		if n.isLine(classify.LineTableRow) {
			run = append(run, n.line)
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()
	return out
}

// splitTableRun splits a row run at every separator that follows at least
// one data row of an already-separated table. The data row right before the
// split moves into the new segment as its header row.
func splitTableRun(run []classify.Line) [][]classify.Line {
	var segments [][]classify.Line
	var current []classify.Line
	sawSeparator := false
	dataRows := 0

	for _, row := range run {
		if row.SeparatorRow {
			if sawSeparator && dataRows > 0 {
				header := current[len(current)-1]
				segments = append(segments, current[:len(current)-1])
				current = []classify.Line{header, row}
				dataRows = 0
				continue
			}
			current = append(current, row)
			sawSeparator = true
			dataRows = 0
			continue
		}
		current = append(current, row)
		if sawSeparator {
			dataRows++
		}
	}
	segments = append(segments, current)
	return segments
}

// buildTable turns one segment into a column-oriented table. With a
// separator present the row right before it names the columns; otherwise
// every column falls back to col_N and all rows are data. Cells are padded
// with Null up to the widest row.
func buildTable(seg []classify.Line) *element.Table {
	maxCols := 0
	for _, row := range seg {
		if !row.SeparatorRow && len(row.Cells) > maxCols {
			maxCols = len(row.Cells)
		}
	}

	sepIdx := -1
	for i, row := range seg {
		if row.SeparatorRow {
			sepIdx = i
			break
		}
	}

	var headerCells []string
	dataStart := 0
	if sepIdx >= 0 {
		if sepIdx > 0 && !seg[sepIdx-1].SeparatorRow {
			headerCells = seg[sepIdx-1].Cells
		}
		dataStart = sepIdx + 1
	}

	cols := make([]element.Column, maxCols)
	for i := range cols {
		if i < len(headerCells) && headerCells[i] != "" {
			cols[i].Name = headerCells[i]
		} else {
			cols[i].Name = fmt.Sprintf("col_%d", i+1)
		}
	}

	for _, row := range seg[dataStart:] {
		if row.SeparatorRow {
			continue
		}
		for i := range cols {
			var v element.Value = element.Null{}
			if i < len(row.Cells) {
				v = cellValue(row.Cells[i])
			}
			cols[i].Cells = append(cols[i].Cells, v)
		}
	}

	return &element.Table{
		Columns: cols,
		Span:    element.Span{StartLine: seg[0].Num, EndLine: seg[len(seg)-1].Num},
	}
}

// cellValue coerces a table cell: empty becomes Null, numeric strings
// become Int or Float, anything else stays a string.
func cellValue(s string) element.Value {
	if s == "" {
		return element.Null{}
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return element.Float(f)
		}
		return element.Str(s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return element.Int(n)
	}
	return element.Str(s)
}
