package element

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalJSON keeps a decimal point on integral floats so a parsed "2.0"
// does not come back as "2".
func (f Float) MarshalJSON() ([]byte, error) {
	s := f.String()
	if strings.ContainsAny(s, "nN") {
		// Inf/NaN have no JSON representation.
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// jsonObject is an insertion-ordered JSON object. encoding/json re-indents
// the compact bytes it produces, so it composes with MarshalIndent.
type jsonObject struct {
	keys []string
	vals []any
}

func (o *jsonObject) set(key string, val any) {
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type listItemJSON struct {
	Content string         `json:"content"`
	Items   []listItemJSON `json:"items"`
	Task    any            `json:"task"`
}

func listItemsJSON(items []ListItem) []listItemJSON {
	out := make([]listItemJSON, 0, len(items))
	for _, it := range items {
		var task any
		if it.Task != TaskNone {
			task = it.Task.String()
		}
		out = append(out, listItemJSON{
			Content: it.Content,
			Items:   listItemsJSON(it.Items),
			Task:    task,
		})
	}
	return out
}

type quoteItemJSON struct {
	Content string          `json:"content"`
	Items   []quoteItemJSON `json:"items"`
}

func quoteItemsJSON(items []QuoteItem) []quoteItemJSON {
	out := make([]quoteItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, quoteItemJSON{Content: it.Content, Items: quoteItemsJSON(it.Items)})
	}
	return out
}

// JSONPayload returns the JSON-marshalable payload of an element, without
// the kind wrapper or line range. Hierarchy serialization embeds these
// payloads under its own keys.
func JSONPayload(el Element) any {
	switch e := el.(type) {
	case *Metadata:
		obj := &jsonObject{}
		for _, entry := range e.Entries {
			obj.set(entry.Key, entry.Value)
		}
		return obj
	case *Header:
		return &struct {
			Level   int    `json:"level"`
			Content string `json:"content"`
		}{e.Level, e.Content}
	case *Paragraph:
		return e.Content
	case *List:
		return &struct {
			Type  string         `json:"type"`
			Items []listItemJSON `json:"items"`
		}{e.Type.String(), listItemsJSON(e.Items)}
	case *Table:
		obj := &jsonObject{}
		for _, col := range e.Columns {
			cells := col.Cells
			if cells == nil {
				cells = []Value{}
			}
			obj.set(col.Name, cells)
		}
		return obj
	case *Code:
		var lang any
		if e.Language != "" {
			lang = e.Language
		}
		return &struct {
			Language any    `json:"language"`
			Content  string `json:"content"`
		}{lang, e.Content}
	case *Blockquote:
		return quoteItemsJSON(e.Items)
	case *DefinitionList:
		descs := e.Descriptions
		if descs == nil {
			descs = []string{}
		}
		return &struct {
			Term string   `json:"term"`
			List []string `json:"list"`
		}{e.Term, descs}
	case *Separator:
		return e.Marker
	default:
		return nil
	}
}

// FlatJSON serializes the element sequence in its flat form: one object per
// element, the payload keyed by kind tag plus the source line range.
// indent <= 0 produces compact output.
func FlatJSON(elements []Element, indent int) (string, error) {
	wrapped := make([]*jsonObject, 0, len(elements))
	for _, el := range elements {
		obj := &jsonObject{}
		obj.set(el.Kind().String(), JSONPayload(el))
		obj.set("start_line", el.Start())
		obj.set("end_line", el.End())
		wrapped = append(wrapped, obj)
	}
	var (
		b   []byte
		err error
	)
	if indent > 0 {
		b, err = json.MarshalIndent(wrapped, "", strings.Repeat(" ", indent))
	} else {
		b, err = json.Marshal(wrapped)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
