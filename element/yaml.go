package element

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

func yamlStr(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlInt(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func yamlNull() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func yamlMapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: pairs}
}

func yamlSequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

// YAMLValue converts a metadata or cell value into a yaml node with an
// explicit tag, so a string "true" survives re-encoding as a string.
func YAMLValue(v Value) *yaml.Node {
	switch val := v.(type) {
	case Str:
		return yamlStr(string(val))
	case Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: val.String()}
	case Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: val.String()}
	case Bool:
		s := "false"
		if val {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case ValueList:
		items := make([]*yaml.Node, len(val))
		for i, item := range val {
			items[i] = YAMLValue(item)
		}
		return yamlSequence(items...)
	default:
		return yamlNull()
	}
}

func listItemsYAML(items []ListItem) *yaml.Node {
	seq := make([]*yaml.Node, 0, len(items))
	for _, it := range items {
		task := yamlNull()
		if it.Task != TaskNone {
			task = yamlStr(it.Task.String())
		}
		seq = append(seq, yamlMapping(
			yamlStr("content"), yamlStr(it.Content),
			yamlStr("items"), listItemsYAML(it.Items),
			yamlStr("task"), task,
		))
	}
	return yamlSequence(seq...)
}

func quoteItemsYAML(items []QuoteItem) *yaml.Node {
	seq := make([]*yaml.Node, 0, len(items))
	for _, it := range items {
		seq = append(seq, yamlMapping(
			yamlStr("content"), yamlStr(it.Content),
			yamlStr("items"), quoteItemsYAML(it.Items),
		))
	}
	return yamlSequence(seq...)
}

// YAMLPayload returns the yaml node for an element payload, with key order
// preserved. The shapes mirror JSONPayload.
func YAMLPayload(el Element) (*yaml.Node, error) {
	switch e := el.(type) {
	case *Metadata:
		pairs := make([]*yaml.Node, 0, len(e.Entries)*2)
		for _, entry := range e.Entries {
			pairs = append(pairs, yamlStr(entry.Key), YAMLValue(entry.Value))
		}
		return yamlMapping(pairs...), nil
	case *Header:
		return yamlMapping(
			yamlStr("level"), yamlInt(e.Level),
			yamlStr("content"), yamlStr(e.Content),
		), nil
	case *Paragraph:
		return yamlStr(e.Content), nil
	case *List:
		return yamlMapping(
			yamlStr("type"), yamlStr(e.Type.String()),
			yamlStr("items"), listItemsYAML(e.Items),
		), nil
	case *Table:
		pairs := make([]*yaml.Node, 0, len(e.Columns)*2)
		for _, col := range e.Columns {
			cells := make([]*yaml.Node, len(col.Cells))
			for i, c := range col.Cells {
				cells[i] = YAMLValue(c)
			}
			pairs = append(pairs, yamlStr(col.Name), yamlSequence(cells...))
		}
		return yamlMapping(pairs...), nil
	case *Code:
		lang := yamlNull()
		if e.Language != "" {
			lang = yamlStr(e.Language)
		}
		return yamlMapping(
			yamlStr("language"), lang,
			yamlStr("content"), yamlStr(e.Content),
		), nil
	case *Blockquote:
		return quoteItemsYAML(e.Items), nil
	case *DefinitionList:
		descs := make([]*yaml.Node, len(e.Descriptions))
		for i, d := range e.Descriptions {
			descs[i] = yamlStr(d)
		}
		return yamlMapping(
			yamlStr("term"), yamlStr(e.Term),
			yamlStr("list"), yamlSequence(descs...),
		), nil
	case *Separator:
		return yamlStr(e.Marker), nil
	default:
		return nil, fmt.Errorf("unknown element kind %v", el.Kind())
	}
}

// FlatYAML serializes the element sequence in its flat form as a yaml
// document, one mapping per element.
func FlatYAML(elements []Element) (string, error) {
	seq := make([]*yaml.Node, 0, len(elements))
	for _, el := range elements {
		payload, err := YAMLPayload(el)
		if err != nil {
			return "", err
		}
		seq = append(seq, yamlMapping(
			yamlStr(el.Kind().String()), payload,
			yamlStr("start_line"), yamlInt(el.Start()),
			yamlStr("end_line"), yamlInt(el.End()),
		))
	}
	out, err := yaml.Marshal(yamlSequence(seq...))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
