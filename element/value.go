package element

import (
	"math"
	"strconv"
	"strings"
)

// Value is a scalar or list value inside metadata entries and table cells.
// Table cells only ever hold Str, Int, Float or Null; metadata values may
// additionally be Bool or ValueList.
type Value interface {
	value()
	// String renders the value the way the serializer writes it back to
	// markdown. Booleans render Python-style (True/False) to match the
	// frontmatter convention the parser accepts.
	String() string
}

// Str is a plain string value.
type Str string

func (Str) value() {}

func (s Str) String() string { return string(s) }

// Int is an integer value.
type Int int64

func (Int) value() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is a floating-point value. Rendering keeps a decimal point so a
// parsed "2.0" survives a round trip.
type Float float64

func (Float) value() {}

func (f Float) String() string {
	v := float64(f)
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Trunc(v) == v {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Bool is a boolean metadata value.
type Bool bool

func (Bool) value() {}

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// Null is the absent value: an empty metadata value or a padded table cell.
type Null struct{}

func (Null) value() {}

func (Null) String() string { return "" }

// ValueList is a list metadata value.
type ValueList []Value

func (ValueList) value() {}

func (l ValueList) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
