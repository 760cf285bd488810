package infer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the scalar variant held by a Cell. The zero Kind is KindNull,
// so a missing map key reads back as a null cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Cell is one tabular value as received from an upstream producer. It is
// an explicit sum over the scalar kinds a row-record may carry.
type Cell struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// Row maps column keys to cell values. Rows may be ragged: keys are not
// required to be consistent across rows of the same dataset.
type Row map[string]Cell

func NullCell() Cell           { return Cell{Kind: KindNull} }
func StringCell(s string) Cell { return Cell{Kind: KindString, Str: s} }
func IntCell(i int64) Cell     { return Cell{Kind: KindInt, Int: i} }
func FloatCell(f float64) Cell { return Cell{Kind: KindFloat, Float: f} }
func BoolCell(b bool) Cell     { return Cell{Kind: KindBool, Bool: b} }

// Norm returns the normalized form every predicate operates on: "" for
// null, otherwise the string rendering with surrounding whitespace
// stripped.
func (c Cell) Norm() string {
	switch c.Kind {
	case KindString:
		return strings.TrimSpace(c.Str)
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case KindBool:
		if c.Bool {
			return "true"
		}
		return "false"
	}
	return ""
}

// UnmarshalJSON accepts only JSON scalars; objects and arrays inside a
// row-record are an input-shape error surfaced at the decode boundary,
// never a classification outcome.
func (c *Cell) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*c = Cell{Kind: KindNull}
	case string:
		*c = Cell{Kind: KindString, Str: t}
	case bool:
		*c = Cell{Kind: KindBool, Bool: t}
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			*c = Cell{Kind: KindInt, Int: i}
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("cell number %q: %w", t.String(), err)
		}
		*c = Cell{Kind: KindFloat, Float: f}
	default:
		return fmt.Errorf("cell must be a scalar, got %T", v)
	}
	return nil
}

// MarshalJSON renders the cell back as the scalar it holds, so sampled
// rows echo through a preview response unchanged.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(c.Str)
	case KindInt:
		return json.Marshal(c.Int)
	case KindFloat:
		return json.Marshal(c.Float)
	case KindBool:
		return json.Marshal(c.Bool)
	}
	return nil, fmt.Errorf("unknown cell kind %d", c.Kind)
}
