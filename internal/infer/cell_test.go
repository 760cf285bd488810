package infer_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabimport/internal/infer"
)

func TestCellUnmarshalJSON(t *testing.T) {
	var row infer.Row
	err := json.Unmarshal([]byte(`{"s":" hi ","i":3,"f":2.5,"b":true,"z":null}`), &row)
	require.NoError(t, err)

	assert.Equal(t, infer.StringCell(" hi "), row["s"])
	assert.Equal(t, infer.IntCell(3), row["i"])
	assert.Equal(t, infer.FloatCell(2.5), row["f"])
	assert.Equal(t, infer.BoolCell(true), row["b"])
	assert.Equal(t, infer.NullCell(), row["z"])
}

func TestCellUnmarshalJSON_RejectsNonScalar(t *testing.T) {
	var row infer.Row
	assert.Error(t, json.Unmarshal([]byte(`{"a":{"nested":1}}`), &row))
	assert.Error(t, json.Unmarshal([]byte(`{"a":[1,2]}`), &row))

	var rows []infer.Row
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &rows), "non-mapping row elements must fail at the boundary")
}

func TestCellNorm(t *testing.T) {
	var tests = []struct {
		name string
		cell infer.Cell
		want string
	}{
		{"null", infer.NullCell(), ""},
		{"missing key reads as null", infer.Row{}["nope"], ""},
		{"trimmed string", infer.StringCell("  padded  "), "padded"},
		{"blank string", infer.StringCell("   "), ""},
		{"int", infer.IntCell(-42), "-42"},
		{"float", infer.FloatCell(2.5), "2.5"},
		{"bool true", infer.BoolCell(true), "true"},
		{"bool false", infer.BoolCell(false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Norm())
		})
	}
}

func TestCellMarshalRoundTrip(t *testing.T) {
	in := []byte(`{"b":false,"f":1.25,"i":7,"s":"x","z":null}`)
	var row infer.Row
	require.NoError(t, json.Unmarshal(in, &row))

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
}
