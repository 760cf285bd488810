package textrows_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabimport/internal/infer"
	"tabimport/internal/textrows"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"tabs win over spaces", "a\tb c\td", []string{"a", "b c", "d"}},
		{"two or more spaces split", "alpha  beta   gamma", []string{"alpha", "beta", "gamma"}},
		{"single spaces do not split", "one two three", []string{"one two three"}},
		{"empty parts dropped", "a\t\t\tb", []string{"a", "b"}},
		{"surrounding whitespace trimmed", "  a  b  ", []string{"a", "b"}},
		{"blank line", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textrows.SplitColumns(tt.line)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromText(t *testing.T) {
	text := strings.Join([]string{
		"Invoice report for Q1",
		"ref001  2024-01-05  129.90",
		"ref002\t2024-01-06\t45.00",
		"total 174.90",
		"",
	}, "\n")

	rows := textrows.FromText(text)
	require.Len(t, rows, 2, "only lines with at least 3 parts become rows")

	assert.Equal(t, infer.StringCell("ref001"), rows[0]["col1"])
	assert.Equal(t, infer.StringCell("2024-01-05"), rows[0]["col2"])
	assert.Equal(t, infer.StringCell("129.90"), rows[0]["col3"])
	assert.Equal(t, infer.StringCell("45.00"), rows[1]["col3"])
}

func TestFromText_NoTableLines(t *testing.T) {
	assert.Empty(t, textrows.FromText("just prose\nand more prose"))
	assert.Empty(t, textrows.FromText(""))
}

func TestFromCSV(t *testing.T) {
	in := "id,name,active\n1,ada,true\n2,grace,false\n3,edsger\n"
	rows, err := textrows.FromCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, infer.StringCell("ada"), rows[0]["name"])
	assert.Equal(t, infer.StringCell("true"), rows[0]["active"])

	// Short record: "active" is absent, not empty-string.
	_, ok := rows[2]["active"]
	assert.False(t, ok)

	schema := infer.InferSchema(rows, 0)
	require.Len(t, schema, 3)
	byName := make(map[string]infer.Column, len(schema))
	for _, col := range schema {
		byName[col.Name] = col
	}
	assert.Equal(t, infer.TypeInteger, byName["id"].Type)
	assert.True(t, byName["active"].Nullable)
}

func TestFromCSV_Empty(t *testing.T) {
	rows, err := textrows.FromCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFromCSV_Malformed(t *testing.T) {
	_, err := textrows.FromCSV(strings.NewReader("a,\"b\nunclosed"))
	assert.Error(t, err)
}
