package main

import (
	"fmt"
	"testing"

	"tabimport/internal/infer"
)

func intRows(n int) []infer.Row {
	rows := make([]infer.Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, infer.Row{"a": infer.StringCell(fmt.Sprintf("%d", i))})
	}
	return rows
}

func TestBuildPreview(t *testing.T) {
	given := infer.Schema{{Name: "a", Type: infer.TypeString, Nullable: true}}

	var tests = []struct {
		name         string
		rows         []infer.Row
		schema       infer.Schema
		wantSample   int
		wantType     string
		wantWarnings int
	}{
		{"infers when no schema given", intRows(3), nil, 3, infer.TypeInteger, 0},
		{"supplied schema bypasses inference", intRows(3), given, 3, infer.TypeString, 0},
		{"sample capped and large volume warned", intRows(30), nil, 10, infer.TypeInteger, 1},
		{"empty rows yield empty preview", nil, nil, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := buildPreview(tt.rows, tt.schema, 10, 20)

			if len(resp.Sample) != tt.wantSample {
				t.Errorf("\ngot %d sample rows, wanted %d", len(resp.Sample), tt.wantSample)
			}
			if len(resp.Warnings) != tt.wantWarnings {
				t.Errorf("\ngot warnings %v, wanted %d of them", resp.Warnings, tt.wantWarnings)
			}
			if tt.wantType == "" {
				if len(resp.Schema) != 0 {
					t.Errorf("\ngot schema %v, wanted an empty one", resp.Schema)
				}
				return
			}
			if len(resp.Schema) != 1 || resp.Schema[0].Type != tt.wantType {
				t.Errorf("\ngot schema %v, wanted one %q column", resp.Schema, tt.wantType)
			}
		})
	}
}
