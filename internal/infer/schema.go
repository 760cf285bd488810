package infer

// Column types assigned by the classifier.
const (
	TypeNumber      = "number"
	TypeInteger     = "integer"
	TypeDate        = "date"
	TypeBoolean     = "boolean"
	TypeCategorical = "categorical"
	TypeString      = "string"
)

// Column describes one inferred column of a tabular sample.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	// Confidence is nil when the column had no non-empty values to score.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Schema is the full inferred schema, one Column per key seen in the sample.
type Schema []Column
