// Package infer classifies the columns of a tabular sample into semantic
// types with a confidence score. The heuristic is deterministic and
// explainable: per-value predicates counted over a bounded sample, then an
// ordered precedence of thresholds. It never coerces values, only
// classifies them.
package infer

import (
	"math"
	"sort"
)

// DefaultSampleSize bounds how many rows inference reads. Larger inputs
// are classified from this prefix only, which keeps cost flat for
// arbitrarily large imports.
const DefaultSampleSize = 200

// Threshold fractions of the non-empty value count a type must reach.
const (
	boolThreshold = 0.8
	typeThreshold = 0.5
)

// InferSchema classifies every column appearing in rows. sampleSize <= 0
// selects DefaultSampleSize. The call is pure: no I/O, no shared state,
// safe for concurrent callers.
func InferSchema(rows []Row, sampleSize int) Schema {
	if len(rows) == 0 {
		return Schema{}
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	sample := rows
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	keys := sampleKeys(sample)
	out := make(Schema, 0, len(keys))
	for _, k := range keys {
		out = append(out, classifyColumn(k, sample))
	}
	return out
}

// sampleKeys returns the union of keys across the sample. Rows may be
// ragged, and map iteration order is random, so the union is sorted to
// keep repeated calls on identical input byte-for-byte identical.
func sampleKeys(sample []Row) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, r := range sample {
		for k := range r {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func classifyColumn(key string, sample []Row) Column {
	n := len(sample)
	var nonEmpty []string
	for _, r := range sample {
		// A key absent from the row reads as a null cell.
		if v := r[key].Norm(); v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}
	ne := len(nonEmpty)
	if ne == 0 {
		// Nothing to classify on; confidence stays absent.
		return Column{Name: key, Type: TypeString, Nullable: true}
	}

	var num, integ, boo, dat int
	distinct := make(map[string]struct{}, ne)
	for _, v := range nonEmpty {
		if isNumber(v) {
			num++
		}
		if isInteger(v) {
			integ++
		}
		if isBoolLiteral(v) {
			boo++
		}
		if isDate(v) {
			dat++
		}
		distinct[v] = struct{}{}
	}
	card := len(distinct)
	fne := float64(ne)

	// Precedence is ordered with early exit and must stay that way:
	// boolean goes first so "0"/"1" columns are not absorbed by integer,
	// integer before number because every integer literal also matches
	// the number pattern.
	typ, conf := TypeString, 0.1
	switch {
	case float64(boo) >= boolThreshold*fne:
		typ, conf = TypeBoolean, float64(boo)/fne
	case float64(integ) >= typeThreshold*fne:
		typ, conf = TypeInteger, float64(integ)/fne
	case float64(num) >= typeThreshold*fne:
		typ, conf = TypeNumber, float64(num)/fne
	case float64(dat) >= typeThreshold*fne:
		typ, conf = TypeDate, float64(dat)/fne
	case float64(card) <= math.Max(10, 0.3*fne):
		typ, conf = TypeCategorical, math.Min(0.9, math.Max(0.3, 1-float64(card)/fne))
	}

	conf = math.Round(conf*1000) / 1000
	return Column{Name: key, Type: typ, Nullable: ne < n, Confidence: &conf}
}
