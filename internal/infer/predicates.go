package infer

import (
	"regexp"
	"strings"
	"time"
)

var (
	// No exponent notation, thousands separators or leading plus sign.
	numberRe  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	integerRe = regexp.MustCompile(`^-?\d+$`)
)

// Literal forms accepted as booleans. "0" and "1" also match the integer
// pattern; the classifier's precedence order resolves that overlap.
var boolLiterals = map[string]struct{}{
	"true": {}, "false": {},
	"0": {}, "1": {},
	"yes": {}, "no": {},
	"y": {}, "n": {},
	"t": {}, "f": {},
}

// dateLayouts order is load-bearing: an ambiguous string like
// "01/02/2024" is accepted by the first layout that parses it.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04",
}

// isoLayouts are tried after stripping a trailing Z and turning the T
// separator into a space. Fractional seconds are optional in the .9 forms.
var isoLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

func isNumber(s string) bool { return numberRe.MatchString(s) }

func isInteger(s string) bool { return integerRe.MatchString(s) }

func isBoolLiteral(s string) bool {
	_, ok := boolLiterals[strings.ToLower(s)]
	return ok
}

// isDate reports whether s parses under any fixed layout, or as an
// ISO-8601-like string. Malformed strings simply fail the predicate.
func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	iso := strings.ReplaceAll(strings.TrimSuffix(s, "Z"), "T", " ")
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, iso); err == nil {
			return true
		}
	}
	return false
}
