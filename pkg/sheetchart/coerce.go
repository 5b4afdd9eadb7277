package sheetchart

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// decimalPrefix matches the longest leading decimal literal of a string.
var decimalPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// CoerceNumber converts a raw cell value to a finite float64.
//
// Numbers convert directly. Strings are read up to the end of their leading
// decimal literal after skipping whitespace, so "12.5kg" is 12.5 and "abc"
// is 0. Parsing is locale-independent: "1,5" reads as 1. Anything else,
// including nil, bools and times, is 0, as are NaN and infinities.
func CoerceNumber(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		f = parseLeadingFloat(string(n))
	case string:
		f = parseLeadingFloat(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	lit := decimalPrefix.FindString(s)
	if lit == "" {
		return 0
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0
	}
	return f
}
