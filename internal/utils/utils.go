package utils

import (
	"errors"
	"strconv"
	"strings"

	"github.com/JustUsingaWebsite/survey-powerops/internal/types"
)

// WhitespaceTrimmer removes leading/trailing whitespace and collapses internal whitespace.
func WhitespaceTrimmer(s string) string {
	// Trim + collapse multiple spaces
	s = strings.TrimSpace(s)
	// strings.Fields will collapse all whitespace runs into single spaces
	parts := strings.Fields(s)
	return strings.Join(parts, " ")
}

// ParseIndexString reports whether s is a plain non-negative integer, usable
// as a positional column index.
func ParseIndexString(s string) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || idx < 0 {
		return -1, false
	}
	return idx, true
}

// ResolveKeyIndex returns the column index for a key which can be a header name or numeric index string.
// If the table has no header, key must be numeric.
func ResolveKeyIndex(tbl types.TableData, key string) (int, error) {
	if tbl.HasHeader {
		keyTrim := strings.TrimSpace(key)
		for i, h := range tbl.Header {
			if strings.EqualFold(strings.TrimSpace(h), keyTrim) {
				return i, nil
			}
		}
		// fallback: maybe key is numeric string
		if idx, ok := ParseIndexString(key); ok {
			if idx >= len(tbl.Header) {
				return -1, errors.New("numeric key index out of range")
			}
			return idx, nil
		}
		return -1, errors.New("key not found in header")
	}
	// no header - key must be numeric
	idx, ok := ParseIndexString(key)
	if !ok {
		return -1, errors.New("no header: key must be numeric index string")
	}
	if len(tbl.Rows) > 0 && idx >= len(tbl.Rows[0]) {
		return -1, errors.New("numeric key index out of range")
	}
	return idx, nil
}

// Normalize applies trimming according to flags.
func Normalize(val string, trim bool) string {
	if trim {
		val = WhitespaceTrimmer(val)
	}
	return val
}

// IsMissingCell reports whether a cell is a missing value: the empty string
// or the literal token "NA" (post-trim when trim is enabled).
func IsMissingCell(s string, trim bool) bool {
	if trim {
		s = strings.TrimSpace(s)
	}
	return s == "" || s == "NA"
}

// ParseNumericCell parses a table cell as a float64.
func ParseNumericCell(s string, trim bool) (float64, error) {
	if trim {
		s = strings.TrimSpace(s)
	}
	return strconv.ParseFloat(s, 64)
}
