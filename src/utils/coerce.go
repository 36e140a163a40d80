package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseExamNumber normalises an exam number that may arrive as a JSON number
// or a string ("2" and 2 are the same exam). This is the single coercion
// point; everything past the boundary compares plain ints.
func ParseExamNumber(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("exam number %q is not numeric", n)
		}
		return i, nil
	case nil:
		return 0, fmt.Errorf("exam number is required")
	default:
		return 0, fmt.Errorf("exam number has unsupported type %T", v)
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts the date formats the front end sends.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
