package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned when a field has no usable numeric prefix.
var ErrNotNumeric = errors.New("not a numeric value")

// ParseNumber converts a metric field to a float64, tolerating thousands
// grouping and a decimal comma.
//
// Empty input yields 0. Interior spaces are grouping and are removed. With no
// dot, a single comma is a decimal separator and several commas are grouping;
// when a dot is present every comma is grouping. The longest numeric prefix is
// parsed; whatever follows it is returned as trailing so callers can warn
// while keeping the value. A missing prefix, NaN or an overflow to ±Inf is an
// error.
func ParseNumber(s string) (value float64, trailing string, err error) {
	raw := normalizeNumber(s)
	if raw == "" {
		return 0, "", nil
	}
	end := numericPrefix(raw)
	if end == 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrNotNumeric, strings.TrimSpace(s))
	}
	f, perr := strconv.ParseFloat(raw[:end], 64)
	if perr != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, "", fmt.Errorf("%w: %q", ErrNotNumeric, strings.TrimSpace(s))
	}
	return f, raw[end:], nil
}

func normalizeNumber(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return ""
	}
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, raw)
	hasDot := strings.Contains(raw, ".")
	commas := strings.Count(raw, ",")
	switch {
	case commas == 1 && !hasDot:
		raw = strings.Replace(raw, ",", ".", 1)
	case commas > 0:
		raw = strings.ReplaceAll(raw, ",", "")
	}
	return raw
}

// numericPrefix returns the length of the leading [+-]digits[.digits][e[+-]digits]
// run in s, or 0 when s does not start with a number.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
