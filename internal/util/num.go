package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var digitPattern = regexp.MustCompile(`\d`)

// ParseAmount extracts a non-negative numeric value from a loosely
// formatted monetary or quantity string ("$1,234.50", "10.00 ea").
// Strings without a digit, and strings the float parser rejects
// ("1.2.3"), yield 0. It is the single coercion boundary for every
// money and quantity field; it never fails.
func ParseAmount(input string) float64 {
	if !digitPattern.MatchString(input) {
		return 0
	}
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

// ParseSigned is the comparison variant used by column sorting: it
// keeps a minus sign so negative display values order correctly.
func ParseSigned(input string) float64 {
	var b strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	parsed, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var leadingDigits = regexp.MustCompile(`(\d+)`)

// ExtractDigits pulls the first digit run out of a job label, so
// "6811 - Riverside Mall" becomes "6811". Inputs without digits are
// returned unchanged.
func ExtractDigits(s string) string {
	if s == "" {
		return s
	}
	if m := leadingDigits.FindString(s); m != "" {
		return m
	}
	return s
}
