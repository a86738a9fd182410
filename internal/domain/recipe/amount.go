package recipe

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount reads the leading decimal numeral of a free-text amount such as
// "200", "2 шт" or "0.5 стакана". Text without a leading numeral, including
// the empty string and descriptive values like "по вкусу", yields 0.
// Non-finite results also yield 0.
func ParseAmount(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	end := numeralPrefix(s)
	if end == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numeralPrefix returns the length of the longest prefix of s that forms
// [sign] digits [. digits] [e [sign] digits], or 0 when no digit is present.
func numeralPrefix(s string) int {
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
		if digits > 0 || frac > 0 {
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
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}

	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
