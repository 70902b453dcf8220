package models

import (
	"math"
	"strconv"
	"strings"
)

// RoundTo2 rounds to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatNumber prints v with at most two decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(RoundTo2(v), 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatPercent prints v as a percentage, e.g. "12.5%".
func FormatPercent(v float64) string {
	return FormatNumber(v) + "%"
}

// FormatThousands prints an integer part with comma grouping, e.g. 10,000,000.
func FormatThousands(v float64) string {
	n := int64(math.Round(v))
	negative := n < 0
	if negative {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
