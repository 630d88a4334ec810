package charting

import (
	"math"
	"strconv"
	"strings"
)

const siPrecision = 6

var siPrefixes = []string{"y", "z", "a", "f", "p", "n", "µ", "m", "", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// FormatSI renders v with an SI prefix, six significant digits and
// insignificant trailing zeros removed ("0", "35", "1.2k", "1.23457M").
func FormatSI(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	coefficient, exponent := decimalParts(v, siPrecision)
	prefixExponent := int(math.Max(-8, math.Min(8, math.Floor(float64(exponent)/3)))) * 3
	i := exponent - prefixExponent + 1
	n := len(coefficient)

	var s string
	switch {
	case i == n:
		s = coefficient
	case i > n:
		s = coefficient + strings.Repeat("0", i-n)
	case i > 0:
		s = coefficient[:i] + "." + coefficient[i:]
	default:
		digits, _ := decimalParts(v, max(0, siPrecision+i-1))
		s = "0." + strings.Repeat("0", 1-i) + digits
	}

	s = trimZeros(s)
	if s == "0" {
		return sign + s
	}
	return sign + s + siPrefixes[8+prefixExponent/3]
}

// FormatCount renders an integer count as SI text
func FormatCount(v int) string {
	return FormatSI(float64(v))
}

// decimalParts returns the significant digits of v (without decimal point)
// and its decimal exponent, rounded to p digits.
func decimalParts(v float64, p int) (string, int) {
	if p < 1 {
		p = 1
	}
	s := strconv.FormatFloat(v, 'e', p-1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	exponent, _ := strconv.Atoi(exp)
	return strings.Replace(mantissa, ".", "", 1), exponent
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
