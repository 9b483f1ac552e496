package value

import (
	"math"
	"strconv"
	"strings"
)

func formatInt(i int64) string { return strconv.FormatInt(i, 10) }

func formatUint(u uint64) string { return strconv.FormatUint(u, 10) }

// formatFloat prints the shortest representation that round-trips at the
// given precision, always with a decimal point or exponent so that floats
// stay distinguishable from integers.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func formatComplex(c complex128, bits int) string {
	return "(" + formatFloat(real(c), bits) + ", " + formatFloat(imag(c), bits) + ")"
}
