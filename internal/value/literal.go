package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// intSuffixKinds maps integer literal suffixes to their kinds.
var intSuffixKinds = map[string]Kind{
	"B":   KindByte,
	"S":   KindInt,
	"U":   KindUInt,
	"US":  KindUInt,
	"L":   KindLong,
	"UL":  KindULong,
	"LL":  KindLong64,
	"ULL": KindULong64,
}

// ParseInt converts the text of an integer literal: decimal, 0x/0o/0b
// prefixed, or a radix string such as 'FF'x, with an optional type suffix.
// Without a suffix the literal is LONG, or LONG64 when it does not fit.
func ParseInt(lit string) (Value, error) {
	digits, base, suffix, err := splitInt(lit)
	if err != nil {
		return nil, err
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer literal %s", lit)
	}
	if suffix == "" {
		switch {
		case u <= math.MaxInt32:
			return Long(u), nil
		case u <= math.MaxInt64:
			return Long64(u), nil
		}
		return ULong64(u), nil
	}
	k, ok := intSuffixKinds[strings.ToUpper(suffix)]
	if !ok {
		return nil, fmt.Errorf("invalid suffix %q on integer literal %s", suffix, lit)
	}
	if limit := intLimit(k, base != 10); u > limit {
		return nil, fmt.Errorf("integer literal %s is out of range for %s", lit, k)
	}
	if k == KindULong64 {
		return ULong64(u), nil
	}
	return fromInt(k, int64(u)), nil
}

// intLimit is the largest literal value of kind k. Decimal literals must
// fit the kind's range; radix literals may fill all of its bits and wrap
// into negative values of signed kinds, so 'FFFF'xS is -1.
func intLimit(k Kind, radix bool) uint64 {
	switch k {
	case KindByte:
		return math.MaxUint8
	case KindInt:
		if radix {
			return math.MaxUint16
		}
		return math.MaxInt16
	case KindUInt:
		return math.MaxUint16
	case KindLong:
		if radix {
			return math.MaxUint32
		}
		return math.MaxInt32
	case KindULong:
		return math.MaxUint32
	case KindLong64:
		if !radix {
			return math.MaxInt64
		}
	}
	return math.MaxUint64
}

func splitInt(lit string) (digits string, base int, suffix string, err error) {
	base = 10
	digit := isDecDigit
	body := lit
	switch {
	case strings.HasPrefix(lit, "'") || strings.HasPrefix(lit, `"`):
		end := strings.IndexByte(lit[1:], lit[0])
		if end < 0 || end+2 >= len(lit) {
			return "", 0, "", fmt.Errorf("invalid radix literal %s", lit)
		}
		digits = lit[1 : end+1]
		switch lit[end+2] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		default:
			return "", 0, "", fmt.Errorf("invalid radix literal %s", lit)
		}
		return digits, base, lit[end+3:], nil
	case len(lit) > 2 && lit[0] == '0':
		switch lit[1] {
		case 'x', 'X':
			base, digit, body = 16, isHex, lit[2:]
		case 'o', 'O':
			base, digit, body = 8, isDecDigit, lit[2:]
		case 'b', 'B':
			if lit[2] == '0' || lit[2] == '1' {
				base, digit, body = 2, isDecDigit, lit[2:]
			}
		}
	}
	i := 0
	for i < len(body) && digit(body[i]) {
		i++
	}
	if i == 0 {
		return "", 0, "", fmt.Errorf("invalid integer literal %s", lit)
	}
	return body[:i], base, body[i:], nil
}

func isDecDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHex(c byte) bool {
	return isDecDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// ParseFloat converts the text of a floating-point literal. A D exponent or
// suffix makes it DOUBLE; otherwise it is FLOAT.
func ParseFloat(lit string) (Value, error) {
	s := lit
	double := strings.ContainsAny(s, "dD")
	if double {
		s = strings.TrimRight(s, "dD")
		s = strings.NewReplacer("d", "e", "D", "e").Replace(s)
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	bits := 32
	if double {
		bits = 64
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return nil, fmt.Errorf("invalid floating-point literal %s", lit)
		}
	}
	if double {
		return Double(f), nil
	}
	return Float(f), nil
}
