package builtin

import (
	"strings"

	"github.com/you-not-fish/xdl/internal/value"
)

func init() {
	for name, k := range map[string]value.Kind{
		"BYTE":     value.KindByte,
		"FIX":      value.KindInt,
		"UINT":     value.KindUInt,
		"LONG":     value.KindLong,
		"ULONG":    value.KindULong,
		"LONG64":   value.KindLong64,
		"ULONG64":  value.KindULong64,
		"FLOAT":    value.KindFloat,
		"DOUBLE":   value.KindDouble,
		"COMPLEX":  value.KindComplex,
		"DCOMPLEX": value.KindDComplex,
	} {
		register(name, 1, 1, nil, convertTo(k))
	}
	register("STRING", 1, -1, nil, stringOf)
}

func convertTo(k value.Kind) func(*Library, *call) (value.Value, error) {
	return func(l *Library, c *call) (value.Value, error) {
		r, err := value.Convert(c.args[0], k)
		if err != nil {
			return nil, c.errorf(err)
		}
		return r, nil
	}
}

// stringOf converts one argument element-wise. Several arguments are
// formatted as PRINT would and joined into one string.
func stringOf(l *Library, c *call) (value.Value, error) {
	if len(c.args) == 1 {
		return convertTo(value.KindString)(l, c)
	}
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = Format([]value.Value{a})
	}
	return value.String(strings.Join(parts, "")), nil
}
