package builtin

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/xdl/internal/interp"
	"github.com/you-not-fish/xdl/internal/value"
)

func init() {
	register("PRINT", 0, -1, nil, printProc)
	register("MESSAGE", 1, 1, []string{"INFORMATIONAL", "CONTINUE", "NONAME"}, message)
	register("HELP", 0, -1, nil, help)
}

// Format renders values the way PRINT does: separated by a space, arrays
// one row per line.
func Format(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if value.IsUndefined(a) {
			parts[i] = "!NULL"
			continue
		}
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

func printProc(l *Library, c *call) (value.Value, error) {
	_, err := fmt.Fprintln(l.out(), Format(c.args))
	return nil, err
}

// message raises msg as a runtime error, or prints it when
// /INFORMATIONAL or /CONTINUE is set.
func message(l *Library, c *call) (value.Value, error) {
	msg, err := value.Convert(value.Scalar(c.args[0]), value.KindString)
	if err != nil {
		return nil, c.errorf(err)
	}
	text := msg.String()
	if c.flag("INFORMATIONAL") || c.flag("CONTINUE") {
		_, err := fmt.Fprintf(l.out(), "%% %s\n", text)
		return nil, err
	}
	return nil, &interp.Error{Kind: interp.Runtime, Msg: text}
}

// help prints the type of each argument.
func help(l *Library, c *call) (value.Value, error) {
	for _, a := range c.args {
		desc := value.Describe(a)
		if _, ok := a.(*value.Array); !ok && !value.IsUndefined(a) {
			desc = fmt.Sprintf("%-10s = %s", desc, a)
		}
		if _, err := fmt.Fprintln(l.out(), desc); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
