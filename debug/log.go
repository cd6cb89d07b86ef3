package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/signadot/objmap/ir"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Logf writes a debug line to stderr. Node arguments are rendered in
// compact form and composite Go values are dumped.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = ir.Format(x)
		case bool, string, float64, int, int64, error, fmt.Stringer:
		default:
			args[i] = strings.TrimSuffix(dumper.Sdump(x), "\n")
		}
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
