package cli

import (
	"fmt"
	"os"

	"github.com/tidwall/pretty"
)

// printJSON pretty-prints a response body, in color when writing to a terminal.
func (a *App) printJSON(data []byte) {
	out := pretty.Pretty(data)
	if f, ok := a.out.(*os.File); ok && isTerminal(int(f.Fd())) {
		out = pretty.Color(out, nil)
	}
	fmt.Fprint(a.out, string(out))
}
