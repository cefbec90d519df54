// Command sstctl evaluates company profiles against the SST obligation
// rules and prints the reference catalog, without running the API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sstctl",
		Short:         "Inspect SST diagnoses and catalog data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDiagnoseCommand(), newCatalogCommand())
	return root
}
