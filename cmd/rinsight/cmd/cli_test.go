package cmd

import (
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets the compiled test binary double as the rinsight CLI: when
// invoked under testscript's exec protocol it dispatches to runRinsight
// instead of running the Go test suite.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"rinsight": runRinsight,
	}))
}

func runRinsight() int {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// TestCLI runs every script under testdata/script as a black-box exercise
// of the rinsight binary: each .txtar file is a small R source fixture plus
// a sequence of rinsight invocations and expected stdout/stderr.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
