package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/trusty-cli/trusty/types"
)

// Exit codes. Validation failures are distinct from I/O failures so
// scripts can tell a rejected mutation from a broken store.
const (
	ExitOK         = 0
	ExitGeneric    = 1
	ExitValidation = 2
	ExitStorage    = 3
	ExitGeneration = 4
)

// ExitCode maps an error to its process exit code by error class.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case types.IsValidation(err):
		return ExitValidation
	case types.IsStorage(err):
		return ExitStorage
	case types.IsGeneration(err):
		return ExitGeneration
	default:
		return ExitGeneric
	}
}

// PrintError prints an error to stderr. Verbose mode includes the full
// wrapped chain; otherwise just the top-level message.
func PrintError(err error) {
	if err == nil {
		return
	}
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// LogVerbose prints a diagnostic line only when --verbose is set.
func LogVerbose(format string, args ...interface{}) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
