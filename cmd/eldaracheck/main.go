// Package main provides the entry point for the eldaracheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/worldofeldara/eldaracheck/cmd/eldaracheck/cmd"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// A failed check has already printed its report.
		if !errors.Is(err, cmd.ErrCheckFailed) {
			_, _ = fmt.Fprint(os.Stderr, cerrors.FormatForCLI(err))
		}
		os.Exit(1)
	}
}
