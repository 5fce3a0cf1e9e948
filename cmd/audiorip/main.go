package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// exitInterrupted matches the shell convention for SIGINT.
const exitInterrupted = 130

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}
