package main

import (
	"fmt"
	"os"

	"github.com/xolan/jot/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is replaced in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run loads the configuration and executes the CLI, returning the exit code.
func run() int {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.LoadConfig(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(os.Stderr, "Hint: Fix or remove the config file ('jot config' shows its location once it loads)")
		return 1
	}

	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
