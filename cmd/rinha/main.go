package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

const cliToolVersion = "rinha 0.1.0-dev"

// Exit codes.
const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			printUsage()
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		return exitUsage
	}

	if len(remaining) == 0 {
		if stdinIsTerminal() {
			printUsage()
			return exitUsage
		}
		return runEntry([]string{"-"}, opts)
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(remaining[1:], opts)
	case "check":
		return runCheck(remaining[1:], opts)
	case "repl":
		return runRepl(remaining[1:], opts)
	default:
		return runEntry(remaining, opts)
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
