package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  rinha [flags] <file.json|file.yml>")
	fmt.Fprintln(os.Stderr, "  rinha [flags] run <file.json|file.yml|->")
	fmt.Fprintln(os.Stderr, "  rinha [flags] check <file.json|file.yml|->")
	fmt.Fprintln(os.Stderr, "  rinha [flags] repl")
	fmt.Fprintln(os.Stderr, "  rinha version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "With no file and a non-terminal stdin, the program tree is read from stdin.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --config <path>      use this rinha.yml instead of searching for one")
	fmt.Fprintln(os.Stderr, "  --newline            append a newline after every print")
	fmt.Fprintln(os.Stderr, "  --color <mode>       diagnostic colors: auto, always or never")
	fmt.Fprintln(os.Stderr, "  --log-level <level>  debug, info, warn or error (logs go to stderr)")
	fmt.Fprintln(os.Stderr, "  --max-depth <n>      reject program trees nested deeper than n")
}
