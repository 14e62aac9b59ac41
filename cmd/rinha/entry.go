package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"rinha/interpreter-go/pkg/driver"
	"rinha/interpreter-go/pkg/interpreter"
)

const stdinName = "-"

func runEntry(args []string, opts *globalOptions) int {
	return runEntryWithMode(args, opts, false)
}

func runCheck(args []string, opts *globalOptions) int {
	return runEntryWithMode(args, opts, true)
}

func runEntryWithMode(args []string, opts *globalOptions, checkOnly bool) int {
	label := "rinha run"
	if checkOnly {
		label = "rinha check"
	}
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "%s requires a program file (or - for stdin)\n", label)
		return exitUsage
	}
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitUsage
	}
	target := args[0]

	cfg, err := opts.resolveConfig(configSearchStart(target))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUsage
	}
	logger := cfg.NewLogger(os.Stderr)
	if cfg.Path != "" {
		logger.Debug("Config loaded", slog.String("path", cfg.Path))
	}

	prog, err := loadProgram(target, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUsage
	}
	if checkOnly {
		fmt.Fprintf(os.Stdout, "%s: ok\n", displayTarget(target))
		return exitOK
	}
	return executeProgram(prog, cfg, logger)
}

func configSearchStart(target string) string {
	if target == stdinName {
		return "."
	}
	return filepath.Dir(target)
}

func loadProgram(target string, cfg *driver.Config, logger *slog.Logger) (*driver.Program, error) {
	loadOpts := driver.LoadOptions{MaxDepth: cfg.MaxDepth, Logger: logger}
	if target == stdinName {
		return driver.LoadReader(os.Stdin, stdinName, loadOpts)
	}
	return driver.LoadFile(target, loadOpts)
}

func executeProgram(prog *driver.Program, cfg *driver.Config, logger *slog.Logger) int {
	out := bufio.NewWriter(os.Stdout)
	interp := interpreter.New(interpreter.Options{
		Stdout:       out,
		PrintNewline: cfg.PrintNewline,
		Logger:       logger,
	})
	_, evalErr := interp.EvaluateFile(prog.File)
	if err := out.Flush(); err != nil && evalErr == nil {
		evalErr = err
	}
	if evalErr != nil {
		reportRuntimeError(prog, evalErr, cfg)
		return exitRuntime
	}
	return exitOK
}

// reportRuntimeError renders against the program's source when it can be
// found and falls back to the bare description otherwise.
func reportRuntimeError(prog *driver.Program, err error, cfg *driver.Config) {
	diag := interpreter.BuildRuntimeDiagnostic(err)
	path, source := prog.Source()
	if diag.Path == "" {
		diag.Path = path
	}
	if renderErr := driver.RenderDiagnostic(os.Stderr, diag, source, cfg.RenderOptions(os.Stderr)); renderErr != nil {
		fmt.Fprintln(os.Stderr, driver.DescribeDiagnostic(diag))
	}
}

func displayTarget(target string) string {
	if target == stdinName {
		return "<stdin>"
	}
	return target
}
