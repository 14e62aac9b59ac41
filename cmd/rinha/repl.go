package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"rinha/interpreter-go/pkg/driver"
	"rinha/interpreter-go/pkg/interpreter"
	"rinha/interpreter-go/pkg/runtime"
)

const (
	historyFile = ".rinha_history"
	promptMain  = "rinha> "
	promptCont  = "  ...> "
	replBanner  = "Rinha REPL: enter a JSON term or File per entry; :help lists commands."
)

// prompter is the subset of *liner.State the REPL loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(args []string, opts *globalOptions) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "rinha repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return exitUsage
	}
	cfg, err := opts.resolveConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUsage
	}
	logger := cfg.NewLogger(os.Stderr)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(os.Stdout, replBanner)
	session := newReplSession(cfg, logger, os.Stdout, os.Stderr)
	for {
		entry, ok := readByParseProbe(ln, session.loadOpts)
		if !ok {
			fmt.Fprintln(os.Stdout)
			break
		}
		if strings.TrimSpace(entry) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
		if quit := session.handle(entry); quit {
			break
		}
	}
	return exitOK
}

// readByParseProbe reads lines until they form a complete JSON document, a
// REPL command, or a malformed entry. It returns false at end of input.
func readByParseProbe(ln prompter, opts driver.LoadOptions) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), true
			}
			return "", false
		}
		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return strings.TrimSpace(line), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return "", true
		}
		_, perr := driver.ParseProgram([]byte(src), stdinName, opts)
		if errors.Is(perr, io.ErrUnexpectedEOF) {
			continue
		}
		return src, true
	}
}

// replSession evaluates entries against one persistent root environment, so
// a top-level let stays bound for later entries.
type replSession struct {
	interp   *interpreter.Interpreter
	env      *runtime.Environment
	stdout   *trackingWriter
	stderr   io.Writer
	loadOpts driver.LoadOptions
}

func newReplSession(cfg *driver.Config, logger *slog.Logger, stdout, stderr io.Writer) *replSession {
	out := &trackingWriter{w: stdout}
	return &replSession{
		interp: interpreter.New(interpreter.Options{
			Stdout:       out,
			PrintNewline: cfg.PrintNewline,
			Logger:       logger,
		}),
		env:      runtime.NewEnvironment(nil),
		stdout:   out,
		stderr:   stderr,
		loadOpts: driver.LoadOptions{Format: driver.FormatJSON, MaxDepth: cfg.MaxDepth, Logger: logger},
	}
}

// handle runs one entry and reports whether the session should end.
func (s *replSession) handle(entry string) bool {
	trimmed := strings.TrimSpace(entry)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}
	file, err := driver.ParseProgram([]byte(entry), stdinName, s.loadOpts)
	if err != nil {
		fmt.Fprintln(s.stderr, err)
		return false
	}
	s.stdout.dirty = false
	val, err := s.interp.Evaluate(file.Expression, s.env)
	s.stdout.endLine()
	if err != nil {
		fmt.Fprintln(s.stderr, interpreter.DescribeRuntimeError(err))
		return false
	}
	fmt.Fprintln(s.stdout.w, runtime.FormatValue(val))
	return false
}

func (s *replSession) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		keys := s.env.Keys()
		if len(keys) == 0 {
			fmt.Fprintln(s.stdout.w, "(no bindings)")
			return false
		}
		for _, name := range keys {
			val, _ := s.env.Get(name)
			fmt.Fprintf(s.stdout.w, "%s = %s\n", name, runtime.FormatValue(val))
		}
	case ":help":
		fmt.Fprintln(s.stdout.w, "Commands:")
		fmt.Fprintln(s.stdout.w, "  :env   list session bindings")
		fmt.Fprintln(s.stdout.w, "  :quit  leave the REPL")
	default:
		fmt.Fprintf(s.stderr, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return false
}

// trackingWriter remembers whether print output left the cursor mid-line.
type trackingWriter struct {
	w     io.Writer
	dirty bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.dirty = p[len(p)-1] != '\n'
	}
	return t.w.Write(p)
}

func (t *trackingWriter) endLine() {
	if t.dirty {
		fmt.Fprintln(t.w)
		t.dirty = false
	}
}
