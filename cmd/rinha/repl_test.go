package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"rinha/interpreter-go/pkg/driver"
)

type scriptedPrompter struct {
	lines   []string
	err     error
	prompts []string
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestReadByParseProbe(t *testing.T) {
	opts := driver.LoadOptions{Format: driver.FormatJSON}

	p := &scriptedPrompter{lines: []string{`{"kind": "Int",`, `"value": 1}`}}
	entry, ok := readByParseProbe(p, opts)
	if !ok || entry != "{\"kind\": \"Int\",\n\"value\": 1}" {
		t.Fatalf("expected joined entry, got %q (ok=%v)", entry, ok)
	}
	if len(p.prompts) != 2 || p.prompts[0] != promptMain || p.prompts[1] != promptCont {
		t.Fatalf("unexpected prompts %q", p.prompts)
	}

	p = &scriptedPrompter{lines: []string{"  :env  "}}
	entry, ok = readByParseProbe(p, opts)
	if !ok || entry != ":env" {
		t.Fatalf("expected command, got %q", entry)
	}

	p = &scriptedPrompter{lines: []string{"nope"}}
	entry, ok = readByParseProbe(p, opts)
	if !ok || entry != "nope" {
		t.Fatalf("expected malformed entry to be returned, got %q", entry)
	}

	p = &scriptedPrompter{lines: []string{`{"kind": "Print",`}}
	entry, ok = readByParseProbe(p, opts)
	if !ok || entry != `{"kind": "Print",` {
		t.Fatalf("expected partial entry at EOF, got %q (ok=%v)", entry, ok)
	}

	p = &scriptedPrompter{}
	if _, ok = readByParseProbe(p, opts); ok {
		t.Fatalf("expected end of input")
	}

	p = &scriptedPrompter{err: liner.ErrPromptAborted}
	entry, ok = readByParseProbe(p, opts)
	if !ok || entry != "" {
		t.Fatalf("expected aborted prompt to yield an empty entry, got %q (ok=%v)", entry, ok)
	}
}

func TestReplSessionKeepsBindings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	session := newReplSession(driver.DefaultConfig(), nil, &stdout, &stderr)

	entries := []string{
		`{"kind": "Let", "name": {"text": "x"}, "value": {"kind": "Int", "value": 2}, "next": {"kind": "Var", "text": "x"}}`,
		`{"kind": "Binary", "lhs": {"kind": "Var", "text": "x"}, "op": "Mul", "rhs": {"kind": "Int", "value": 21}}`,
		`{"kind": "Print", "value": {"kind": "Str", "value": "hi"}}`,
		":env",
	}
	for _, entry := range entries {
		if session.handle(entry) {
			t.Fatalf("session ended early on %q", entry)
		}
	}
	want := "2\n42\nhi\nhi\nx = 2\n"
	if stdout.String() != want {
		t.Fatalf("expected stdout %q, got %q", want, stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestReplSessionReportsErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	session := newReplSession(driver.DefaultConfig(), nil, &stdout, &stderr)

	session.handle(`{"kind": "Var", "text": "missing"}`)
	if !strings.Contains(stderr.String(), "unknown identifier 'missing'") {
		t.Fatalf("expected runtime error, got %q", stderr.String())
	}
	stderr.Reset()

	session.handle(`{"kind": "Float", "value": 1}`)
	if !strings.Contains(stderr.String(), `unknown term kind "Float"`) {
		t.Fatalf("expected decode error, got %q", stderr.String())
	}
	stderr.Reset()

	session.handle(":bogus")
	if !strings.Contains(stderr.String(), "unknown command :bogus") {
		t.Fatalf("expected unknown command, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}

	session.handle(":env")
	if stdout.String() != "(no bindings)\n" {
		t.Fatalf("expected empty env listing, got %q", stdout.String())
	}
	for _, cmd := range []string{":quit", ":q", ":EXIT"} {
		if !session.handle(cmd) {
			t.Fatalf("expected %s to end the session", cmd)
		}
	}
}

func TestTrackingWriterEndsDirtyLines(t *testing.T) {
	var buf bytes.Buffer
	w := &trackingWriter{w: &buf}
	w.endLine()
	if buf.Len() != 0 {
		t.Fatalf("clean writer should not add a newline")
	}
	_, _ = w.Write([]byte("abc"))
	w.endLine()
	_, _ = w.Write([]byte("def\n"))
	w.endLine()
	if buf.String() != "abc\ndef\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
