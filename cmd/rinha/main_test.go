package main

import (
	"path/filepath"
	"strings"
	"testing"
)

const helloProgram = `{
  "name": "hello.rinha",
  "expression": {
    "kind": "Print",
    "value": {"kind": "Str", "value": "hello", "location": {"start": 6, "end": 13, "filename": "hello.rinha"}},
    "location": {"start": 0, "end": 14, "filename": "hello.rinha"}
  },
  "location": {"start": 0, "end": 14, "filename": "hello.rinha"}
}`

// print("before"); print(1 / 0)
const divProgram = `{
  "name": "div.rinha",
  "expression": {
    "kind": "Let",
    "name": {"text": "_", "location": {"start": 4, "end": 5, "filename": "div.rinha"}},
    "value": {
      "kind": "Print",
      "value": {"kind": "Str", "value": "before", "location": {"start": 14, "end": 22, "filename": "div.rinha"}},
      "location": {"start": 8, "end": 23, "filename": "div.rinha"}
    },
    "next": {
      "kind": "Print",
      "value": {
        "kind": "Binary",
        "lhs": {"kind": "Int", "value": 1, "location": {"start": 31, "end": 32, "filename": "div.rinha"}},
        "op": "Div",
        "rhs": {"kind": "Int", "value": 0, "location": {"start": 35, "end": 36, "filename": "div.rinha"}},
        "location": {"start": 31, "end": 36, "filename": "div.rinha"}
      },
      "location": {"start": 25, "end": 37, "filename": "div.rinha"}
    },
    "location": {"start": 0, "end": 37, "filename": "div.rinha"}
  },
  "location": {"start": 0, "end": 37, "filename": "div.rinha"}
}`

const divSource = "let _ = print(\"before\");\nprint(1 / 0)\n"

func TestRunFilePrintsOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.json")
	writeFile(t, path, helloProgram)

	code, stdout, stderr := captureCLI(t, []string{path})
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d (stderr=%q)", code, stderr)
	}
	if stdout != "hello" {
		t.Fatalf("expected stdout hello, got %q", stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"--newline", "run", path})
	if code != exitOK || stdout != "hello\n" {
		t.Fatalf("expected newline-terminated output, got %d %q", code, stdout)
	}
}

func TestRunReadsStdin(t *testing.T) {
	chdir(t, t.TempDir())
	for _, args := range [][]string{{"-"}, {"run", "-"}, {}} {
		code, stdout, stderr := captureCLIWithStdin(t, args, helloProgram)
		if code != exitOK || stdout != "hello" {
			t.Fatalf("%v: expected hello, got %d %q (stderr=%q)", args, code, stdout, stderr)
		}
	}
}

func TestRunUsesDiscoveredConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rinha.yml"), "print_newline: true\n")
	path := filepath.Join(dir, "nested", "hello.json")
	writeFile(t, path, helloProgram)

	code, stdout, stderr := captureCLI(t, []string{path})
	if code != exitOK || stdout != "hello\n" {
		t.Fatalf("expected config to add a newline, got %d %q (stderr=%q)", code, stdout, stderr)
	}

	other := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, other, "print_newline: false\n")
	code, stdout, _ = captureCLI(t, []string{"--config", other, path})
	if code != exitOK || stdout != "hello" {
		t.Fatalf("expected --config to win, got %d %q", code, stdout)
	}
}

func TestRuntimeErrorRendersDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "div.json")
	writeFile(t, path, divProgram)
	writeFile(t, filepath.Join(dir, "div.rinha"), divSource)

	code, stdout, stderr := captureCLI(t, []string{"--color", "never", path})
	if code != exitRuntime {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout != "before" {
		t.Fatalf("expected output before the failure to be kept, got %q", stdout)
	}
	for _, want := range []string{
		"error[division-by-zero]: division by zero",
		" --> div.rinha:2:7",
		"2 | print(1 / 0)",
		"^^^^^ division by zero",
		"- divisor is zero",
	} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("expected %q in stderr:\n%s", want, stderr)
		}
	}
}

func TestRuntimeErrorWithoutSourceFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "div.json")
	writeFile(t, path, divProgram)

	code, _, stderr := captureCLI(t, []string{path})
	if code != exitRuntime {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if strings.TrimSpace(stderr) != "error[division-by-zero]: division by zero" {
		t.Fatalf("expected bare description, got %q", stderr)
	}
}

func TestMalformedInputExitsWithUsageCode(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"kind": "Nope"}`)
	code, _, stderr := captureCLI(t, []string{bad})
	if code != exitUsage || !strings.Contains(stderr, `unknown term kind "Nope"`) {
		t.Fatalf("expected decode failure, got %d %q", code, stderr)
	}

	code, _, stderr = captureCLI(t, []string{filepath.Join(dir, "missing.json")})
	if code != exitUsage || !strings.Contains(stderr, "loader: read") {
		t.Fatalf("expected read failure, got %d %q", code, stderr)
	}

	deep := filepath.Join(dir, "deep.json")
	writeFile(t, deep, `{"kind": "Print", "value": {"kind": "Print", "value": {"kind": "Int", "value": 1}}}`)
	code, _, stderr = captureCLI(t, []string{"--max-depth", "2", deep})
	if code != exitUsage || !strings.Contains(stderr, "nesting deeper than 2") {
		t.Fatalf("expected depth failure, got %d %q", code, stderr)
	}
}

func TestCheckValidatesWithoutRunning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "div.json")
	writeFile(t, path, divProgram)

	code, stdout, stderr := captureCLI(t, []string{"check", path})
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d (stderr=%q)", code, stderr)
	}
	if stdout != path+": ok\n" {
		t.Fatalf("unexpected check output %q", stdout)
	}
}

func TestUsageAndVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != exitOK || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("unexpected version output %d %q", code, stdout)
	}
	code, _, stderr := captureCLI(t, []string{"--help"})
	if code != exitOK || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage, got %d %q", code, stderr)
	}
	code, _, stderr = captureCLI(t, []string{"--color", "purple", "x.json"})
	if code != exitUsage || !strings.Contains(stderr, "invalid --color") {
		t.Fatalf("expected invalid flag error, got %d %q", code, stderr)
	}
	code, _, stderr = captureCLI(t, []string{"run"})
	if code != exitUsage || !strings.Contains(stderr, "requires a program file") {
		t.Fatalf("expected missing file error, got %d %q", code, stderr)
	}
	code, _, _ = captureCLI(t, []string{"run", "a.json", "b.json"})
	if code != exitUsage {
		t.Fatalf("expected extra arguments to be rejected, got %d", code)
	}
}
