package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"rinha/interpreter-go/pkg/driver"
	"rinha/interpreter-go/pkg/runtime"
)

const fixturesRoot = "testdata/fixtures"

type fixtureManifest struct {
	Description string        `yaml:"description"`
	Entry       string        `yaml:"entry"`
	Newline     bool          `yaml:"print_newline"`
	Expect      fixtureExpect `yaml:"expect"`
}

type fixtureExpect struct {
	Stdout *string       `yaml:"stdout"`
	Result *string       `yaml:"result"`
	Error  *fixtureError `yaml:"error"`
}

type fixtureError struct {
	Code    string   `yaml:"code"`
	Message string   `yaml:"message"`
	Render  []string `yaml:"render"`
}

func readManifest(t *testing.T, dir string) fixtureManifest {
	t.Helper()
	file, err := os.Open(filepath.Join(dir, "manifest.yml"))
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var manifest fixtureManifest
	if err := decoder.Decode(&manifest); err != nil {
		t.Fatalf("decode manifest %s: %v", dir, err)
	}
	if manifest.Entry == "" {
		manifest.Entry = "program.json"
	}
	return manifest
}

func fixtureDirs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(fixturesRoot)
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	if len(dirs) == 0 {
		t.Fatalf("no fixtures found under %s", fixturesRoot)
	}
	return dirs
}

func TestFixtures(t *testing.T) {
	for _, name := range fixtureDirs(t) {
		t.Run(name, func(t *testing.T) {
			runFixture(t, filepath.Join(fixturesRoot, name))
		})
	}
}

func runFixture(t *testing.T, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	prog, err := driver.LoadFile(filepath.Join(dir, manifest.Entry), driver.LoadOptions{})
	if err != nil {
		t.Fatalf("load program: %v", err)
	}

	var stdout bytes.Buffer
	interp := New(Options{Stdout: &stdout, PrintNewline: manifest.Newline})
	result, err := interp.EvaluateFile(prog.File)

	if want := manifest.Expect.Stdout; want != nil && stdout.String() != *want {
		t.Fatalf("stdout mismatch: expected %q, got %q", *want, stdout.String())
	}

	expected := manifest.Expect.Error
	if expected == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := manifest.Expect.Result; want != nil {
			if got := runtime.FormatValue(result); got != *want {
				t.Fatalf("result mismatch: expected %q, got %q", *want, got)
			}
		}
		return
	}

	if err == nil {
		t.Fatalf("expected error %s, got result %s", expected.Code, runtime.FormatValue(result))
	}
	diag := BuildRuntimeDiagnostic(err)
	if diag.Code != expected.Code {
		t.Fatalf("expected error code %q, got %q (%s)", expected.Code, diag.Code, diag.Message)
	}
	if expected.Message != "" && diag.Message != expected.Message {
		t.Fatalf("expected error message %q, got %q", expected.Message, diag.Message)
	}
	if len(expected.Render) == 0 {
		return
	}
	path, source := prog.Source()
	if source == "" {
		t.Fatalf("expected source text for %s", path)
	}
	var rendered bytes.Buffer
	if err := driver.RenderDiagnostic(&rendered, diag, source, driver.RenderOptions{ContextLines: 1}); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(rendered.String(), "\n")
	for _, want := range expected.Render {
		if !containsLine(lines, want) {
			t.Fatalf("expected rendered line %q in:\n%s", want, rendered.String())
		}
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
