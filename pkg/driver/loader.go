package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rinha/interpreter-go/pkg/ast"
)

// Format names the serialization of a program tree.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyInput is returned when the input holds no document.
var ErrEmptyInput = errors.New("empty input")

// LoadOptions tunes decoding.
type LoadOptions struct {
	Format   Format
	MaxDepth int
	Logger   *slog.Logger
}

// Program is a decoded File plus what is needed to re-read its source text.
type Program struct {
	File    *ast.File
	Path    string
	BaseDir string
}

// LoadFile reads and decodes the program tree stored at path.
func LoadFile(path string, opts LoadOptions) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	if opts.Format == FormatAuto {
		opts.Format = FormatForPath(path)
	}
	file, err := ParseProgram(data, path, opts)
	if err != nil {
		return nil, err
	}
	return &Program{File: file, Path: path, BaseDir: filepath.Dir(path)}, nil
}

// LoadReader decodes a program tree from r. name labels errors and becomes
// the File name when the input is a bare term.
func LoadReader(r io.Reader, name string, opts LoadOptions) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	file, err := ParseProgram(data, name, opts)
	if err != nil {
		return nil, err
	}
	base, err := os.Getwd()
	if err != nil {
		base = "."
	}
	return &Program{File: file, Path: name, BaseDir: base}, nil
}

// FormatForPath picks YAML for .yml/.yaml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseProgram decodes data into a File. Truncated JSON yields an error
// wrapping io.ErrUnexpectedEOF.
func ParseProgram(data []byte, name string, opts LoadOptions) (*ast.File, error) {
	format := opts.Format
	if format == FormatAuto {
		format = sniffFormat(data)
	}
	raw, err := decodeDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", displayName(name), err)
	}
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	dec := &treeDecoder{path: name, filename: "", maxDepth: maxDepth}
	if name != "-" {
		dec.filename = sourceNameFor(name)
	}
	file, err := dec.decodeFile(raw)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Debug("Program decoded",
			slog.String("path", displayName(name)),
			slog.String("format", string(format)),
			slog.Int("nodes", dec.nodes))
	}
	return file, nil
}

func decodeDocument(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, ErrEmptyInput
		}
		return raw, nil
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
		var extra any
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unexpected data after the program tree")
		}
		return raw, nil
	}
}

func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '[' {
		return FormatYAML
	}
	return FormatJSON
}

// sourceNameFor guesses the source file name from the tree file name:
// fib.json and fib.rinha.json both map to fib.rinha.
func sourceNameFor(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	switch strings.ToLower(ext) {
	case ".json", ".yml", ".yaml":
		base = strings.TrimSuffix(base, ext)
	}
	if filepath.Ext(base) != ".rinha" {
		base += ".rinha"
	}
	return base
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

// Source re-reads the program's source text using the File name, trying the
// tree's directory first and then the working directory. The returned path
// is the one diagnostics should show; text is empty when nothing was found.
func (p *Program) Source() (string, string) {
	if p == nil || p.File == nil {
		return "", ""
	}
	name := p.File.Name
	if name == "" {
		return "", ""
	}
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		candidates = nil
		if p.BaseDir != "" {
			candidates = append(candidates, filepath.Join(p.BaseDir, name))
		}
		candidates = append(candidates, name)
	}
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return name, string(data)
		}
	}
	return name, ""
}
