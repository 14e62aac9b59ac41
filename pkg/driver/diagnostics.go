package driver

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"rinha/interpreter-go/pkg/ast"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticLabel attaches a message to a byte span of the source.
type DiagnosticLabel struct {
	Span    ast.Span
	Message string
	Primary bool
}

// Diagnostic is a structured, source-position-aware failure report.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Path     string
	Location ast.Span
	Labels   []DiagnosticLabel
	Notes    []DiagnosticNote
}

// DiagnosticNote is trailing context such as the call sites that led to a
// failure.
type DiagnosticNote struct {
	Message string
	Span    ast.Span
}

// DiagnosticLocation is a resolved 1-based line/column position.
type DiagnosticLocation struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// RenderOptions controls RenderDiagnostic output.
type RenderOptions struct {
	Color        bool
	ContextLines int
}

// DescribeDiagnostic formats a diagnostic without access to the source text.
func DescribeDiagnostic(diag Diagnostic) string {
	var b strings.Builder
	b.WriteString(diagnosticHeader(diag, false))
	for _, note := range diag.Notes {
		fmt.Fprintf(&b, "\nnote: %s", note.Message)
	}
	return b.String()
}

func diagnosticHeader(diag Diagnostic, color bool) string {
	severity := diag.Severity
	if severity == "" {
		severity = SeverityError
	}
	label := string(severity)
	if diag.Code != "" {
		label = fmt.Sprintf("%s[%s]", severity, diag.Code)
	}
	if color {
		label = paint(label, severityColor(severity))
	}
	return fmt.Sprintf("%s: %s", label, strings.TrimSpace(diag.Message))
}

// RenderDiagnostic writes a caret-annotated report of diag against source.
// An empty source degrades to DescribeDiagnostic.
func RenderDiagnostic(w io.Writer, diag Diagnostic, source string, opts RenderOptions) error {
	if source == "" {
		_, err := fmt.Fprintln(w, DescribeDiagnostic(diag))
		return err
	}
	index := NewSourceIndex(source)

	var b strings.Builder
	b.WriteString(diagnosticHeader(diag, opts.Color))
	b.WriteByte('\n')

	loc := index.Locate(diag.Path, diag.Location)
	gutter := len(fmt.Sprint(index.LineCount())) + 1
	pad := strings.Repeat(" ", gutter)
	fmt.Fprintf(&b, "%s--> %s\n", strings.Repeat(" ", gutter-1), FormatDiagnosticLocation(loc))
	fmt.Fprintf(&b, "%s|\n", pad)

	labelsByLine := make(map[int][]DiagnosticLabel)
	for _, label := range diag.Labels {
		line, _ := index.Position(label.Span.Start)
		labelsByLine[line] = append(labelsByLine[line], label)
	}
	for _, line := range index.linesToShow(labelsByLine, opts.ContextLines) {
		if line < 0 {
			fmt.Fprintf(&b, "%s...\n", strings.Repeat(" ", gutter-1))
			continue
		}
		text := index.LineText(line)
		fmt.Fprintf(&b, "%*d | %s\n", gutter-1, line, text)
		labels := labelsByLine[line]
		sort.SliceStable(labels, func(i, j int) bool {
			if labels[i].Primary != labels[j].Primary {
				return labels[i].Primary
			}
			return labels[i].Span.Start < labels[j].Span.Start
		})
		for _, label := range labels {
			fmt.Fprintf(&b, "%s| %s\n", pad, index.underline(label, opts.Color))
		}
	}
	for _, note := range diag.Notes {
		noteLoc := FormatDiagnosticLocation(index.Locate(diag.Path, note.Span))
		fmt.Fprintf(&b, "%s= note: %s (%s)\n", strings.Repeat(" ", gutter-1), note.Message, noteLoc)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatDiagnosticLocation renders path:line:col, degrading gracefully when
// parts are unknown.
func FormatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}

// SourceIndex maps byte offsets of a source text to lines and columns.
type SourceIndex struct {
	source     string
	lineStarts []int
}

func NewSourceIndex(source string) *SourceIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &SourceIndex{source: source, lineStarts: starts}
}

// LineCount returns the number of lines in the source.
func (s *SourceIndex) LineCount() int {
	return len(s.lineStarts)
}

func (s *SourceIndex) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(s.source) {
		return len(s.source)
	}
	return offset
}

// Position returns the 1-based line and column (in runes) of offset.
func (s *SourceIndex) Position(offset int) (int, int) {
	offset = s.clamp(offset)
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	start := s.lineStarts[line-1]
	return line, utf8.RuneCountInString(s.source[start:offset]) + 1
}

// Locate resolves a span into a DiagnosticLocation.
func (s *SourceIndex) Locate(path string, span ast.Span) DiagnosticLocation {
	line, col := s.Position(span.Start)
	endLine, endCol := s.Position(span.End)
	return DiagnosticLocation{Path: path, Line: line, Column: col, EndLine: endLine, EndColumn: endCol}
}

// LineText returns the text of the 1-based line without its terminator.
func (s *SourceIndex) LineText(line int) string {
	if line < 1 || line > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[line-1]
	end := len(s.source)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	}
	return strings.TrimSuffix(s.source[start:end], "\r")
}

// linesToShow returns the sorted line numbers to print; -1 marks an elided gap.
func (s *SourceIndex) linesToShow(labelsByLine map[int][]DiagnosticLabel, context int) []int {
	if context < 0 {
		context = 0
	}
	wanted := make(map[int]struct{})
	for line := range labelsByLine {
		for l := line - context; l <= line+context; l++ {
			if l >= 1 && l <= s.LineCount() {
				wanted[l] = struct{}{}
			}
		}
	}
	lines := make([]int, 0, len(wanted))
	for line := range wanted {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	out := make([]int, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line > lines[i-1]+1 {
			out = append(out, -1)
		}
		out = append(out, line)
	}
	return out
}

func (s *SourceIndex) underline(label DiagnosticLabel, color bool) string {
	start := s.clamp(label.Span.Start)
	end := s.clamp(label.Span.End)
	line, _ := s.Position(start)
	lineStart := s.lineStarts[line-1]
	lineEnd := len(s.source)
	if line < len(s.lineStarts) {
		lineEnd = s.lineStarts[line] - 1
	}
	if end > lineEnd {
		end = lineEnd
	}

	var pad strings.Builder
	for _, r := range s.source[lineStart:start] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	width := 1
	if end > start {
		width = utf8.RuneCountInString(s.source[start:end])
	}
	mark := "-"
	tone := colorBlue
	if label.Primary {
		mark = "^"
		tone = colorRed
	}
	marker := strings.Repeat(mark, width)
	if label.Message != "" {
		marker += " " + label.Message
	}
	if color {
		marker = paint(marker, tone)
	}
	return pad.String() + marker
}

const (
	colorRed    = "\x1b[1;31m"
	colorYellow = "\x1b[1;33m"
	colorBlue   = "\x1b[1;34m"
	colorReset  = "\x1b[0m"
)

func severityColor(severity DiagnosticSeverity) string {
	if severity == SeverityWarning {
		return colorYellow
	}
	return colorRed
}

func paint(text, tone string) string {
	return tone + text + colorReset
}
