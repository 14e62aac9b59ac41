package interpreter

import (
	"errors"
	"strings"

	"rinha/interpreter-go/pkg/driver"
)

// BuildRuntimeDiagnostic converts an evaluation error into a diagnostic.
// Errors that are not *RuntimeError become an uncoded diagnostic carrying
// only the message.
func BuildRuntimeDiagnostic(err error) driver.Diagnostic {
	if err == nil {
		return driver.Diagnostic{}
	}
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		return driver.Diagnostic{
			Severity: driver.SeverityError,
			Message:  strings.TrimPrefix(err.Error(), "interpreter: "),
		}
	}

	labels := rerr.Labels()
	diag := driver.Diagnostic{
		Severity: driver.SeverityError,
		Code:     string(rerr.Kind),
		Message:  rerr.Message,
		Path:     runtimeDiagnosticPath(rerr, labels),
		Location: labels[0].Span,
		Labels:   make([]driver.DiagnosticLabel, 0, len(labels)),
	}
	for idx, label := range labels {
		diag.Labels = append(diag.Labels, driver.DiagnosticLabel{
			Span:    label.Span,
			Message: label.Message,
			Primary: idx == 0,
		})
	}
	for _, site := range rerr.CallStack {
		if site == diag.Location {
			continue
		}
		diag.Notes = append(diag.Notes, driver.DiagnosticNote{Message: "called from here", Span: site})
	}
	return diag
}

func runtimeDiagnosticPath(rerr *RuntimeError, labels []Label) string {
	if rerr.Span.Filename != "" {
		return rerr.Span.Filename
	}
	for _, label := range labels {
		if label.Span.Filename != "" {
			return label.Span.Filename
		}
	}
	return ""
}

// DescribeRuntimeError formats err for contexts without source text.
func DescribeRuntimeError(err error) string {
	return driver.DescribeDiagnostic(BuildRuntimeDiagnostic(err))
}
