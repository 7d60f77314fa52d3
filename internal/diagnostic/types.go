package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Diagnostic codes recorded by a generation run.
const (
	// CodeUnsupportedType marks an entry whose wrapper became a stub because
	// a type had no marshaling directive.
	CodeUnsupportedType = "UNSUPPORTED_TYPE"
	// CodeSkippedInfo marks a descriptor kind the generator does not wrap.
	CodeSkippedInfo = "SKIPPED_INFO"
	// CodeParentOrder marks class parents that could not be ordered first.
	CodeParentOrder = "PARENT_ORDER"
)

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Entry names the callable symbol or composite type this relates to (if any).
	Entry string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// Level maps the severity onto a slog level.
func (s DiagnosticSeverity) Level() slog.Level {
	switch s {
	case DiagnosticError:
		return slog.LevelError
	case DiagnosticWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, entry string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Entry:    entry,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, entry string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Entry:    entry,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, entry string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Entry:    entry,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Count returns the total number of diagnostics of every severity.
func (d *Diagnostics) Count() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log emits every diagnostic through l, errors first.
func (d *Diagnostics) Log(ctx context.Context, l *slog.Logger) {
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			attrs := []any{"code", diag.Code}
			if diag.Entry != "" {
				attrs = append(attrs, "entry", diag.Entry)
			}

			l.Log(ctx, diag.Severity.Level(), diag.Message, attrs...)
		}
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Entry != "" {
		return "[" + d.Entry + "]: " + msg
	}

	return msg
}
