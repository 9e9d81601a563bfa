package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"config-splitter/internal/common"
)

// Diagnostic codes shared by the planner and the executors.
const (
	CodeParseFailed       = "parse_failed"
	CodeEmptyInput        = "empty_input"
	CodeDuplicateSection  = "duplicate_section"
	CodeAddedSection      = "added_missing_section"
	CodeAddedSubsection   = "added_missing_subsection"
	CodeUnknownSection    = "unknown_section"
	CodeFoldedSubsection  = "folded_subsection"
	CodeOrphanSubsection  = "orphan_subsection"
	CodeUnknownSelection  = "unknown_selection"
	CodeMissingSection    = "missing_section"
	CodeMissingSubsection = "missing_subsection"
	CodeSchemaViolation   = "schema_violation"
	CodeBackupFailed      = "backup_failed"
)

// Diagnostics holds all diagnostic information from a split or merge run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Section is the section or "parent.child" path this relates to (if any).
	Section string
	// Source names the input file this relates to (if any).
	Source string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, section, source string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Section:  section,
		Source:   source,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, section, source string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Section:  section,
		Source:   source,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, section, source string, suggestions ...string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:    SeverityInfo,
		Code:        code,
		Message:     message,
		Section:     section,
		Source:      source,
		Suggestions: suggestions,
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

// Count returns how many diagnostics with the given code were recorded.
func (d *Diagnostics) Count(code string) int {
	n := 0

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				n++
			}
		}
	}

	return n
}

// ErrorMessages returns the plain messages of all errors.
func (d *Diagnostics) ErrorMessages() []string {
	return messages(d.Errors)
}

// WarningMessages returns the plain messages of all warnings.
func (d *Diagnostics) WarningMessages() []string {
	return messages(d.Warnings)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

func messages(list []Diagnostic) []string {
	out := make([]string, 0, len(list))
	for _, diag := range list {
		out = append(out, diag.Message)
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Source != "" {
		prefix = append(prefix, "["+d.Source+"]")
	}

	if d.Section != "" {
		prefix = append(prefix, d.Section)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
