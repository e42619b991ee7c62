package resolve

import (
	"fmt"

	"github.com/typefold/typefold/internal/diag"
	"github.com/typefold/typefold/internal/lexer"
)

// NameError reports that a deferred reference names an identifier absent
// from both supplied scopes. It is never retried or suppressed.
type NameError struct {
	Name   string
	Span   lexer.Span
	Source string // the deferred text being evaluated
}

func (e *NameError) Error() string {
	return fmt.Sprintf("unknown name %q in type expression %q", e.Name, e.Source)
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *NameError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageResolve,
		Severity: diag.SeverityError,
		Code:     diag.CodeResolveUnknownName,
		Message:  fmt.Sprintf("unknown name '%s'", e.Name),
		Span: diag.Span{
			Line:   e.Span.Line,
			Column: e.Span.Column,
			Start:  e.Span.Start,
			End:    e.Span.End,
		},
		Source: e.Source,
	}
}

// CycleError reports a self-referential alias expansion: the same alias was
// re-entered with the same effective bindings, so the expansion can never
// terminate.
type CycleError struct {
	Alias       string
	Fingerprint string
}

func (e *CycleError) Error() string {
	if e.Fingerprint == "" {
		return fmt.Sprintf("alias %q refers to itself", e.Alias)
	}
	return fmt.Sprintf("alias %q refers to itself with bindings [%s]", e.Alias, e.Fingerprint)
}

// ToDiagnostic converts the error into a shared diagnostic structure.
func (e *CycleError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageResolve,
		Severity: diag.SeverityError,
		Code:     diag.CodeResolveAliasCycle,
		Message:  e.Error(),
	}
}
