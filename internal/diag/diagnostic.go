package diag

import "fmt"

// Stage identifies which phase of resolution produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageResolve Stage = "resolve"
	StageConfig  Stage = "config"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerIllegalRune        Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerUnterminatedQuote  Code = "LEXER_UNTERMINATED_QUOTE"
	CodeLexerIncompleteEllipsis Code = "LEXER_INCOMPLETE_ELLIPSIS"

	// Parser errors
	CodeParseMalformedExpr Code = "PARSE_MALFORMED_EXPR"

	// Resolution errors
	CodeResolveUnknownName Code = "RESOLVE_UNKNOWN_NAME"
	CodeResolveAliasCycle  Code = "RESOLVE_ALIAS_CYCLE"

	// Config layer errors and warnings
	CodeConfigNoConfigType   Code = "CONFIG_NO_CONFIG_TYPE"
	CodeConfigUnknownParam   Code = "CONFIG_UNKNOWN_PARAM"
	CodeConfigInvalidSource  Code = "CONFIG_INVALID_SOURCE"
	CodeConfigNoCandidateFit Code = "CONFIG_NO_CANDIDATE_FIT"
)

// Span represents a location inside one type-expression source string.
type Span struct {
	Line   int
	Column int
	Start  int
	End    int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a resolution diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Source   string // the expression text the span points into, if known
	Notes    []string
	Help     string
}

// WithSource attaches the expression text so the formatter can render a
// snippet with an underline.
func (d Diagnostic) WithSource(src string) Diagnostic {
	d.Source = src
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
