package lexer

import (
	"unicode"

	"github.com/typefold/typefold/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrUnterminatedQuote
	ErrIncompleteEllipsis
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrUnterminatedQuote:
		return diag.CodeLexerUnterminatedQuote
	case ErrIncompleteEllipsis:
		return diag.CodeLexerIncompleteEllipsis
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Line:   e.Span.Line,
			Column: e.Span.Column,
			Start:  e.Span.Start,
			End:    e.Span.End,
		},
	}
}

// Lexer tokenizes the restricted type-expression grammar: names, '|',
// '[' ']' ',', parentheses, '...' and quoted forward references.
type Lexer struct {
	input  []rune
	pos    int  // index of the current rune
	ch     rune // current rune (0 = EOF)
	line   int  // current line number (1-based)
	column int  // current column number (1-based)

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		ch:     0,
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read() // move to first character
	return l
}

// read advances the lexer to the next character. Line/column always reflect
// the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1

	if l.pos >= len(l.input) {
		if prevPos >= 0 && prevPos < len(l.input) && l.input[prevPos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos = len(l.input)
		l.ch = 0
		return
	}

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.ch = l.input[l.pos]
}

// peek returns the rune after the current one without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// spanFrom builds a span covering [start, l.pos) with the recorded line and
// column of the start position.
func (l *Lexer) spanFrom(start, line, column int) Span {
	return Span{
		Line:   line,
		Column: column,
		Start:  start,
		End:    l.pos,
	}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start, line, column := l.pos, l.line, l.column

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Span: Span{Line: line, Column: column, Start: start, End: start}}
	case l.ch == '|':
		l.read()
		return l.simpleToken(PIPE, "|", start, line, column)
	case l.ch == ',':
		l.read()
		return l.simpleToken(COMMA, ",", start, line, column)
	case l.ch == '[':
		l.read()
		return l.simpleToken(LBRACKET, "[", start, line, column)
	case l.ch == ']':
		l.read()
		return l.simpleToken(RBRACKET, "]", start, line, column)
	case l.ch == '(':
		l.read()
		return l.simpleToken(LPAREN, "(", start, line, column)
	case l.ch == ')':
		l.read()
		return l.simpleToken(RPAREN, ")", start, line, column)
	case l.ch == '.':
		return l.readEllipsis(start, line, column)
	case l.ch == '\'' || l.ch == '"':
		return l.readQuoted(start, line, column)
	case isIdentStart(l.ch):
		return l.readIdentifier(start, line, column)
	default:
		ch := l.ch
		l.read()
		tok := l.simpleToken(ILLEGAL, string(ch), start, line, column)
		l.addError(ErrIllegalRune, "illegal character "+string(ch)+" in type expression", tok.Span)
		return tok
	}
}

func (l *Lexer) simpleToken(tt TokenType, raw string, start, line, column int) Token {
	return Token{
		Type:  tt,
		Raw:   raw,
		Value: raw,
		Span:  l.spanFrom(start, line, column),
	}
}

// readEllipsis consumes '...'. A lone '.' or '..' is an error: identifiers
// may contain dots but never start with one.
func (l *Lexer) readEllipsis(start, line, column int) Token {
	dots := 0
	for l.ch == '.' && dots < 3 {
		dots++
		l.read()
	}

	raw := string(l.input[start:l.pos])
	if dots < 3 {
		tok := l.simpleToken(ILLEGAL, raw, start, line, column)
		l.addError(ErrIncompleteEllipsis, "expected '...', got '"+raw+"'", tok.Span)
		return tok
	}

	return l.simpleToken(ELLIPSIS, raw, start, line, column)
}

// readQuoted consumes a quoted forward reference. The Value is the inner
// text without the quotes.
func (l *Lexer) readQuoted(start, line, column int) Token {
	quote := l.ch
	l.read()

	valueStart := l.pos
	for l.ch != quote && l.ch != 0 {
		l.read()
	}

	value := string(l.input[valueStart:l.pos])

	if l.ch == 0 {
		tok := Token{
			Type:  QUOTED,
			Raw:   string(l.input[start:l.pos]),
			Value: value,
			Span:  l.spanFrom(start, line, column),
		}
		l.addError(ErrUnterminatedQuote, "unterminated forward reference", tok.Span)
		return tok
	}

	l.read() // consume closing quote
	return Token{
		Type:  QUOTED,
		Raw:   string(l.input[start:l.pos]),
		Value: value,
		Span:  l.spanFrom(start, line, column),
	}
}

// readIdentifier consumes a possibly dotted name such as os.PathLike.
func (l *Lexer) readIdentifier(start, line, column int) Token {
	for isIdentPart(l.ch) {
		l.read()
	}

	raw := string(l.input[start:l.pos])
	return l.simpleToken(IDENT, raw, start, line, column)
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || ch == '.' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
