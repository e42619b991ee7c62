package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `PathLike | str | bytes`

	tests := []struct {
		expectedType TokenType
		expectedRaw  string
	}{
		{IDENT, "PathLike"},
		{PIPE, "|"},
		{IDENT, "str"},
		{PIPE, "|"},
		{IDENT, "bytes"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Raw != tt.expectedRaw {
			t.Fatalf("tests[%d] - raw wrong. expected=%q, got=%q",
				i, tt.expectedRaw, tok.Raw)
		}
	}
}

func TestNextToken_GenericApplication(t *testing.T) {
	input := `dict[T, V] | tuple[T, ...]`

	expected := []TokenType{
		IDENT, LBRACKET, IDENT, COMMA, IDENT, RBRACKET,
		PIPE,
		IDENT, LBRACKET, IDENT, COMMA, ELLIPSIS, RBRACKET,
		EOF,
	}

	l := New(input)

	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}

	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
}

func TestNextToken_DottedName(t *testing.T) {
	l := New(`os.PathLike`)

	tok := l.NextToken()
	if tok.Type != IDENT || tok.Raw != "os.PathLike" {
		t.Fatalf("expected dotted IDENT os.PathLike, got %q %q", tok.Type, tok.Raw)
	}

	if tok := l.NextToken(); tok.Type != EOF {
		t.Fatalf("expected EOF, got %q", tok.Type)
	}
}

func TestNextToken_QuotedForwardRef(t *testing.T) {
	l := New(`'SomeClass' | "list[Fruit]"`)

	tok := l.NextToken()
	if tok.Type != QUOTED {
		t.Fatalf("expected QUOTED, got %q", tok.Type)
	}
	if tok.Value != "SomeClass" {
		t.Fatalf("expected value %q, got %q", "SomeClass", tok.Value)
	}
	if tok.Raw != `'SomeClass'` {
		t.Fatalf("expected raw %q, got %q", `'SomeClass'`, tok.Raw)
	}

	if tok := l.NextToken(); tok.Type != PIPE {
		t.Fatalf("expected PIPE, got %q", tok.Type)
	}

	tok = l.NextToken()
	if tok.Type != QUOTED || tok.Value != "list[Fruit]" {
		t.Fatalf("expected quoted list[Fruit], got %q %q", tok.Type, tok.Value)
	}
}

func TestNextToken_UnterminatedQuote(t *testing.T) {
	l := New(`'SomeClass`)

	tok := l.NextToken()
	if tok.Type != QUOTED {
		t.Fatalf("expected QUOTED token even when unterminated, got %q", tok.Type)
	}
	if tok.Value != "SomeClass" {
		t.Fatalf("expected partial value %q, got %q", "SomeClass", tok.Value)
	}

	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}
	if l.Errors[0].Kind != ErrUnterminatedQuote {
		t.Fatalf("expected ErrUnterminatedQuote, got %v", l.Errors[0].Kind)
	}
}

func TestNextToken_IncompleteEllipsis(t *testing.T) {
	l := New(`..`)

	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for '..', got %q", tok.Type)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrIncompleteEllipsis {
		t.Fatalf("expected ErrIncompleteEllipsis, got %v", l.Errors)
	}
}

func TestNextToken_IllegalRune(t *testing.T) {
	l := New(`str & bytes`)

	if tok := l.NextToken(); tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %q", tok.Type)
	}

	tok := l.NextToken()
	if tok.Type != ILLEGAL || tok.Raw != "&" {
		t.Fatalf("expected ILLEGAL '&', got %q %q", tok.Type, tok.Raw)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrIllegalRune {
		t.Fatalf("expected ErrIllegalRune, got %v", l.Errors)
	}
}

func TestTokenSpans(t *testing.T) {
	l := New(`str | bytes`)

	tok := l.NextToken() // str
	if tok.Span.Line != 1 || tok.Span.Column != 1 || tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Errorf("str span wrong: %+v", tok.Span)
	}

	tok = l.NextToken() // |
	if tok.Span.Column != 5 || tok.Span.Start != 4 || tok.Span.End != 5 {
		t.Errorf("pipe span wrong: %+v", tok.Span)
	}

	tok = l.NextToken() // bytes
	if tok.Span.Column != 7 || tok.Span.Start != 6 || tok.Span.End != 11 {
		t.Errorf("bytes span wrong: %+v", tok.Span)
	}
}

func TestLexerErrorToDiagnostic(t *testing.T) {
	err := LexerError{
		Kind:    ErrUnterminatedQuote,
		Message: "unterminated forward reference",
		Span:    Span{Line: 1, Column: 3, Start: 2, End: 6},
	}

	d := err.ToDiagnostic()

	if d.Code != "LEXER_UNTERMINATED_QUOTE" {
		t.Fatalf("expected code LEXER_UNTERMINATED_QUOTE, got %q", d.Code)
	}
	if d.Span.Line != 1 || d.Span.Column != 3 || d.Span.Start != 2 || d.Span.End != 6 {
		t.Fatalf("span not preserved: %+v", d.Span)
	}
}
