package parser

import (
	"fmt"
	"strings"

	"github.com/typefold/typefold/internal/ast"
	"github.com/typefold/typefold/internal/diag"
	"github.com/typefold/typefold/internal/lexer"
)

// ParseError captures a parsing error with location context.
type ParseError struct {
	Message string
	Span    lexer.Span
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     diag.CodeParseMalformedExpr,
		Message:  e.Message,
		Span: diag.Span{
			Line:   e.Span.Line,
			Column: e.Span.Column,
			Start:  e.Span.Start,
			End:    e.Span.End,
		},
	}
}

// MalformedError reports that a textual reference does not conform to the
// type-expression grammar. It aggregates every error found in the text.
type MalformedError struct {
	Source string
	Errors []ParseError
}

func (e *MalformedError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("malformed type expression %q", e.Source)
	}
	var msgs []string
	for _, pe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s at %d:%d", pe.Message, pe.Span.Line, pe.Span.Column))
	}
	return fmt.Sprintf("malformed type expression %q: %s", e.Source, strings.Join(msgs, "; "))
}

// Parser implements a recursive descent parser for textual type references.
// curTok always reflects the token currently under examination; peekTok
// mirrors the next token pulled from the lexer. The pair forms the parser's
// sole lookahead window and is only mutated via nextToken.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	source string
	errors []ParseError
}

// New returns a parser initialised with the provided source input.
func New(input string) *Parser {
	p := &Parser{
		lx:     lexer.New(input),
		source: input,
	}

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Parse parses the input as a single type expression and aggregates any
// lexer or parser errors into a *MalformedError.
func Parse(input string) (ast.Node, error) {
	p := New(input)

	node := p.parseExpr()

	if node != nil && p.curTok.Type != lexer.EOF {
		p.reportError("unexpected '"+p.curTok.Raw+"' after type expression", p.curTok.Span)
	}

	for _, lexErr := range p.lx.Errors {
		p.errors = append(p.errors, ParseError{Message: lexErr.Message, Span: lexErr.Span})
	}

	if len(p.errors) > 0 {
		return nil, &MalformedError{Source: input, Errors: p.errors}
	}
	return node, nil
}

// nextToken advances the parser's token window.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

func (p *Parser) reportError(msg string, span lexer.Span) {
	p.errors = append(p.errors, ParseError{
		Message: msg,
		Span:    span,
	})
}

// parseExpr parses term { '|' term }.
func (p *Parser) parseExpr() ast.Node {
	start := p.curTok.Span

	first := p.parseTerm()
	if first == nil {
		return nil
	}

	if p.curTok.Type != lexer.PIPE {
		return first
	}

	members := []ast.Node{first}
	for p.curTok.Type == lexer.PIPE {
		p.nextToken() // move past '|'

		member := p.parseTerm()
		if member == nil {
			return nil
		}
		members = append(members, member)
	}

	return ast.NewUnion(members, mergeSpan(start, members[len(members)-1].Span()))
}

// parseTerm parses a name, an application, a parenthesized expression, an
// ellipsis, or a nested quoted reference. On return curTok is the first
// token after the term.
func (p *Parser) parseTerm() ast.Node {
	switch p.curTok.Type {
	case lexer.IDENT:
		return p.parseNameOrApp()
	case lexer.QUOTED:
		node := ast.NewForward(p.curTok.Value, p.curTok.Span)
		p.nextToken()
		return node
	case lexer.ELLIPSIS:
		node := ast.NewEllipsis(p.curTok.Span)
		p.nextToken()
		return node
	case lexer.LPAREN:
		return p.parseGrouped()
	default:
		p.reportError("expected type expression", p.curTok.Span)
		return nil
	}
}

func (p *Parser) parseGrouped() ast.Node {
	p.nextToken() // move past '('

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	if p.curTok.Type != lexer.RPAREN {
		p.reportError("expected ')'", p.curTok.Span)
		return nil
	}
	p.nextToken()

	return inner
}

func (p *Parser) parseNameOrApp() ast.Node {
	nameTok := p.curTok
	name := ast.NewName(nameTok.Raw, nameTok.Span)
	p.nextToken()

	if p.curTok.Type != lexer.LBRACKET {
		return name
	}

	p.nextToken() // move past '['

	if p.curTok.Type == lexer.RBRACKET {
		p.reportError("expected type expression in argument list", p.curTok.Span)
		return nil
	}

	var args []ast.Node
	for {
		arg := p.parseExpr()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		switch p.curTok.Type {
		case lexer.COMMA:
			p.nextToken()
			if p.curTok.Type == lexer.RBRACKET {
				p.reportError("expected type expression after ','", p.curTok.Span)
				return nil
			}
			continue
		case lexer.RBRACKET:
			span := mergeSpan(nameTok.Span, p.curTok.Span)
			p.nextToken()
			return ast.NewApp(name, args, span)
		default:
			p.reportError("expected ',' or ']' in argument list", p.curTok.Span)
			return nil
		}
	}
}

// mergeSpan assumes start.End <= end.End and returns a span covering both.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start
	if end.End > span.End {
		span.End = end.End
	}
	return span
}
