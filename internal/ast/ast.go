package ast

import (
	"strings"

	"github.com/typefold/typefold/internal/lexer"
)

// Node is a node of a parsed textual type reference. The grammar is
// deliberately narrow: names, '|' alternation, Name[...] application,
// '...' and nested quoted forward references. Nothing in this tree can
// carry executable content.
type Node interface {
	Span() lexer.Span
	String() string
	isNode()
}

// Name references a type by (possibly dotted) name, resolved later against
// the caller-supplied scopes.
type Name struct {
	Ident string
	span  lexer.Span
}

func NewName(ident string, span lexer.Span) *Name {
	return &Name{Ident: ident, span: span}
}

func (n *Name) Span() lexer.Span { return n.span }
func (n *Name) String() string   { return n.Ident }
func (n *Name) isNode()          {}

// Union is an alternation of members, as written left to right.
type Union struct {
	Members []Node
	span    lexer.Span
}

func NewUnion(members []Node, span lexer.Span) *Union {
	return &Union{Members: members, span: span}
}

func (u *Union) Span() lexer.Span { return u.span }
func (u *Union) String() string {
	var members []string
	for _, m := range u.Members {
		members = append(members, m.String())
	}
	return strings.Join(members, " | ")
}
func (u *Union) isNode() {}

// App is a generic application Origin[Args...].
type App struct {
	Origin *Name
	Args   []Node
	span   lexer.Span
}

func NewApp(origin *Name, args []Node, span lexer.Span) *App {
	return &App{Origin: origin, Args: args, span: span}
}

func (a *App) Span() lexer.Span { return a.span }
func (a *App) String() string {
	var args []string
	for _, arg := range a.Args {
		args = append(args, arg.String())
	}
	return a.Origin.String() + "[" + strings.Join(args, ", ") + "]"
}
func (a *App) isNode() {}

// Ellipsis is the '...' placeholder inside an argument list.
type Ellipsis struct {
	span lexer.Span
}

func NewEllipsis(span lexer.Span) *Ellipsis { return &Ellipsis{span: span} }

func (e *Ellipsis) Span() lexer.Span { return e.span }
func (e *Ellipsis) String() string   { return "..." }
func (e *Ellipsis) isNode()          {}

// Forward is a nested quoted reference, re-evaluated as its own expression.
type Forward struct {
	Text string
	span lexer.Span
}

func NewForward(text string, span lexer.Span) *Forward {
	return &Forward{Text: text, span: span}
}

func (f *Forward) Span() lexer.Span { return f.span }
func (f *Forward) String() string   { return "\"" + f.Text + "\"" }
func (f *Forward) isNode()          {}
