package resolve

import (
	"github.com/typefold/typefold/internal/ast"
	"github.com/typefold/typefold/internal/parser"
	"github.com/typefold/typefold/internal/typeexpr"
)

// evalDeferred turns a textual reference into an expression by parsing it
// with the restricted grammar and resolving every name against the two
// supplied scopes, inner first. The text is never handed to anything with
// wider semantics than that grammar.
func (u *unpacker) evalDeferred(d *typeexpr.Deferred) (typeexpr.Expr, error) {
	node, err := parser.Parse(d.Source)
	if err != nil {
		return nil, err
	}
	return u.fromAST(node, d.Source)
}

func (u *unpacker) fromAST(node ast.Node, source string) (typeexpr.Expr, error) {
	switch node := node.(type) {
	case *ast.Name:
		expr := u.lookupName(node.Ident)
		if expr == nil {
			return nil, &NameError{Name: node.Ident, Span: node.Span(), Source: source}
		}
		return expr, nil

	case *ast.Union:
		members := make([]typeexpr.Expr, 0, len(node.Members))
		for _, m := range node.Members {
			member, err := u.fromAST(m, source)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		return &typeexpr.Union{Members: members}, nil

	case *ast.App:
		origin := u.lookupName(node.Origin.Ident)
		if origin == nil {
			return nil, &NameError{Name: node.Origin.Ident, Span: node.Origin.Span(), Source: source}
		}
		args := make([]typeexpr.Expr, 0, len(node.Args))
		for _, a := range node.Args {
			arg, err := u.fromAST(a, source)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &typeexpr.Generic{Origin: origin, Args: args}, nil

	case *ast.Ellipsis:
		return typeexpr.Ellipsis, nil

	case *ast.Forward:
		// A nested quoted reference is its own deferred expression.
		return u.evalDeferred(&typeexpr.Deferred{Source: node.Text})

	default:
		return nil, &parser.MalformedError{Source: source}
	}
}

// lookupName resolves a name against the inner scope first, then the outer.
func (u *unpacker) lookupName(name string) typeexpr.Expr {
	if expr := u.inner.Lookup(name); expr != nil {
		return expr
	}
	return u.outer.Lookup(name)
}
