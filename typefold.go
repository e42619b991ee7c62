// Package typefold resolves declared type expressions - nested unions,
// generic alias instantiations, type parameters, and deferred textual
// references - into the flat, deduplicated set of concrete leaf types they
// can denote.
//
// The package is a thin facade over the internal engine; the three
// operations below are the whole public surface.
package typefold

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/typefold/typefold/internal/resolve"
	"github.com/typefold/typefold/internal/typeexpr"
)

// Re-exported expression model.
type (
	Expr     = typeexpr.Expr
	Concrete = typeexpr.Concrete
	Field    = typeexpr.Field
	Union    = typeexpr.Union
	Generic  = typeexpr.Generic
	Param    = typeexpr.Param
	Alias    = typeexpr.Alias
	Deferred = typeexpr.Deferred
	Bindings = typeexpr.Bindings
	Scope    = typeexpr.Scope
)

// NewScope creates a name scope with an optional parent.
func NewScope(parent *Scope) *Scope { return typeexpr.NewScope(parent) }

// IsUnpackable reports whether the expression needs further expansion.
func IsUnpackable(expr Expr) bool { return resolve.IsUnpackable(expr) }

// ResolveParam reduces a type parameter to a single expression through its
// default, constraints, or bound, or nil when it carries none of those.
func ResolveParam(p *Param) Expr { return resolve.ResolveParam(p) }

// Unpack resolves expr into the set of concrete types it can denote.
// The outer and inner scopes are used only to evaluate deferred references
// (inner first); bindings pre-binds type parameters by name. All three may
// be nil.
func Unpack(expr Expr, outer, inner *Scope, bindings Bindings) (*set.HashSet[*Concrete, uint64], error) {
	return resolve.Unpack(expr, outer, inner, bindings)
}
