// Package resolve flattens declared type expressions into the complete,
// deduplicated set of concrete leaf types they can denote. Unions are
// unioned, generic aliases are expanded with positional argument binding,
// type parameters collapse through their default/constraints/bound, and
// deferred textual references are evaluated against explicit name scopes.
package resolve

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/typefold/typefold/internal/typeexpr"
)

// NewSet returns an empty set of concrete types. Membership is keyed by the
// concrete type's identity hash (its name).
func NewSet() *set.HashSet[*typeexpr.Concrete, uint64] {
	return set.NewHashSet[*typeexpr.Concrete](0)
}

// IsUnpackable reports whether the expression needs further expansion.
// Concrete leaves are the only kind that does not.
func IsUnpackable(expr typeexpr.Expr) bool {
	switch expr.(type) {
	case *typeexpr.Union, *typeexpr.Generic, *typeexpr.Alias, *typeexpr.Param, *typeexpr.Deferred:
		return true
	default:
		return false
	}
}

// ResolveParam reduces a type parameter to a single expression, or nil when
// the parameter carries nothing to resolve from. Priority order:
//
//  1. default
//  2. the sole constraint, when there is exactly one
//  3. a union of the constraints, when there are several
//  4. bound
func ResolveParam(p *typeexpr.Param) typeexpr.Expr {
	switch {
	case p.Default != nil:
		return p.Default
	case len(p.Constraints) == 1:
		return p.Constraints[0]
	case len(p.Constraints) > 1:
		return &typeexpr.Union{Members: p.Constraints}
	case p.Bound != nil:
		return p.Bound
	default:
		return nil
	}
}

// Unpack resolves expr into the set of concrete types it can denote. The
// outer and inner scopes are consulted, inner first, only to evaluate
// deferred references; either may be nil. bindings pre-binds type parameters
// by name and may be nil. The supplied bindings map is never mutated.
//
// Errors abort the whole call: a name miss in a deferred reference yields a
// *NameError, malformed deferred text a *parser.MalformedError, and a
// self-referential alias a *CycleError. There is no partial-result salvage
// across union branches.
func Unpack(expr typeexpr.Expr, outer, inner *typeexpr.Scope, bindings typeexpr.Bindings) (*set.HashSet[*typeexpr.Concrete, uint64], error) {
	u := &unpacker{
		outer:    outer,
		inner:    inner,
		visiting: set.New[string](0),
	}

	// Fresh context per invocation so no caller-held map is ever shared or
	// mutated across calls.
	if bindings == nil {
		bindings = typeexpr.NewBindings()
	} else {
		bindings = bindings.Copy()
	}

	return u.unpack(expr, bindings)
}

// unpacker carries one resolution's immutable scopes plus the stack of alias
// expansions currently in flight (for cycle detection).
type unpacker struct {
	outer *typeexpr.Scope
	inner *typeexpr.Scope

	// visiting holds "<alias>[<bindings fingerprint>]" keys for every alias
	// expansion on the current descent path. Entries are removed on the way
	// back up so sibling branches may expand the same alias again.
	visiting *set.Set[string]
}

func (u *unpacker) unpack(expr typeexpr.Expr, bindings typeexpr.Bindings) (*set.HashSet[*typeexpr.Concrete, uint64], error) {
	if !IsUnpackable(expr) {
		out := NewSet()
		if c, ok := expr.(*typeexpr.Concrete); ok {
			out.Insert(c)
		}
		return out, nil
	}

	switch expr := expr.(type) {
	case *typeexpr.Deferred:
		evaluated, err := u.evalDeferred(expr)
		if err != nil {
			return nil, err
		}
		return u.unpack(evaluated, bindings)

	case *typeexpr.Param:
		if bound, ok := bindings[expr.Name]; ok {
			// An explicit argument takes precedence over the parameter's
			// own default/constraints/bound, and is consumed so it cannot
			// silently rebind a same-named parameter elsewhere.
			delete(bindings, expr.Name)
			return u.unpack(bound, bindings)
		}
		resolved := ResolveParam(expr)
		if resolved == nil {
			return NewSet(), nil
		}
		return u.unpack(resolved, bindings)

	case *typeexpr.Union:
		return u.flattenUnion(expr.Members, bindings)

	case *typeexpr.Generic:
		return u.unpackApplication(expr.Origin, expr.Args, bindings)

	case *typeexpr.Alias:
		return u.unpackApplication(expr, nil, bindings)

	default:
		// Unreachable for well-formed input: IsUnpackable and this switch
		// enumerate the same kinds.
		return NewSet(), nil
	}
}

// flattenUnion resolves each member independently on a fresh copy of the
// bindings and unions the resulting sets.
func (u *unpacker) flattenUnion(members []typeexpr.Expr, bindings typeexpr.Bindings) (*set.HashSet[*typeexpr.Concrete, uint64], error) {
	out := NewSet()
	for _, member := range members {
		resolved, err := u.unpack(member, bindings.Copy())
		if err != nil {
			return nil, err
		}
		for c := range resolved.Items() {
			out.Insert(c)
		}
	}
	return out, nil
}

// unpackApplication handles generic applications and bare alias references.
// An alias origin is expanded into its body with the argument bindings; a
// concrete origin is a bare generic container, which short-circuits to the
// singleton {origin} with every argument deliberately discarded.
func (u *unpacker) unpackApplication(origin typeexpr.Expr, args []typeexpr.Expr, inherited typeexpr.Bindings) (*set.HashSet[*typeexpr.Concrete, uint64], error) {
	switch origin := origin.(type) {
	case *typeexpr.Alias:
		body, bindings := expandAlias(origin, args, inherited)

		key := origin.Name + "[" + bindings.Fingerprint() + "]"
		if u.visiting.Contains(key) {
			return nil, &CycleError{Alias: origin.Name, Fingerprint: bindings.Fingerprint()}
		}
		u.visiting.Insert(key)
		defer u.visiting.Remove(key)

		return u.unpack(body, bindings)

	case *typeexpr.Concrete:
		out := NewSet()
		out.Insert(origin)
		return out, nil

	default:
		return u.unpack(origin, inherited)
	}
}

// expandAlias binds arguments to the alias's declared parameters, left to
// right, and returns the alias body with the updated context:
//
//   - a remaining explicit argument is consumed positionally;
//   - else a binding inherited from an enclosing expansion is kept;
//   - else the parameter resolves through ResolveParam, if it can;
//   - else the parameter stays unbound.
func expandAlias(alias *typeexpr.Alias, args []typeexpr.Expr, inherited typeexpr.Bindings) (typeexpr.Expr, typeexpr.Bindings) {
	bindings := inherited.Copy()

	for _, param := range alias.Params {
		if len(args) > 0 {
			bindings[param.Name] = args[0]
			args = args[1:]
			continue
		}
		if _, ok := bindings[param.Name]; ok {
			continue
		}
		if resolved := ResolveParam(param); resolved != nil {
			bindings[param.Name] = resolved
		}
	}

	return alias.Body, bindings
}
