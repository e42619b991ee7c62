package typeexpr

import (
	"hash/fnv"
	"strings"
)

// Expr represents a type expression in the typefold model.
type Expr interface {
	String() string
	// IsExpr is a marker method to ensure type safety.
	IsExpr()
}

// Field describes one declared field of a record-like concrete type.
type Field struct {
	Name string
	Type Expr
}

// Concrete represents an already-resolved leaf type: a primitive, a class, or
// an unparametrized container origin. Its identity is its name.
type Concrete struct {
	Name   string
	Fields []Field // non-empty for record-like types
}

func (c *Concrete) String() string { return c.Name }
func (c *Concrete) IsExpr()        {}

// Hash returns a stable identity hash for set membership. Two concretes with
// the same name are the same type.
func (c *Concrete) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Name))
	return h.Sum64()
}

// IsRecord reports whether the concrete type declares fields.
func (c *Concrete) IsRecord() bool { return len(c.Fields) > 0 }

// Ellipsis is the sentinel produced by "..." inside a generic argument list,
// as in tuple[T, ...]. Container short-circuiting discards it along with
// every other argument.
var Ellipsis = &Concrete{Name: "..."}

// Union represents an ordered alternation of candidate type expressions.
// Consumers must treat the members as a set; the declared order is kept only
// so diagnostics and String output stay readable.
type Union struct {
	Members []Expr
}

func (u *Union) String() string {
	var members []string
	for _, m := range u.Members {
		members = append(members, m.String())
	}
	return strings.Join(members, " | ")
}
func (u *Union) IsExpr() {}

// Generic represents a parametrized application of a container or alias,
// e.g. dict[T, V]. Origin is either a *Concrete container or an *Alias.
type Generic struct {
	Origin Expr
	Args   []Expr
}

func (g *Generic) String() string {
	var args []string
	for _, a := range g.Args {
		args = append(args, a.String())
	}
	return g.Origin.String() + "[" + strings.Join(args, ", ") + "]"
}
func (g *Generic) IsExpr() {}

// Param represents a named type parameter with optional constraints
// (exclusive alternatives), an optional upper bound, and an optional default.
type Param struct {
	Name        string
	Constraints []Expr
	Bound       Expr
	Default     Expr
}

func (p *Param) String() string {
	if len(p.Constraints) == 0 && p.Bound == nil {
		return p.Name
	}
	if p.Bound != nil && len(p.Constraints) == 0 {
		return p.Name + ": " + p.Bound.String()
	}
	var cs []string
	for _, c := range p.Constraints {
		cs = append(cs, c.String())
	}
	return p.Name + ": (" + strings.Join(cs, ", ") + ")"
}
func (p *Param) IsExpr() {}

// Alias represents a named, possibly parametrized definition whose body is
// itself a type expression, e.g. type Pair[T, V] = tuple[T, V] | dict[T, V].
type Alias struct {
	Name   string
	Params []*Param
	Body   Expr
}

func (a *Alias) String() string { return a.Name }
func (a *Alias) IsExpr()        {}

// Deferred represents a textual or forward reference that has not been
// parsed yet. It is evaluated lazily against explicit name scopes.
type Deferred struct {
	Source string
}

func (d *Deferred) String() string { return "\"" + d.Source + "\"" }
func (d *Deferred) IsExpr()        {}
