package typeexpr

// Scope is a name table used to evaluate deferred references. Scopes chain
// through Parent; the engine additionally takes scopes in (outer, inner)
// pairs and consults the inner one first, so inner names shadow outer ones
// whether or not the two are chained.
//
// The engine treats scopes as read-only; callers own mutation and must not
// modify a scope concurrently with an in-flight resolution.
type Scope struct {
	Parent  *Scope
	Symbols map[string]Expr
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		Symbols: make(map[string]Expr),
	}
}

// Insert adds a name to the current scope.
func (s *Scope) Insert(name string, expr Expr) {
	s.Symbols[name] = expr
}

// Lookup finds a name in the current scope or any parent scope.
func (s *Scope) Lookup(name string) Expr {
	if s == nil {
		return nil
	}
	if expr, ok := s.Symbols[name]; ok {
		return expr
	}
	if s.Parent != nil {
		return s.Parent.Lookup(name)
	}
	return nil
}
