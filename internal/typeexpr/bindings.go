package typeexpr

import (
	"sort"
	"strings"
)

// Bindings maps type-parameter names to the expressions bound to them during
// one expansion. A bindings value is scoped to a single recursive descent:
// callers copy before descending so sibling branches never observe each
// other's bindings, and entries are removed once consumed for a parameter
// occurrence.
type Bindings map[string]Expr

// NewBindings returns a fresh, empty binding context.
func NewBindings() Bindings {
	return make(Bindings)
}

// Copy returns an independent shallow copy. The bound expressions themselves
// are immutable, so sharing them is safe; the map is not.
func (b Bindings) Copy() Bindings {
	out := make(Bindings, len(b))
	for name, expr := range b {
		out[name] = expr
	}
	return out
}

// Fingerprint returns a canonical textual form of the bindings, used to key
// alias-cycle detection. Equal binding sets produce equal fingerprints
// regardless of map iteration order.
func (b Bindings) Fingerprint() string {
	if len(b) == 0 {
		return ""
	}
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(b[name].String())
	}
	return sb.String()
}
