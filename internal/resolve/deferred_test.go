package resolve

import (
	"errors"
	"testing"

	"github.com/typefold/typefold/internal/parser"
	"github.com/typefold/typefold/internal/typeexpr"
)

func scopeWith(pairs map[string]typeexpr.Expr) *typeexpr.Scope {
	s := typeexpr.NewScope(nil)
	for name, expr := range pairs {
		s.Insert(name, expr)
	}
	return s
}

func TestDeferredSimpleName(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{"MyClass": &typeexpr.Concrete{Name: "MyClass"}})

	got, err := Unpack(&typeexpr.Deferred{Source: "MyClass"}, outer, nil, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got.Size() != 1 || !got.Contains(&typeexpr.Concrete{Name: "MyClass"}) {
		t.Fatalf("Unpack = %v, want {MyClass}", setNames(got))
	}
}

func TestDeferredGenericApplication(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{
		"list":  tList,
		"Fruit": &typeexpr.Concrete{Name: "Fruit"},
	})

	// The container origin survives; its argument is discarded after being
	// resolved.
	got, err := Unpack(&typeexpr.Deferred{Source: "list[Fruit]"}, outer, nil, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got.Size() != 1 || !got.Contains(tList) {
		t.Fatalf("Unpack = %v, want {list}", setNames(got))
	}
}

func TestDeferredUnionAndNesting(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{
		"PathLike": tPathLike,
		"str":      tStr,
		"bytes":    tBytes,
		"list":     tList,
	})

	got, err := Unpack(&typeexpr.Deferred{Source: "PathLike | str | list[bytes]"}, outer, nil, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}

	for _, want := range []string{"PathLike", "str", "list"} {
		if !got.Contains(&typeexpr.Concrete{Name: want}) {
			t.Errorf("result %v missing %s", setNames(got), want)
		}
	}
	if got.Size() != 3 {
		t.Errorf("result size = %d, want 3", got.Size())
	}
}

func TestDeferredInnerScopeShadowsOuter(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{"X": &typeexpr.Concrete{Name: "outerX"}})
	inner := scopeWith(map[string]typeexpr.Expr{"X": &typeexpr.Concrete{Name: "innerX"}})

	got, err := Unpack(&typeexpr.Deferred{Source: "X"}, outer, inner, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !got.Contains(&typeexpr.Concrete{Name: "innerX"}) {
		t.Fatalf("inner scope should win, got %v", setNames(got))
	}
}

func TestDeferredResolvesToAlias(t *testing.T) {
	pathType := &typeexpr.Alias{Name: "PathType", Body: union(tPathLike, tStr, tBytes)}
	outer := scopeWith(map[string]typeexpr.Expr{"PathType": pathType})

	got, err := Unpack(&typeexpr.Deferred{Source: "PathType"}, outer, nil, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got.Size() != 3 {
		t.Fatalf("Unpack = %v, want 3 members", setNames(got))
	}
}

func TestDeferredNestedForwardRef(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{"SomeClass": &typeexpr.Concrete{Name: "SomeClass"}, "int": tInt})

	got, err := Unpack(&typeexpr.Deferred{Source: `'SomeClass' | int`}, outer, nil, nil)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got.Size() != 2 {
		t.Fatalf("Unpack = %v, want 2 members", setNames(got))
	}
}

func TestDeferredUnknownName(t *testing.T) {
	outer := scopeWith(map[string]typeexpr.Expr{"list": tList})

	_, err := Unpack(&typeexpr.Deferred{Source: "list[Fruit]"}, outer, nil, nil)
	if err == nil {
		t.Fatalf("expected a name error, got success")
	}

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected *NameError, got %T: %v", err, err)
	}
	if nameErr.Name != "Fruit" {
		t.Errorf("expected missing name Fruit, got %q", nameErr.Name)
	}

	d := nameErr.ToDiagnostic()
	if d.Code != "RESOLVE_UNKNOWN_NAME" {
		t.Errorf("expected code RESOLVE_UNKNOWN_NAME, got %q", d.Code)
	}
	if d.Source != "list[Fruit]" {
		t.Errorf("diagnostic should carry the deferred source, got %q", d.Source)
	}
}

func TestDeferredNameErrorAbortsWholeUnion(t *testing.T) {
	// No partial-result salvage: one failing union branch fails the call.
	outer := scopeWith(map[string]typeexpr.Expr{"int": tInt})

	_, err := Unpack(&typeexpr.Deferred{Source: "int | Missing"}, outer, nil, nil)

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected *NameError, got %T: %v", err, err)
	}
}

func TestDeferredMalformedText(t *testing.T) {
	_, err := Unpack(&typeexpr.Deferred{Source: "dict[str int]"}, nil, nil, nil)
	if err == nil {
		t.Fatalf("expected a malformed-expression error, got success")
	}

	var malformed *parser.MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *parser.MalformedError, got %T: %v", err, err)
	}
}

func TestDeferredWithNilScopes(t *testing.T) {
	_, err := Unpack(&typeexpr.Deferred{Source: "Anything"}, nil, nil, nil)

	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("nil scopes resolve nothing; expected *NameError, got %T", err)
	}
}
