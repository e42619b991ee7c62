package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/typefold/typefold/internal/diag"
	"github.com/typefold/typefold/internal/parser"
	"github.com/typefold/typefold/internal/resolve"
	"github.com/typefold/typefold/internal/typeexpr"
)

// builtins are the leaf types every session starts with.
var builtins = []string{
	"int", "float", "bool", "str", "bytes", "None",
	"list", "dict", "tuple", "set", "frozenset",
	"Callable", "PathLike", "os.PathLike",
}

// session holds the name scope a resolve/repl run declares types into.
type session struct {
	scope *typeexpr.Scope
}

func newSession() *session {
	scope := typeexpr.NewScope(nil)
	for _, name := range builtins {
		scope.Insert(name, &typeexpr.Concrete{Name: name})
	}
	return &session{scope: scope}
}

// declare handles one declaration line:
//
//	class Name              a new leaf type
//	class Name(f1, f2)      a new record-like leaf type
//	type Name = expr        an alias
//	type Name[T, V] = expr  a generic alias (parameters are bare names)
func (s *session) declare(line string) error {
	switch {
	case strings.HasPrefix(line, "class "):
		return s.declareClass(strings.TrimSpace(strings.TrimPrefix(line, "class ")))
	case strings.HasPrefix(line, "type "):
		return s.declareAlias(strings.TrimSpace(strings.TrimPrefix(line, "type ")))
	default:
		return fmt.Errorf("expected a 'class' or 'type' declaration, got %q", line)
	}
}

func (s *session) declareClass(rest string) error {
	name := rest
	var fields []typeexpr.Field

	if open := strings.IndexByte(rest, '('); open >= 0 {
		if !strings.HasSuffix(rest, ")") {
			return fmt.Errorf("missing ')' in class declaration %q", rest)
		}
		name = strings.TrimSpace(rest[:open])
		for _, f := range strings.Split(rest[open+1:len(rest)-1], ",") {
			f = strings.TrimSpace(f)
			if f != "" {
				fields = append(fields, typeexpr.Field{Name: f})
			}
		}
	}
	if name == "" {
		return fmt.Errorf("class declaration needs a name")
	}

	s.scope.Insert(name, &typeexpr.Concrete{Name: name, Fields: fields})
	return nil
}

func (s *session) declareAlias(rest string) error {
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return fmt.Errorf("alias declaration needs '=': %q", rest)
	}

	head := strings.TrimSpace(rest[:eq])
	body := strings.TrimSpace(rest[eq+1:])
	if body == "" {
		return fmt.Errorf("alias declaration needs a body: %q", rest)
	}

	name := head
	var params []*typeexpr.Param

	if open := strings.IndexByte(head, '['); open >= 0 {
		if !strings.HasSuffix(head, "]") {
			return fmt.Errorf("missing ']' in alias head %q", head)
		}
		name = strings.TrimSpace(head[:open])
		for _, p := range strings.Split(head[open+1:len(head)-1], ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			param := &typeexpr.Param{Name: p}
			params = append(params, param)
			// Parameters resolve by name through the binding context, so a
			// session-wide placeholder per name is enough.
			s.scope.Insert(p, param)
		}
	}
	if name == "" {
		return fmt.Errorf("alias declaration needs a name")
	}

	// The body stays deferred; it is parsed and scope-resolved on use, so
	// aliases may be declared before the names they mention.
	s.scope.Insert(name, &typeexpr.Alias{
		Name:   name,
		Params: params,
		Body:   &typeexpr.Deferred{Source: body},
	})
	return nil
}

// loadDefs declares every non-empty, non-comment line of r.
func (s *session) loadDefs(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.declare(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

// resolveExpr resolves one expression against the session scope and returns
// the sorted names of the concrete types it denotes.
func (s *session) resolveExpr(src string) ([]string, error) {
	resolved, err := resolve.Unpack(&typeexpr.Deferred{Source: src}, s.scope, nil, nil)
	if err != nil {
		return nil, err
	}

	var names []string
	for c := range resolved.Items() {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}

// printError renders resolution errors as diagnostics where possible.
func printError(err error) {
	f := diag.NewFormatter(os.Stderr)

	switch err := err.(type) {
	case *parser.MalformedError:
		for _, pe := range err.Errors {
			f.Format(pe.ToDiagnostic().WithSource(err.Source))
		}
	case *resolve.NameError:
		f.Format(err.ToDiagnostic())
	case *resolve.CycleError:
		f.Format(err.ToDiagnostic())
	default:
		fmt.Fprintln(os.Stderr, err.Error())
	}
}
