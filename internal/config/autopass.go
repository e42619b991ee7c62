package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typefold/typefold/internal/diag"
	"github.com/typefold/typefold/internal/resolve"
	"github.com/typefold/typefold/internal/typeexpr"
)

// Param models one declared function parameter with its type annotation.
type Param struct {
	Name       string
	Annotation typeexpr.Expr // nil for an unannotated parameter
}

// Signature models the declared parameters of a function.
type Signature struct {
	Name   string
	Params []Param
}

// Loader turns a path-like source into field values. The package performs no
// I/O itself; callers who want file-backed sources supply one.
type Loader func(path string) (map[string]any, error)

// Option configures an Autopass.
type Option func(*Autopass)

// WithClassifier replaces the default config-type predicate. Useful when a
// function accepts both configs and other record types.
func WithClassifier(fn func(*typeexpr.Concrete) bool) Option {
	return func(a *Autopass) { a.isConfig = fn }
}

// WithScopes supplies the name scopes used to evaluate deferred annotations.
func WithScopes(outer, inner *typeexpr.Scope) Option {
	return func(a *Autopass) { a.outer, a.inner = outer, inner }
}

// WithLoader supplies a loader for path-like sources.
func WithLoader(l Loader) Option {
	return func(a *Autopass) { a.loader = l }
}

// IgnoreWarnings suppresses the no-config-type warning diagnostics.
func IgnoreWarnings() Option {
	return func(a *Autopass) { a.ignoreWarnings = true }
}

// Autopass decides, per function parameter, which configuration object to
// auto-supply. It consumes only resolve.Unpack and the classifier; it never
// inspects annotations itself.
type Autopass struct {
	sources map[string]any

	isConfig       func(*typeexpr.Concrete) bool
	outer, inner   *typeexpr.Scope
	loader         Loader
	ignoreWarnings bool
}

// InvalidSourceError reports supplied sources of a kind the planner cannot
// use.
type InvalidSourceError struct {
	Params []string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf(
		"invalid config source(s) for %s: allowed kinds are config instances, key-value maps, and path-like strings",
		strings.Join(e.Params, ", "))
}

// New validates the supplied sources and returns a planner over them. Keys
// are parameter names; values must be *Instance, map[string]any, string or
// []byte.
func New(sources map[string]any, opts ...Option) (*Autopass, error) {
	a := &Autopass{
		sources:  sources,
		isConfig: IsConfig,
	}
	for _, opt := range opts {
		opt(a)
	}

	var invalid []string
	for name, src := range sources {
		switch src.(type) {
		case *Instance, map[string]any, string, []byte:
		default:
			invalid = append(invalid, fmt.Sprintf("%s (%T)", name, src))
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, &InvalidSourceError{Params: invalid}
	}

	return a, nil
}

// Assignment is the injection decision for one parameter.
type Assignment struct {
	Param      string
	Config     *Instance            // the constructed config, nil when the parameter was skipped
	Candidates []*typeexpr.Concrete // config types the annotation resolved to
}

// Plan is the result of planning one signature.
type Plan struct {
	Assignments []Assignment
	Warnings    []diag.Diagnostic
}

// UnknownParamError reports a source naming a parameter the signature does
// not declare.
type UnknownParamError struct {
	Param string
	Func  string
}

func (e *UnknownParamError) Error() string {
	return fmt.Sprintf("parameter %q not found in %s function signature", e.Param, e.Func)
}

// CandidateFailure records why one candidate config type could not be
// constructed.
type CandidateFailure struct {
	Type string
	Err  error
}

// NoCandidateError reports that every candidate config type failed to
// construct for a parameter.
type NoCandidateError struct {
	Param    string
	Func     string
	Failures []CandidateFailure
}

func (e *NoCandidateError) Error() string {
	var parts []string
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Type, f.Err))
	}
	return fmt.Sprintf(
		"could not create a valid config instance for parameter %q in function %q; all candidate types failed: %s",
		e.Param, e.Func, strings.Join(parts, "; "))
}

// PlanFor resolves each annotated parameter that has a supplied source,
// picks the first constructible candidate config type, and returns the
// per-parameter assignments. Parameters whose annotation contains no config
// type are skipped with a warning. A source naming an undeclared parameter
// is an error.
func (a *Autopass) PlanFor(sig Signature) (*Plan, error) {
	plan := &Plan{}
	used := make(map[string]bool, len(a.sources))

	for _, param := range sig.Params {
		src, ok := a.sources[param.Name]
		if !ok {
			continue
		}
		used[param.Name] = true

		candidates, warn, err := a.candidateTypes(param, sig.Name)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			if warn != nil {
				plan.Warnings = append(plan.Warnings, *warn)
			}
			plan.Assignments = append(plan.Assignments, Assignment{Param: param.Name})
			continue
		}

		inst, err := a.construct(src, candidates, param.Name, sig.Name)
		if err != nil {
			return nil, err
		}
		plan.Assignments = append(plan.Assignments, Assignment{
			Param:      param.Name,
			Config:     inst,
			Candidates: candidates,
		})
	}

	for name := range a.sources {
		if !used[name] {
			return nil, &UnknownParamError{Param: name, Func: sig.Name}
		}
	}

	return plan, nil
}

// candidateTypes resolves the parameter's annotation and filters the result
// set down to config types, in alias declaration order where one exists.
func (a *Autopass) candidateTypes(param Param, fnName string) ([]*typeexpr.Concrete, *diag.Diagnostic, error) {
	if param.Annotation == nil {
		return nil, nil, nil
	}

	resolved, err := resolve.Unpack(param.Annotation, a.outer, a.inner, nil)
	if err != nil {
		return nil, nil, err
	}

	var candidates []*typeexpr.Concrete
	var others []string
	for t := range resolved.Items() {
		if a.isConfig(t) {
			candidates = append(candidates, t)
		} else {
			others = append(others, t.Name)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })

	if len(candidates) > 0 || a.ignoreWarnings {
		return candidates, nil, nil
	}

	sort.Strings(others)
	warn := diag.Diagnostic{
		Stage:    diag.StageConfig,
		Severity: diag.SeverityWarning,
		Code:     diag.CodeConfigNoConfigType,
		Message: fmt.Sprintf(
			"the annotation of parameter %q in function %q contains no config types",
			param.Name, fnName),
	}
	if len(others) > 0 {
		warn = warn.WithNote("found: " + strings.Join(others, ", "))
	}
	warn = warn.WithHelp("check that the classifier identifies your config types, or annotate the parameter with one")

	return nil, &warn, nil
}

// construct tries each candidate type in order; the first one that accepts
// the source wins.
func (a *Autopass) construct(src any, candidates []*typeexpr.Concrete, paramName, fnName string) (*Instance, error) {
	var failures []CandidateFailure

	for _, t := range candidates {
		inst, err := a.instantiate(src, t)
		if err == nil {
			return inst, nil
		}
		failures = append(failures, CandidateFailure{Type: t.Name, Err: err})
	}

	return nil, &NoCandidateError{Param: paramName, Func: fnName, Failures: failures}
}

// instantiate builds an Instance of t from one source value.
func (a *Autopass) instantiate(src any, t *typeexpr.Concrete) (*Instance, error) {
	switch src := src.(type) {
	case *Instance:
		if src.Type != nil && src.Type.Name == t.Name {
			return src, nil
		}
		// A config instance of another type is converted field-wise.
		return a.fromValues(src.Values, t)
	case map[string]any:
		return a.fromValues(src, t)
	case string:
		return a.fromPath(src, t)
	case []byte:
		return a.fromPath(string(src), t)
	default:
		return nil, fmt.Errorf("unsupported source kind %T", src)
	}
}

func (a *Autopass) fromPath(path string, t *typeexpr.Concrete) (*Instance, error) {
	if a.loader == nil {
		return nil, fmt.Errorf("path-like source %q requires a loader", path)
	}
	values, err := a.loader(path)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return a.fromValues(values, t)
}

// fromValues checks that the values cover exactly the declared fields of t.
// Value types are not validated; the resolution engine guarantees nothing
// about a type's usability.
func (a *Autopass) fromValues(values map[string]any, t *typeexpr.Concrete) (*Instance, error) {
	declared := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		declared[f.Name] = true
		if _, ok := values[f.Name]; !ok {
			return nil, fmt.Errorf("missing field %q for config type %s", f.Name, t.Name)
		}
	}
	for name := range values {
		if !declared[name] {
			return nil, fmt.Errorf("unknown field %q for config type %s", name, t.Name)
		}
	}

	out := make(map[string]any, len(values))
	for name, v := range values {
		out[name] = v
	}
	return &Instance{Type: t, Values: out}, nil
}
