package diag_test

import (
	"strings"
	"testing"

	"github.com/typefold/typefold/internal/diag"
)

func TestFormatterSnippetUnderline(t *testing.T) {
	var sb strings.Builder
	f := diag.NewFormatter(&sb)

	f.Format(diag.Diagnostic{
		Stage:    diag.StageResolve,
		Severity: diag.SeverityError,
		Code:     diag.CodeResolveUnknownName,
		Message:  "unknown name 'Fruit'",
		Span:     diag.Span{Line: 1, Column: 6, Start: 5, End: 10},
		Source:   "list[Fruit]",
	})

	out := sb.String()
	if !strings.Contains(out, "error[RESOLVE_UNKNOWN_NAME]: unknown name 'Fruit'") {
		t.Fatalf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "| list[Fruit]") {
		t.Fatalf("missing snippet line in output:\n%s", out)
	}
	if !strings.Contains(out, "|      ^^^^^") {
		t.Fatalf("missing underline in output:\n%s", out)
	}
}

func TestFormatterDefaultsAndHelp(t *testing.T) {
	var sb strings.Builder
	f := diag.NewFormatter(&sb)

	d := diag.Diagnostic{
		Stage:   diag.StageConfig,
		Code:    diag.CodeConfigNoConfigType,
		Message: "no config type in annotation",
	}
	d = d.WithNote("found: int, str").WithHelp("annotate the parameter with a config type")

	f.Format(d)

	out := sb.String()
	if !strings.HasPrefix(out, "error[CONFIG_NO_CONFIG_TYPE]") {
		t.Fatalf("missing severity default in output:\n%s", out)
	}
	if !strings.Contains(out, "= note: found: int, str") {
		t.Fatalf("missing note in output:\n%s", out)
	}
	if !strings.Contains(out, "help: annotate the parameter") {
		t.Fatalf("missing help in output:\n%s", out)
	}
}

func TestSpanValidity(t *testing.T) {
	if (diag.Span{}).IsValid() {
		t.Errorf("zero span should be invalid")
	}
	if !(diag.Span{Line: 1, Column: 4}).IsValid() {
		t.Errorf("positioned span should be valid")
	}
	if got := (diag.Span{Line: 1, Column: 4}).String(); got != "1:4" {
		t.Errorf("Span.String() = %q, want %q", got, "1:4")
	}
}
