package funclib

import (
	"regexp"
	"testing"

	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
)

// fakeRegexEngine is a minimal stdlib-regexp-backed RegexEngine test
// double, good enough to exercise RegexSearchCall without depending on
// internal/host's own reference implementation.
type fakeRegexEngine struct{}

func (fakeRegexEngine) Compile(pattern string) (host.CompiledPattern, error) {
	return regexp.Compile(pattern)
}

func (fakeRegexEngine) Match(code host.CompiledPattern, subject string) (*host.RegexMatch, error) {
	re := code.(*regexp.Regexp)
	m := re.FindStringSubmatch(subject)
	if m == nil {
		return nil, nil
	}
	names := map[int]string{}
	for i, n := range re.SubexpNames() {
		if n != "" {
			names[i] = n
		}
	}
	return &host.RegexMatch{Groups: m, GroupNames: names}, nil
}

func buildRegexSearch(t *testing.T, subject string, pattern string, kwargs map[string]expr.Expr) expr.Expr {
	t.Helper()
	b, ok := Lookup("regexp_search")
	if !ok {
		t.Fatalf("regexp_search not registered")
	}
	call, err := b.NewCall(expr.Location{}, []expr.Expr{
		lit(object.String{Value: subject}),
		lit(object.String{Value: pattern}),
	}, kwargs)
	if err != nil {
		t.Fatalf("NewCall failed: %v", err)
	}
	if err := call.Init(&expr.Config{Regex: fakeRegexEngine{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return call
}

func TestRegexpSearchDictModeElidesGroupZero(t *testing.T) {
	call := buildRegexSearch(t, "foo123bar", `(?P<n>\d+)`, nil)
	res, err := call.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	dict := res.(*object.Dict)
	if dict.Len() != 1 {
		t.Fatalf("expected 1 key, got %d: %v", dict.Len(), dict.Keys())
	}
	v, err := dict.GetSubscript(object.String{Value: "n"})
	if err != nil {
		t.Fatalf("missing key n: %v", err)
	}
	if s, ok := v.(object.String); !ok || s.Value != "123" {
		t.Fatalf("expected '123', got %v", v)
	}
}

func TestRegexpSearchDictModeKeepZero(t *testing.T) {
	call := buildRegexSearch(t, "foo123bar", `(?P<n>\d+)`, map[string]expr.Expr{
		"keep_zero": lit(object.Boolean{Value: true}),
	})
	res, err := call.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	dict := res.(*object.Dict)
	zero, err := dict.GetSubscript(object.String{Value: "0"})
	if err != nil {
		t.Fatalf("missing key 0: %v", err)
	}
	if s, ok := zero.(object.String); !ok || s.Value != "foo123bar" {
		t.Fatalf("expected whole match, got %v", zero)
	}
	n, err := dict.GetSubscript(object.String{Value: "n"})
	if err != nil || n.(object.String).Value != "123" {
		t.Fatalf("expected n=123, got %v err=%v", n, err)
	}
}

func TestRegexpSearchListMode(t *testing.T) {
	call := buildRegexSearch(t, "foo123bar", `(?P<n>\d+)`, map[string]expr.Expr{
		"list_mode": lit(object.Boolean{Value: true}),
	})
	res, err := call.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	list := res.(*object.List)
	if list.Len() != 1 {
		t.Fatalf("expected 1 element, got %d", list.Len())
	}
	v, _ := list.GetSubscript(object.Integer{Value: 0})
	if s, ok := v.(object.String); !ok || s.Value != "123" {
		t.Fatalf("expected '123', got %v", v)
	}
}

func TestRegexpSearchNoMatchYieldsEmptyContainer(t *testing.T) {
	call := buildRegexSearch(t, "nothing here", `\d+`, nil)
	res, err := call.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	dict := res.(*object.Dict)
	if dict.Len() != 0 {
		t.Fatalf("expected empty dict, got %v", dict.Keys())
	}
}

// TestRegexpSearchPCRENamedGroupSyntax exercises the bundled
// host.StdRegexEngine (not the fakeRegexEngine test double above) against
// spec.md §8 scenario 4's literal wording: regexp_search("foo123bar",
// "(?<n>\\d+)") => {"n": "123"}. Go's regexp package only natively accepts
// (?P<name>...); StdRegexEngine translates the spec's (?<name>...) form
// before compiling.
func TestRegexpSearchPCRENamedGroupSyntax(t *testing.T) {
	b, ok := Lookup("regexp_search")
	if !ok {
		t.Fatalf("regexp_search not registered")
	}
	call, err := b.NewCall(expr.Location{}, []expr.Expr{
		lit(object.String{Value: "foo123bar"}),
		lit(object.String{Value: `(?<n>\d+)`}),
	}, nil)
	if err != nil {
		t.Fatalf("NewCall failed: %v", err)
	}
	if err := call.Init(&expr.Config{Regex: host.StdRegexEngine{}}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	res, err := call.Eval(newTestCtx())
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	dict := res.(*object.Dict)
	v, err := dict.GetSubscript(object.String{Value: "n"})
	if err != nil {
		t.Fatalf("missing key n: %v", err)
	}
	if s, ok := v.(object.String); !ok || s.Value != "123" {
		t.Fatalf("expected '123', got %v", v)
	}
}

func TestRegexpSearchRequiresStringLiteralPattern(t *testing.T) {
	b, _ := Lookup("regexp_search")
	intPattern := lit(object.String{Value: `\d+`})
	intPattern.Value = object.Integer{Value: 1} // not a string literal anymore
	_, err := b.NewCall(expr.Location{}, []expr.Expr{
		lit(object.String{Value: "x"}),
		intPattern,
	}, nil)
	if err == nil {
		t.Fatalf("expected error for non-string literal pattern")
	}
}
