package host

import (
	"fmt"
	"regexp"
)

// StdRegexEngine implements RegexEngine over the standard library's RE2
// engine. Documented per SPEC_FULL.md: the real host binds PCRE2 (an
// external collaborator per spec.md §4.9/§6, out of scope here, and
// absent from the retrieved example pack); RE2 lacks backreferences and
// lookaround, so patterns relying on those features behave differently
// under this adapter than under the real daemon.
type StdRegexEngine struct{}

// namedGroupSyntax matches PCRE/.NET-style named capture groups
// (`(?<name>`), which RE2 rejects — it only accepts `(?P<name>`. The
// identifier class deliberately excludes `=`/`!` so `(?<=...)`/`(?<!...)`
// lookbehind assertions (unsupported by RE2 regardless) are left alone
// rather than mistranslated into a named group.
var namedGroupSyntax = regexp.MustCompile(`\(\?<([A-Za-z_][A-Za-z0-9_]*)>`)

func (StdRegexEngine) Compile(pattern string) (CompiledPattern, error) {
	pattern = namedGroupSyntax.ReplaceAllString(pattern, `(?P<$1>`)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling regex %q: %w", pattern, err)
	}
	return re, nil
}

func (StdRegexEngine) Match(code CompiledPattern, subject string) (*RegexMatch, error) {
	re, ok := code.(*regexp.Regexp)
	if !ok {
		return nil, fmt.Errorf("regex engine: invalid compiled pattern handle %T", code)
	}
	loc := re.FindStringSubmatch(subject)
	if loc == nil {
		return nil, nil
	}
	names := make(map[int]string)
	for i, n := range re.SubexpNames() {
		if n != "" {
			names[i] = n
		}
	}
	return &RegexMatch{Groups: loc, GroupNames: names}, nil
}
