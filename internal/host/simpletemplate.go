package host

import (
	"strings"

	"github.com/streamforge/filterx/internal/object"
)

// SimpleTemplateEngine is a bundled reference TemplateEngine implementing
// the `${FIELD}` macro substitution syntax spec.md §4.6 describes in the
// abstract ("format into it against the context's messages and options").
// It always produces a LogString result, since it only ever concatenates
// text; a real template engine may produce any typed value when the whole
// template is a single macro (spec.md §4.6 "string, integer, double,
// datetime, …").
type SimpleTemplateEngine struct{}

func (SimpleTemplateEngine) Format(template string, messages []MessageStore, _ TemplateOptions) (string, object.LogType, error) {
	if len(messages) == 0 {
		return template, object.LogString, nil
	}
	msg := messages[0]

	var sb strings.Builder
	i := 0
	for i < len(template) {
		if template[i] == '$' && i+1 < len(template) && template[i+1] == '{' {
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				sb.WriteByte(template[i])
				i++
				continue
			}
			name := template[i+2 : i+2+end]
			handle := msg.Name(name)
			if raw, _, ok := msg.GetValue(handle); ok {
				sb.Write(raw)
			}
			i += 2 + end + 1
			continue
		}
		sb.WriteByte(template[i])
		i++
	}
	return sb.String(), object.LogString, nil
}
