package i18n

import (
	"fmt"
	"strings"
)

// M carries placeholder values for translation templates.
type M map[string]any

// ReplacePlaceholders renders a template by substituting {{name}}
// tokens with values from the map. Tokens without a matching value, and
// braces that never close, are emitted unchanged:
//
//	ReplacePlaceholders("Hi {{name}}, {{n}} new", M{"name": "Ann", "n": 3})
//	// "Hi Ann, 3 new"
func ReplacePlaceholders(template string, values M) string {
	if len(values) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}

		name := rest[open+2 : open+end]
		value, ok := values[name]
		if !ok {
			// Unknown token: keep the opening braces literal and rescan
			// from just past them.
			b.WriteString(rest[:open+2])
			rest = rest[open+2:]
			continue
		}

		b.WriteString(rest[:open])
		fmt.Fprintf(&b, "%v", value)
		rest = rest[open+end+2:]
	}

	return b.String()
}
