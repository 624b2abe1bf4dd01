package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every tag, leaving plain text.
var strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// safePolicy keeps basic formatting for user-generated content and
// nothing else: scripts, event handlers, and javascript: URLs all go.
var safePolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
})

// StripHTML removes all HTML, for fields that must never contain markup
// (names, titles, slugs).
func StripHTML(s string) string {
	return strictPolicy().Sanitize(s)
}

// SanitizeHTML keeps safe formatting tags (p, a, strong, em, lists,
// code) and drops everything dangerous.
func SanitizeHTML(s string) string {
	return safePolicy().Sanitize(s)
}

// SanitizeHTMLCustom applies a caller-supplied bluemonday policy. A nil
// policy returns the input unchanged.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
