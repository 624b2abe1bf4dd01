package internal

import "strings"

// ExtractorSource pulls one candidate value out of a request.
// The bool reports whether anything usable was found.
type ExtractorSource = func(Context) (string, bool)

// Extractor walks a list of sources and settles on the first hit.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor builds an Extractor trying sources in the given order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first source's non-empty value, or ("", false)
// when every source comes up empty.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// nonEmpty adapts a plain getter into an ExtractorSource.
func nonEmpty(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}

// FromHeader reads the named request header.
func FromHeader(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Header(name) })
}

// FromQuery reads the named query parameter.
func FromQuery(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Query(name) })
}

// FromParam reads the named path parameter.
func FromParam(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Param(name) })
}

// FromBearerToken reads the token from an "Authorization: Bearer x"
// header. The scheme matches case-insensitively.
func FromBearerToken() ExtractorSource {
	return nonEmpty(func(c Context) string {
		const prefix = "Bearer "
		auth := c.Header("Authorization")
		if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
			return ""
		}
		return auth[len(prefix):]
	})
}
