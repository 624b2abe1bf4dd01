package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLen caps how much of an Accept-Language header is
// parsed, so an oversized header cannot soak CPU.
const maxAcceptLanguageLen = 4096

type langPref struct {
	tag     string
	quality float64
}

// ParseAcceptLanguage negotiates a language between an Accept-Language
// header and the application's available languages. Preferences are
// honored in quality order; within one preference an exact tag match
// beats a primary-subtag match ("en-US" against available "en").
// Returns the first available language when the header is empty or
// nothing matches, and "" when there are no available languages.
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	prefs := parseLangPrefs(header)
	if len(prefs) == 0 {
		return available[0]
	}

	for _, pref := range prefs {
		if match := matchAvailable(pref.tag, available); match != "" {
			return match
		}
	}

	return available[0]
}

// parseLangPrefs splits a header into tags sorted by quality, highest
// first. Wildcards and q=0 entries are dropped; ties keep header order.
func parseLangPrefs(header string) []langPref {
	if len(header) > maxAcceptLanguageLen {
		header = header[:maxAcceptLanguageLen]
	}

	var prefs []langPref
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		quality := 1.0
		if params = strings.TrimSpace(params); strings.HasPrefix(params, "q=") {
			if q, err := strconv.ParseFloat(params[2:], 64); err == nil && q >= 0 && q <= 1 {
				quality = q
			}
		}
		if quality == 0 {
			continue
		}

		prefs = append(prefs, langPref{tag: tag, quality: quality})
	}

	slices.SortStableFunc(prefs, func(a, b langPref) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return prefs
}

// matchAvailable finds the available language for one requested tag:
// exact match first, then same primary subtag.
func matchAvailable(tag string, available []string) string {
	for _, avail := range available {
		if strings.EqualFold(avail, tag) {
			return avail
		}
	}

	primary := baseLanguage(tag)
	for _, avail := range available {
		if strings.EqualFold(baseLanguage(avail), primary) {
			return avail
		}
	}

	return ""
}
