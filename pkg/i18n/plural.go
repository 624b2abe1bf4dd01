package i18n

import "strings"

// PluralRule maps a count to a CLDR plural category.
type PluralRule func(n int) string

// CLDR plural categories. Few languages use all six.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// DefaultPluralRule is a rough general-purpose rule for languages
// without a registered one. It splits counts into zero, one, few
// (2-4), many (5-19), and other.
var DefaultPluralRule PluralRule = func(n int) string {
	switch n = abs(n); {
	case n == 0:
		return PluralZero
	case n == 1:
		return PluralOne
	case n >= 2 && n <= 4:
		return PluralFew
	case n < 20:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralRulesByLang maps ISO 639-1 primary subtags to their rule.
// Languages sharing a rule family point at the same function.
var pluralRulesByLang = map[string]PluralRule{
	"en": pluralEnglish,

	"de": pluralOneOther,
	"nl": pluralOneOther,
	"sv": pluralOneOther,
	"no": pluralOneOther,
	"da": pluralOneOther,
	"is": pluralOneOther,

	"fr": pluralRomance,
	"it": pluralRomance,
	"pt": pluralRomance,

	"es": pluralSpanish,

	"pl": pluralSlavic,
	"ru": pluralSlavic,
	"cs": pluralSlavic,
	"uk": pluralSlavic,
	"hr": pluralSlavic,
	"sr": pluralSlavic,
	"sk": pluralSlavic,
	"sl": pluralSlavic,
	"bg": pluralSlavic,

	"ja": pluralNone,
	"zh": pluralNone,
	"ko": pluralNone,
	"th": pluralNone,
	"vi": pluralNone,
	"id": pluralNone,
	"ms": pluralNone,

	"ar": pluralArabic,
}

// GetPluralRuleForLanguage returns the plural rule for a language code,
// matching on the primary subtag ("en-US" uses the "en" rule). Unknown
// languages get DefaultPluralRule.
func GetPluralRuleForLanguage(lang string) PluralRule {
	if len(lang) >= 2 {
		lang = strings.ToLower(lang[:2])
	}
	if rule, ok := pluralRulesByLang[lang]; ok {
		return rule
	}
	return DefaultPluralRule
}

// English distinguishes an explicit zero alongside one and other.
func pluralEnglish(n int) string {
	switch abs(n) {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	default:
		return PluralOther
	}
}

// Germanic languages: one for 1, other for everything including zero.
func pluralOneOther(n int) string {
	if abs(n) == 1 {
		return PluralOne
	}
	return PluralOther
}

// French-style Romance languages treat 0 and 1 as singular and split
// off millions as many.
func pluralRomance(n int) string {
	a := abs(n)
	switch {
	case a <= 1:
		return PluralOne
	case a >= 1_000_000:
		return PluralMany
	default:
		return PluralOther
	}
}

// Spanish is singular only at exactly 1.
func pluralSpanish(n int) string {
	a := abs(n)
	switch {
	case a == 1:
		return PluralOne
	case a >= 1_000_000:
		return PluralMany
	default:
		return PluralOther
	}
}

// Slavic languages pivot on the last digit, with 12-14 as exceptions.
func pluralSlavic(n int) string {
	a := abs(n)
	if a == 0 {
		return PluralZero
	}
	if a == 1 {
		return PluralOne
	}
	if d, dd := a%10, a%100; d >= 2 && d <= 4 && (dd < 12 || dd > 14) {
		return PluralFew
	}
	return PluralMany
}

// CJK and several Southeast Asian languages have one form.
func pluralNone(int) string {
	return PluralOther
}

// Arabic uses the full CLDR category set.
func pluralArabic(n int) string {
	a := abs(n)
	switch {
	case a == 0:
		return PluralZero
	case a == 1:
		return PluralOne
	case a == 2:
		return PluralTwo
	}
	switch dd := a % 100; {
	case dd >= 3 && dd <= 10:
		return PluralFew
	case dd >= 11:
		return PluralMany
	default:
		return PluralOther
	}
}

// pluralFallbacks lists the categories to try when the exact form has
// no template, ending at "other".
func pluralFallbacks(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	default:
		return []string{PluralOther}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
