package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is the fallback language when no default is configured.
const DefaultLang = "en"

// catalogKey addresses one translation template in the catalog.
type catalogKey struct {
	lang      string
	namespace string
	key       string
}

// I18n resolves translation keys to templates across languages and
// namespaces. All configuration happens in New; after that the instance
// is immutable and safe for concurrent use.
type I18n struct {
	catalog   map[catalogKey]string
	plurals   map[string]PluralRule
	onMissing func(lang, namespace, key string)
	fallback  string
	languages []string

	// Collected during option application, folded into languages by New.
	extraLangs map[string]struct{}
}

// Option configures an I18n instance during construction.
type Option func(*I18n) error

// New builds an I18n instance from the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		catalog:    make(map[catalogKey]string),
		plurals:    make(map[string]PluralRule),
		fallback:   DefaultLang,
		extraLangs: make(map[string]struct{}),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("i18n: applying option: %w", err)
		}
	}

	if i.fallback == "" {
		return nil, ErrEmptyLanguage
	}

	i.languages = i.finalizeLanguages()
	i.extraLangs = nil

	return i, nil
}

// WithDefaultLanguage sets the fallback language. Lookups that miss in
// the requested language end at the fallback before giving up.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.fallback = lang
		return nil
	}
}

// WithLanguages declares the supported languages. The fallback language
// always leads the list; the rest are sorted alphabetically. Option
// order does not matter, the list is assembled after all options ran.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, lang := range langs {
			if lang != "" {
				i.extraLangs[lang] = struct{}{}
			}
		}
		return nil
	}
}

// WithTranslations registers templates for one language and namespace.
// Nested maps are flattened into dot-separated keys, so
// {"items": {"one": "..."}} becomes "items.one".
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.addTranslations(lang, namespace, translations)
		return nil
	}
}

// WithPluralRule overrides the plural rule for a language.
func WithPluralRule(lang string, rule PluralRule) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if rule == nil {
			return ErrNilPluralRule
		}
		i.plurals[lang] = rule
		return nil
	}
}

// WithMissingKeyHandler installs a callback invoked whenever a lookup
// misses in every candidate language. Useful for logging translation
// gaps in development.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.onMissing = handler
		return nil
	}
}

// T resolves key in the given language and namespace and renders it with
// the placeholder values. The lookup falls back from the exact language
// to its base ("en-US" to "en") and then to the default language.
// A full miss returns the key unchanged.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if template, ok := i.lookup(lang, namespace, key); ok {
		return ReplacePlaceholders(template, mergeValues(placeholders))
	}
	if i.onMissing != nil {
		i.onMissing(lang, namespace, key)
	}
	return key
}

// Tn resolves a pluralized key for the given count. The plural form is
// chosen by the language's plural rule, and the count is always
// available to the template as {{count}}.
func (i *I18n) Tn(lang, namespace, key string, n int, placeholders ...M) string {
	form := i.pluralRule(lang)(n)

	var template string
	found := false
	for _, candidate := range i.candidateLanguages(lang) {
		if template, found = i.lookupPluralForm(candidate, namespace, key, form); found {
			break
		}
	}
	if !found {
		if i.onMissing != nil {
			i.onMissing(lang, namespace, key)
		}
		return key
	}

	values := mergeValues(placeholders)
	if values == nil {
		values = M{}
	}
	if _, ok := values["count"]; !ok {
		values["count"] = n
	}
	return ReplacePlaceholders(template, values)
}

// Languages returns the supported languages, default language first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.fallback
}

// addTranslations flattens and stores a translation tree. Shared by
// WithTranslations and the file loaders.
func (i *I18n) addTranslations(lang, namespace string, tree map[string]any) {
	flattenInto(i.catalog, lang, namespace, "", tree)
	if _, ok := i.plurals[lang]; !ok {
		i.plurals[lang] = GetPluralRuleForLanguage(lang)
	}
	if i.extraLangs != nil {
		i.extraLangs[lang] = struct{}{}
	}
}

// lookup walks the candidate languages for a plain key.
func (i *I18n) lookup(lang, namespace, key string) (string, bool) {
	for _, candidate := range i.candidateLanguages(lang) {
		if template, ok := i.catalog[catalogKey{candidate, namespace, key}]; ok {
			return template, true
		}
	}
	return "", false
}

// lookupPluralForm tries the exact plural form for one language, then
// the CLDR fallback forms. "two" degrades through "few" and "many" to
// "other" so sparse catalogs still resolve.
func (i *I18n) lookupPluralForm(lang, namespace, key, form string) (string, bool) {
	if template, ok := i.catalog[catalogKey{lang, namespace, key + "." + form}]; ok {
		return template, true
	}
	for _, alt := range pluralFallbacks(form) {
		if template, ok := i.catalog[catalogKey{lang, namespace, key + "." + alt}]; ok {
			return template, true
		}
	}
	return "", false
}

// candidateLanguages returns the fallback chain for a requested
// language: the language itself, its base tag when regional, and the
// default language. Duplicates are dropped.
func (i *I18n) candidateLanguages(lang string) []string {
	chain := make([]string, 0, 3)
	chain = append(chain, lang)
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.fallback) {
		chain = append(chain, i.fallback)
	}
	return chain
}

// pluralRule resolves the plural rule along the language fallback chain.
func (i *I18n) pluralRule(lang string) PluralRule {
	for _, candidate := range i.candidateLanguages(lang) {
		if rule, ok := i.plurals[candidate]; ok {
			return rule
		}
	}
	return DefaultPluralRule
}

func (i *I18n) finalizeLanguages() []string {
	delete(i.extraLangs, i.fallback)

	rest := slices.Collect(maps.Keys(i.extraLangs))
	slices.Sort(rest)

	return append([]string{i.fallback}, rest...)
}

// flattenInto walks a translation tree and writes dot-joined keys into
// the catalog. Leaves that are neither strings nor maps are stringified.
func flattenInto(catalog map[catalogKey]string, lang, namespace, prefix string, tree map[string]any) {
	for name, value := range tree {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		switch v := value.(type) {
		case string:
			catalog[catalogKey{lang, namespace, key}] = v
		case map[string]any:
			flattenInto(catalog, lang, namespace, key, v)
		case map[string]string:
			for sub, template := range v {
				catalog[catalogKey{lang, namespace, key + "." + sub}] = template
			}
		default:
			catalog[catalogKey{lang, namespace, key}] = fmt.Sprintf("%v", v)
		}
	}
}

// baseLanguage strips a regional subtag: "en-US" yields "en".
func baseLanguage(lang string) string {
	if idx := strings.IndexByte(lang, '-'); idx > 0 {
		return lang[:idx]
	}
	return lang
}

func mergeValues(placeholders []M) M {
	switch len(placeholders) {
	case 0:
		return nil
	case 1:
		return maps.Clone(placeholders[0])
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return merged
}
