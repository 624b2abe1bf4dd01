// Package i18n provides translations, pluralization, language
// negotiation, and locale-aware formatting for request-scoped code.
//
// # Features
//
//   - Flat or nested translation catalogs with namespaces
//   - Language fallback: exact tag, primary subtag, then the default
//   - CLDR plural categories with per-language rules
//   - Accept-Language negotiation with quality values
//   - Translation files from JSON or YAML directories
//   - Locale formats for numbers, currency, percent, and dates
//
// # Quick Start
//
// Build the service once at startup and keep it for the life of the
// process:
//
//	svc, err := i18n.New(
//	    i18n.WithDefaultLanguage("en"),
//	    i18n.WithLanguages("en", "de"),
//	    i18n.WithTranslations("en", "common", map[string]any{
//	        "greeting": "Hello, {{name}}!",
//	        "inbox": map[string]any{
//	            "one":   "{{count}} message",
//	            "other": "{{count}} messages",
//	        },
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//
//	svc.T("en", "common", "greeting", i18n.M{"name": "Ann"}) // "Hello, Ann!"
//	svc.Tn("en", "common", "inbox", 3)                       // "3 messages"
//
// # Translators
//
// A Translator pins the language, namespace, and locale format for one
// request, which is how the HTTP middleware exposes translations to
// handlers:
//
//	tr := i18n.NewTranslator(svc, "de", "common", i18n.FormatDeDE())
//	tr.T("greeting", i18n.M{"name": "Ann"})
//	tr.FormatCurrency(1234.5) // "1.234,50 €"
//
// # Translation Files
//
// Catalogs usually live on disk, one directory per language, one file
// per namespace:
//
//	locales/
//	  en/common.yaml
//	  de/common.yaml
//
//	svc, err := i18n.New(
//	    i18n.WithDefaultLanguage("en"),
//	    i18n.WithYAMLDir(os.DirFS("locales")),
//	)
//
// # Pluralization
//
// Plural templates are nested under the key by CLDR category. Tn picks
// the category with the language's rule and falls back toward "other"
// when a category has no template. The count is always available as
// {{count}}.
//
// # Language Negotiation
//
// ParseAcceptLanguage matches an Accept-Language header against the
// available languages, honoring quality values:
//
//	lang := i18n.ParseAcceptLanguage(r.Header.Get("Accept-Language"), svc.Languages())
//
// # Errors
//
//   - ErrEmptyLanguage: missing language in an option
//   - ErrEmptyNamespace: missing namespace in an option
//   - ErrNilPluralRule: nil rule passed to WithPluralRule
//   - ErrInvalidFile: translation file misplaced or unparsable
package i18n
