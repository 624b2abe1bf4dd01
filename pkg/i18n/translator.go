package i18n

import "time"

// Translator binds an I18n service to one language, namespace, and
// locale format, so request-scoped code translates without repeating
// that context on every call.
type Translator struct {
	svc       *I18n
	format    *LocaleFormat
	language  string
	namespace string
}

// NewTranslator builds a Translator. An empty language falls back to
// the service's default language, and a nil format to FormatEnUS.
// Panics when svc is nil.
func NewTranslator(svc *I18n, language, namespace string, format *LocaleFormat) *Translator {
	if svc == nil {
		panic("i18n: nil service")
	}
	if language == "" {
		language = svc.DefaultLanguage()
	}
	if format == nil {
		format = FormatEnUS()
	}
	return &Translator{
		svc:       svc,
		language:  language,
		namespace: namespace,
		format:    format,
	}
}

// T translates a key in the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.svc.T(t.language, t.namespace, key, placeholders...)
}

// Tn translates a pluralized key for the given count.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.svc.Tn(t.language, t.namespace, key, n, placeholders...)
}

// TranslateMessage renders a translation key with a plain value map.
// The signature matches validator.TranslateFunc, so validation errors
// localize with:
//
//	ve.Translate(translator.TranslateMessage)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.svc.T(t.language, t.namespace, key, values)
}

// Language returns the translator's language.
func (t *Translator) Language() string { return t.language }

// Namespace returns the translator's namespace.
func (t *Translator) Namespace() string { return t.namespace }

// Format returns the translator's locale format.
func (t *Translator) Format() *LocaleFormat { return t.format }

// FormatNumber renders n by the translator's locale conventions.
func (t *Translator) FormatNumber(n float64) string {
	return t.format.FormatNumber(n)
}

// FormatCurrency renders an amount by the translator's locale
// conventions.
func (t *Translator) FormatCurrency(amount float64) string {
	return t.format.FormatCurrency(amount)
}

// FormatPercent renders a fraction (0.5 is 50%) as a percentage.
func (t *Translator) FormatPercent(n float64) string {
	return t.format.FormatPercent(n)
}

// FormatDate renders the date part of a timestamp.
func (t *Translator) FormatDate(date time.Time) string {
	return t.format.FormatDate(date)
}

// FormatTime renders the time part of a timestamp.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.format.FormatTime(tm)
}

// FormatDateTime renders a full timestamp.
func (t *Translator) FormatDateTime(ts time.Time) string {
	return t.format.FormatDateTime(ts)
}
