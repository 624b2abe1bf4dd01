package middlewares

import (
	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/i18n"
)

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	FormatMap     map[string]*i18n.LocaleFormat
	DefaultFormat *i18n.LocaleFormat
	Namespace     string
	Extractor     internal.Extractor
	extractorSet  bool
}

// formatFor picks the locale format for a resolved language.
func (cfg *I18nConfig) formatFor(lang string) *i18n.LocaleFormat {
	if f, ok := cfg.FormatMap[lang]; ok {
		return f
	}
	return cfg.DefaultFormat
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the default namespace for the context translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Namespace = ns
	}
}

// WithI18nExtractor sets a custom language extractor chain.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithI18nFormatMap sets the language-to-format mapping.
func WithI18nFormatMap(m map[string]*i18n.LocaleFormat) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.FormatMap = m
	}
}

// WithI18nDefaultFormat sets the fallback locale format.
func WithI18nDefaultFormat(f *i18n.LocaleFormat) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.DefaultFormat = f
	}
}

// FromAcceptLanguage returns an ExtractorSource that negotiates the
// Accept-Language header against the available languages.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.ParseAcceptLanguage(header, available), true
	}
}

// I18n returns middleware that resolves the request's language, creates a
// Translator, and stores both in the request context. With a translator
// present, validation failures from Context.BindJSON carry localized
// field messages.
func I18n(svc *i18n.I18n, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.extractorSet {
		// Explicit lang query parameter wins over header negotiation.
		cfg.Extractor = internal.NewExtractor(
			internal.FromQuery("lang"),
			FromAcceptLanguage(svc.Languages()),
		)
	}
	if cfg.DefaultFormat == nil {
		cfg.DefaultFormat = i18n.FormatEnUS()
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok || lang == "" {
				lang = svc.DefaultLanguage()
			}

			tr := i18n.NewTranslator(svc, lang, cfg.Namespace, cfg.formatFor(lang))

			c.Set(internal.TranslatorKey{}, tr)
			c.Set(internal.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the request's Translator, or nil when the I18n
// middleware is not installed.
func GetTranslator(c internal.Context) *i18n.Translator {
	if tr, ok := c.Get(internal.TranslatorKey{}).(*i18n.Translator); ok {
		return tr
	}
	return nil
}

// GetLanguage returns the resolved request language, or an empty string
// when the I18n middleware is not installed.
func GetLanguage(c internal.Context) string {
	if lang, ok := c.Get(internal.LanguageKey{}).(string); ok {
		return lang
	}
	return ""
}
