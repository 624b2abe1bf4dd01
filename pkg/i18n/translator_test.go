package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	t.Run("translates in its bound language", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(svc, "de", "common", nil)
		require.Equal(t, "Einfacher Text", tr.T("plain"))
		require.Equal(t, "de", tr.Language())
		require.Equal(t, "common", tr.Namespace())
	})

	t.Run("pluralizes in its bound language", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(svc, "en", "common", nil)
		require.Equal(t, "1 message", tr.Tn("inbox", 1))
		require.Equal(t, "4 messages", tr.Tn("inbox", 4))
	})

	t.Run("renders placeholders", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(svc, "en", "common", nil)
		require.Equal(t, "Hello, Ann!", tr.T("greeting", i18n.M{"name": "Ann"}))
	})

	t.Run("empty language falls back to the service default", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(svc, "", "common", nil)
		require.Equal(t, "en", tr.Language())
		require.Equal(t, "Plain text", tr.T("plain"))
	})

	t.Run("nil format defaults to US conventions", func(t *testing.T) {
		t.Parallel()

		tr := i18n.NewTranslator(svc, "en", "common", nil)
		require.NotNil(t, tr.Format())
		require.Equal(t, "1,234.56", tr.FormatNumber(1234.56))
	})

	t.Run("explicit format is used for rendering", func(t *testing.T) {
		t.Parallel()

		format := i18n.FormatDeDE()
		tr := i18n.NewTranslator(svc, "de", "common", format)
		require.Same(t, format, tr.Format())
		require.Equal(t, "1.234,50 €", tr.FormatCurrency(1234.5))
	})

	t.Run("nil service panics", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() {
			i18n.NewTranslator(nil, "en", "common", nil)
		})
	})
}

func TestTranslator_TranslateMessage(t *testing.T) {
	t.Parallel()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage("en"),
		i18n.WithTranslations("en", "common", map[string]any{
			"validation.required": "{{field}} is required",
		}),
		i18n.WithTranslations("de", "common", map[string]any{
			"validation.required": "{{field}} ist erforderlich",
		}),
	)
	require.NoError(t, err)

	en := i18n.NewTranslator(svc, "en", "common", nil)
	require.Equal(t, "email is required", en.TranslateMessage("validation.required", map[string]any{"field": "email"}))

	de := i18n.NewTranslator(svc, "de", "common", nil)
	require.Equal(t, "email ist erforderlich", de.TranslateMessage("validation.required", map[string]any{"field": "email"}))

	// Unknown keys come back unchanged, mirroring T.
	require.Equal(t, "validation.custom", en.TranslateMessage("validation.custom", nil))
}
