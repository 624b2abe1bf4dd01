package i18n

// Predefined locale formats for common locales. Each call returns a
// fresh value, so callers may further customize one without affecting
// others.

// FormatEnUS returns US English formatting ($1,234.56, 01/02/2006).
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns British English formatting.
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("£"),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatDeDE returns German formatting (1.234,56 €, 02.01.2006).
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("€"),
		WithCurrencyPosition("after"),
		WithCurrencySpacing(true),
		WithPercentSymbol(" %"),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatFrFR returns French formatting (1 234,56 €).
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("€"),
		WithCurrencyPosition("after"),
		WithCurrencySpacing(true),
		WithPercentSymbol(" %"),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatEsES returns Spanish formatting.
func FormatEsES() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("€"),
		WithCurrencyPosition("after"),
		WithCurrencySpacing(true),
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// FormatPlPL returns Polish formatting (1 234,56 zł).
func FormatPlPL() *LocaleFormat {
	return NewLocaleFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("zł"),
		WithCurrencyPosition("after"),
		WithCurrencySpacing(true),
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FormatJaJP returns Japanese formatting (¥1,234).
func FormatJaJP() *LocaleFormat {
	return NewLocaleFormat(
		WithCurrencySymbol("¥"),
		WithDateFormat("2006/01/02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006/01/02 15:04"),
	)
}
