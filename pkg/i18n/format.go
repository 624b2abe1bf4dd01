package i18n

import (
	"strconv"
	"strings"
	"time"
)

// LocaleFormat renders numbers, currency amounts, percentages, and
// timestamps by one locale's conventions. Immutable after construction
// and safe for concurrent use.
type LocaleFormat struct {
	decimalSep     string
	groupSep       string
	currencySym    string
	currencyAfter  bool
	currencySpace  bool
	percentSym     string
	dateLayout     string
	timeLayout     string
	dateTimeLayout string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat builds a LocaleFormat. Without options the result
// follows US English conventions.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	f := &LocaleFormat{
		decimalSep:     ".",
		groupSep:       ",",
		currencySym:    "$",
		percentSym:     "%",
		dateLayout:     "01/02/2006",
		timeLayout:     "3:04 PM",
		dateTimeLayout: "01/02/2006 3:04 PM",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.decimalSep = sep }
}

// WithThousandSeparator sets the digit grouping separator.
func WithThousandSeparator(sep string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.groupSep = sep }
}

// WithCurrencySymbol sets the currency symbol.
func WithCurrencySymbol(symbol string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.currencySym = symbol }
}

// WithCurrencyPosition places the symbol "before" or "after" the
// amount. Other values are ignored.
func WithCurrencyPosition(pos string) LocaleFormatOption {
	return func(f *LocaleFormat) {
		switch pos {
		case "before":
			f.currencyAfter = false
		case "after":
			f.currencyAfter = true
		}
	}
}

// WithCurrencySpacing inserts a space between the symbol and the
// amount, the usual style for symbol-after locales.
func WithCurrencySpacing(spaced bool) LocaleFormatOption {
	return func(f *LocaleFormat) { f.currencySpace = spaced }
}

// WithPercentSymbol sets the percent suffix, including any spacing.
func WithPercentSymbol(symbol string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.percentSym = symbol }
}

// WithDateFormat sets the date layout (Go time layout syntax).
func WithDateFormat(layout string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.dateLayout = layout }
}

// WithTimeFormat sets the time layout (Go time layout syntax).
func WithTimeFormat(layout string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.timeLayout = layout }
}

// WithDateTimeFormat sets the combined layout (Go time layout syntax).
func WithDateTimeFormat(layout string) LocaleFormatOption {
	return func(f *LocaleFormat) { f.dateTimeLayout = layout }
}

// FormatNumber renders n with grouped digits and up to two decimal
// places, trimming trailing zeros: 1234.5 becomes "1,234.5" under US
// conventions.
func (f *LocaleFormat) FormatNumber(n float64) string {
	digits, frac, neg := splitFixed(n, 2)
	frac = strings.TrimRight(frac, "0")

	out := f.groupDigits(digits)
	if frac != "" {
		out += f.decimalSep + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCurrency renders an amount with exactly two decimal places and
// the locale's symbol placement.
func (f *LocaleFormat) FormatCurrency(amount float64) string {
	digits, frac, neg := splitFixed(amount, 2)

	num := f.groupDigits(digits) + f.decimalSep + frac

	gap := ""
	if f.currencySpace {
		gap = " "
	}
	var out string
	if f.currencyAfter {
		out = num + gap + f.currencySym
	} else {
		out = f.currencySym + gap + num
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent renders a fraction as a percentage with up to one
// decimal place: 0.125 becomes "12.5%" under US conventions.
func (f *LocaleFormat) FormatPercent(n float64) string {
	digits, frac, neg := splitFixed(n*100, 1)
	frac = strings.TrimRight(frac, "0")

	out := digits
	if frac != "" {
		out += f.decimalSep + frac
	}
	if neg {
		out = "-" + out
	}
	return out + f.percentSym
}

// FormatDate renders the date part of t.
func (f *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(f.dateLayout)
}

// FormatTime renders the time part of t.
func (f *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(f.timeLayout)
}

// FormatDateTime renders t with the combined layout.
func (f *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(f.dateTimeLayout)
}

// groupDigits inserts the group separator every three digits from the
// right: "1234567" becomes "1,234,567".
func (f *LocaleFormat) groupDigits(digits string) string {
	if len(digits) <= 3 || f.groupSep == "" {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + (len(digits)-1)/3*len(f.groupSep))

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for idx := head; idx < len(digits); idx += 3 {
		if b.Len() > 0 {
			b.WriteString(f.groupSep)
		}
		b.WriteString(digits[idx : idx+3])
	}
	return b.String()
}

// splitFixed rounds n to the given number of decimal places and returns
// the integer digits, the fractional digits, and the sign separately.
func splitFixed(n float64, places int) (digits, frac string, neg bool) {
	s := strconv.FormatFloat(n, 'f', places, 64)
	if neg = strings.HasPrefix(s, "-"); neg {
		s = s[1:]
	}
	digits, frac, _ = strings.Cut(s, ".")
	// Rounding a tiny negative like -0.001 leaves "-0"; treat it as 0.
	if neg && digits == "0" && strings.Trim(frac, "0") == "" {
		neg = false
	}
	return digits, frac, neg
}
