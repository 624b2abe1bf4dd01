package validator

import (
	"errors"
	"strings"
)

// ValidationError describes a single failed rule on a single field.
// Message holds the English default; TranslationKey and TranslationValues
// let callers re-render it in another language via Translate.
type ValidationError struct {
	TranslationValues map[string]any
	Field             string
	Message           string
	TranslationKey    string
}

// ValidationErrors collects every failure from one Apply call.
// It implements error so it can travel through normal error returns.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the failure messages recorded for a field.
func (ve ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range ve {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// GetErrors returns the full error entries recorded for a field.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errs []ValidationError
	for _, e := range ve {
		if e.Field == field {
			errs = append(errs, e)
		}
	}
	return errs
}

// Messages groups failure messages by field, in the shape error response
// bodies render them.
func (ve ValidationErrors) Messages() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// TranslateFunc renders a translation key with its values.
type TranslateFunc func(key string, values map[string]any) string

// Translate rewrites each Message in place using fn. Entries without a
// TranslationKey keep their current Message. A nil fn is a no-op.
func (ve ValidationErrors) Translate(fn TranslateFunc) {
	if fn == nil {
		return
	}
	for i := range ve {
		if ve[i].TranslationKey == "" {
			continue
		}
		ve[i].Message = fn(ve[i].TranslationKey, ve[i].TranslationValues)
	}
}

// Apply evaluates the given rules and returns the collected failures as a
// ValidationErrors, or nil when every rule passed.
func Apply(rules ...Rule) error {
	var ve ValidationErrors
	for _, r := range rules {
		if r.Failed {
			ve = append(ve, r.Error)
		}
	}
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// IsValidationError reports whether err carries field-level failures.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Validatable is implemented by request types that carry their own rules.
type Validatable interface {
	Validate() error
}

// ValidateStruct runs v's own validation when it declares any. Types that
// do not implement Validatable pass unconditionally.
func ValidateStruct(v any) error {
	if val, ok := v.(Validatable); ok {
		return val.Validate()
	}
	return nil
}
