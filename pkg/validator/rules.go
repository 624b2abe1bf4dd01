package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule is one evaluated check. Failed reports whether the check tripped,
// and Error describes the failure it contributes to Apply's result.
type Rule struct {
	Error  ValidationError
	Failed bool
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredString fails when value is empty or only whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Failed: strings.TrimSpace(value) == "",
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString fails when value is shorter than min characters.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Failed: utf8.RuneCountInString(value) < min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters", min),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenString fails when value is longer than max characters.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Failed: utf8.RuneCountInString(value) > max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters", max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// LenString fails when value is not exactly length characters.
func LenString(field, value string, length int) Rule {
	return Rule{
		Failed: utf8.RuneCountInString(value) != length,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be exactly %d characters", length),
			TranslationKey:    "validation.exact_length",
			TranslationValues: map[string]any{"field": field, "length": length},
		},
	}
}

// RequiredSlice fails when value has no elements.
func RequiredSlice[T any](field string, value []T) Rule {
	return Rule{
		Failed: len(value) == 0,
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenSlice fails when value has fewer than min elements.
func MinLenSlice[T any](field string, value []T, min int) Rule {
	return Rule{
		Failed: len(value) < min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must contain at least %d items", min),
			TranslationKey:    "validation.min_items",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxLenSlice fails when value has more than max elements.
func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return Rule{
		Failed: len(value) > max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must contain at most %d items", max),
			TranslationKey:    "validation.max_items",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}

// LenSlice fails when value does not have exactly count elements.
func LenSlice[T any](field string, value []T, count int) Rule {
	return Rule{
		Failed: len(value) != count,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must contain exactly %d items", count),
			TranslationKey:    "validation.exact_items",
			TranslationValues: map[string]any{"field": field, "count": count},
		},
	}
}

// RequiredMap fails when value has no entries.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return Rule{
		Failed: len(value) == 0,
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// RequiredNum fails when value is zero.
func RequiredNum[T number](field string, value T) Rule {
	return Rule{
		Failed: value == 0,
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinNum fails when value is less than min.
func MinNum[T number](field string, value, min T) Rule {
	return Rule{
		Failed: value < min,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %v", min),
			TranslationKey:    "validation.min",
			TranslationValues: map[string]any{"field": field, "min": min},
		},
	}
}

// MaxNum fails when value is greater than max.
func MaxNum[T number](field string, value, max T) Rule {
	return Rule{
		Failed: value > max,
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %v", max),
			TranslationKey:    "validation.max",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}
