package validator_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrymomot/anvil/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderKey substitutes {{name}} tokens from values into a fixed catalog,
// standing in for a real translation layer.
func renderKey(key string, values map[string]any) string {
	catalog := map[string]string{
		"validation.required":   "Das Feld {{field}} ist erforderlich.",
		"validation.min_length": "{{field}} braucht mindestens {{min}} Zeichen.",
		"validation.max_items":  "{{field}} darf höchstens {{max}} Einträge haben.",
		"validation.min":        "{{field}} muss mindestens {{min}} sein.",
	}

	out, ok := catalog[key]
	if !ok {
		return key
	}
	for name, value := range values {
		out = strings.ReplaceAll(out, "{{"+name+"}}", fmt.Sprintf("%v", value))
	}
	return out
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	t.Run("rewrites messages in place", func(t *testing.T) {
		t.Parallel()

		ve := validator.ValidationErrors{
			{
				Field:             "email",
				Message:           "is required",
				TranslationKey:    "validation.required",
				TranslationValues: map[string]any{"field": "email"},
			},
			{
				Field:             "password",
				Message:           "must be at least 8 characters",
				TranslationKey:    "validation.min_length",
				TranslationValues: map[string]any{"field": "password", "min": 8},
			},
		}

		ve.Translate(renderKey)

		assert.Equal(t, "Das Feld email ist erforderlich.", ve[0].Message)
		assert.Equal(t, "password braucht mindestens 8 Zeichen.", ve[1].Message)
	})

	t.Run("only the message changes", func(t *testing.T) {
		t.Parallel()

		ve := validator.ValidationErrors{{
			Field:             "email",
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": "email"},
		}}

		ve.Translate(renderKey)

		assert.Equal(t, "email", ve[0].Field)
		assert.Equal(t, "validation.required", ve[0].TranslationKey)
		assert.Equal(t, map[string]any{"field": "email"}, ve[0].TranslationValues)
	})

	t.Run("entry without a key keeps its message", func(t *testing.T) {
		t.Parallel()

		ve := validator.ValidationErrors{{Field: "name", Message: "looks wrong"}}
		ve.Translate(renderKey)

		assert.Equal(t, "looks wrong", ve[0].Message)
	})

	t.Run("nil fn and empty list are no-ops", func(t *testing.T) {
		t.Parallel()

		ve := validator.ValidationErrors{{Field: "email", Message: "is required", TranslationKey: "validation.required"}}
		ve.Translate(nil)
		assert.Equal(t, "is required", ve[0].Message)

		var empty validator.ValidationErrors
		empty.Translate(renderKey)
		assert.Empty(t, empty)
	})
}

func TestTranslateAppliedFailures(t *testing.T) {
	t.Parallel()

	err := validator.Apply(
		validator.RequiredString("email", "  "),
		validator.MinLenString("password", "abc", 8),
		validator.MaxLenSlice("tags", []string{"a", "b", "c"}, 2),
		validator.MinNum("age", 15, 18),
	)
	require.Error(t, err)
	require.True(t, validator.IsValidationError(err))

	ve := validator.ExtractValidationErrors(err)
	require.NotNil(t, ve)
	ve.Translate(renderKey)

	assert.Equal(t, []string{"Das Feld email ist erforderlich."}, ve.Get("email"))
	assert.Equal(t, []string{"password braucht mindestens 8 Zeichen."}, ve.Get("password"))
	assert.Equal(t, []string{"tags darf höchstens 2 Einträge haben."}, ve.Get("tags"))
	assert.Equal(t, []string{"age muss mindestens 18 sein."}, ve.Get("age"))

	pwd := ve.GetErrors("password")
	require.Len(t, pwd, 1)
	assert.Equal(t, "validation.min_length", pwd[0].TranslationKey)
	assert.Equal(t, 8, pwd[0].TranslationValues["min"])
}

func TestRuleTranslationKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   validator.Rule
		key    string
		values map[string]any
	}{
		{
			name:   "required string",
			rule:   validator.RequiredString("email", ""),
			key:    "validation.required",
			values: map[string]any{"field": "email"},
		},
		{
			name:   "required slice",
			rule:   validator.RequiredSlice("tags", []string(nil)),
			key:    "validation.required",
			values: map[string]any{"field": "tags"},
		},
		{
			name:   "required map",
			rule:   validator.RequiredMap("labels", map[string]string(nil)),
			key:    "validation.required",
			values: map[string]any{"field": "labels"},
		},
		{
			name:   "required number",
			rule:   validator.RequiredNum("age", 0),
			key:    "validation.required",
			values: map[string]any{"field": "age"},
		},
		{
			name:   "min length",
			rule:   validator.MinLenString("password", "123", 8),
			key:    "validation.min_length",
			values: map[string]any{"field": "password", "min": 8},
		},
		{
			name:   "max length",
			rule:   validator.MaxLenString("username", "verylongusername", 10),
			key:    "validation.max_length",
			values: map[string]any{"field": "username", "max": 10},
		},
		{
			name:   "exact length",
			rule:   validator.LenString("code", "1234", 6),
			key:    "validation.exact_length",
			values: map[string]any{"field": "code", "length": 6},
		},
		{
			name:   "min items",
			rule:   validator.MinLenSlice("tags", []string{"a"}, 2),
			key:    "validation.min_items",
			values: map[string]any{"field": "tags", "min": 2},
		},
		{
			name:   "max items",
			rule:   validator.MaxLenSlice("tags", []string{"a", "b", "c"}, 2),
			key:    "validation.max_items",
			values: map[string]any{"field": "tags", "max": 2},
		},
		{
			name:   "exact items",
			rule:   validator.LenSlice("pair", []int{1}, 2),
			key:    "validation.exact_items",
			values: map[string]any{"field": "pair", "count": 2},
		},
		{
			name:   "min number",
			rule:   validator.MinNum("age", 15, 18),
			key:    "validation.min",
			values: map[string]any{"field": "age", "min": 18},
		},
		{
			name:   "max number",
			rule:   validator.MaxNum("score", 105, 100),
			key:    "validation.max",
			values: map[string]any{"field": "score", "max": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.True(t, tt.rule.Failed)
			assert.Equal(t, tt.key, tt.rule.Error.TranslationKey)
			assert.Equal(t, tt.values, tt.rule.Error.TranslationValues)
		})
	}
}
