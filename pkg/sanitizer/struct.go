package sanitizer

import (
	"errors"
	"reflect"
	"strings"
)

// ErrInvalidTarget is returned when SanitizeStruct receives anything but
// a non-nil struct pointer.
var ErrInvalidTarget = errors.New("sanitizer: target must be a non-nil struct pointer")

// SanitizeStruct rewrites v's string fields in place according to their
// `sanitize` struct tags. The tag holds a comma-separated op list applied
// in order:
//
//	trim   strings.TrimSpace
//	lower  strings.ToLower
//	html   SanitizeHTML (safe formatting kept)
//	strip  StripHTML (plain text only)
//
// Untagged string fields are left untouched. Nested structs, struct
// pointers, and slices are walked recursively.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	sanitizeFields(rv.Elem())
	return nil
}

func sanitizeFields(rv reflect.Value) {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		sanitizeField(rv.Field(i), parseOps(field.Tag.Get("sanitize")))
	}
}

func sanitizeField(fv reflect.Value, ops []string) {
	switch fv.Kind() {
	case reflect.String:
		if len(ops) > 0 && fv.CanSet() {
			fv.SetString(applyOps(fv.String(), ops))
		}
	case reflect.Struct:
		sanitizeFields(fv)
	case reflect.Pointer:
		if fv.IsNil() {
			return
		}
		sanitizeField(fv.Elem(), ops)
	case reflect.Slice:
		for i := range fv.Len() {
			sanitizeField(fv.Index(i), ops)
		}
	}
}

func applyOps(s string, ops []string) string {
	for _, op := range ops {
		switch op {
		case "trim":
			s = strings.TrimSpace(s)
		case "lower":
			s = strings.ToLower(s)
		case "html":
			s = SanitizeHTML(s)
		case "strip":
			s = StripHTML(s)
		}
	}
	return s
}

func parseOps(tag string) []string {
	if tag == "" {
		return nil
	}
	ops := strings.Split(tag, ",")
	for i := range ops {
		ops[i] = strings.TrimSpace(ops[i])
	}
	return ops
}
