package internal

import "strconv"

// scalar lists the types request parameters can be parsed into.
type scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or T's zero value
// when the key is absent or holds a different type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param parses the named path parameter, returning T's zero value when
// it is missing or malformed.
func Param[T scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query parses the named query parameter, returning T's zero value when
// it is missing or malformed.
func Query[T scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault parses the named query parameter, falling back to def
// when it is missing or malformed.
func QueryDefault[T scalar](c Context, name string, def T) T {
	if v, ok := parseScalar[T](c.Query(name)); ok {
		return v
	}
	return def
}

func parseScalar[T scalar](raw string) (T, bool) {
	var zero T
	if raw == "" {
		return zero, false
	}

	var (
		out any
		err error
	)
	switch any(zero).(type) {
	case string:
		out = raw
	case int:
		out, err = strconv.Atoi(raw)
	case int64:
		out, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		out, err = strconv.ParseFloat(raw, 64)
	case bool:
		out, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	return out.(T), true
}
