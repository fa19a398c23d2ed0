package internal

import "strconv"

// Scalar lists the types the typed request helpers convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// Param returns a typed URL parameter, or the zero value when it is
// missing or malformed.
func Param[T Scalar](c Context, name string) T {
	var zero T
	return parseOr(c.Param(name), zero)
}

// Query returns a typed query parameter, or the zero value.
func Query[T Scalar](c Context, name string) T {
	var zero T
	return parseOr(c.Query(name), zero)
}

// QueryDefault returns a typed query parameter, or def when the parameter
// is missing or malformed.
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return parseOr(c.Query(name), def)
}

// ContextValue returns a value stored with c.Set, or the zero value when
// the key is unset or holds another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

func parseOr[T Scalar](raw string, def T) T {
	if raw == "" {
		return def
	}
	var (
		v   any
		err error
	)
	switch any(def).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return def
	}
	if err != nil {
		return def
	}
	return v.(T)
}
