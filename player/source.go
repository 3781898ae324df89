package player

import (
	"fmt"
	"strconv"
)

// Track references arrive in one of three shapes: a numeric identifier, a
// path string, or an already-loaded Handle. The gate below normalizes any of
// them and rejects everything else.

// TypeError reports a track reference outside the allowed shapes.
type TypeError struct {
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf(
		"unsupported track reference %T (allowed: int, int64, float64, string, player.Handle)",
		e.Value,
	)
}

// CheckSource returns a *TypeError if v is not an accepted reference shape.
func CheckSource(v any) error {
	switch v.(type) {
	case Handle, string, int, int64, float64:
		return nil
	default:
		return &TypeError{Value: v}
	}
}

// SourceString returns the string form of a track reference: a handle yields
// its source path, numbers their decimal form, strings pass through.
func SourceString(v any) (string, error) {
	switch ref := v.(type) {
	case Handle:
		return ref.Source(), nil
	case string:
		return ref, nil
	case int:
		return strconv.Itoa(ref), nil
	case int64:
		return strconv.FormatInt(ref, 10), nil
	case float64:
		return strconv.FormatFloat(ref, 'f', -1, 64), nil
	default:
		return "", &TypeError{Value: v}
	}
}

// ResolveHandle converts a track reference into a playable handle. A handle
// passes through unchanged; any other accepted shape is resolved through the
// loader. Loader failures surface to the caller unchanged.
func ResolveHandle(load LoadFunc, v any) (Handle, error) {
	if h, ok := v.(Handle); ok {
		return h, nil
	}
	path, err := SourceString(v)
	if err != nil {
		return nil, err
	}
	return load(path)
}
