package domain

// SignalSet is the merged evidence mapping a score calculator consumes.
// Keys are provider-specific and optional: a missing key means "no
// evidence", never a pass or a penalty. Values are booleans, integers,
// strings, or lists of strings depending on the signal.
type SignalSet map[string]any

// Bool returns the boolean value for key, treating a missing key or a
// non-boolean value as false (no evidence).
func (s SignalSet) Bool(key string) bool {
	v, ok := s[key].(bool)
	return ok && v
}

// Int returns the integer value for key, or 0 when absent. Values that
// arrive as float64 (JSON round-trips) are truncated.
func (s SignalSet) Int(key string) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// String returns the string value for key, or "" when absent.
func (s SignalSet) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Strings returns the string-list value for key. JSON decoding yields
// []any, so both shapes are accepted. Missing keys yield nil.
func (s SignalSet) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Merge copies every key of other into s, overwriting on collision.
// Last writer wins, so callers must merge in a deterministic order.
func (s SignalSet) Merge(other SignalSet) {
	for k, v := range other {
		s[k] = v
	}
}

// Clone returns a shallow copy so reports can hold details without
// sharing the assessment's map.
func (s SignalSet) Clone() SignalSet {
	out := make(SignalSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
