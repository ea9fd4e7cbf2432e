package catalog

import "strconv"

// Result-size bounds. Any requested limit outside [1, MaxLimit] is
// replaced by the default for the operation.
const (
	MaxLimit = 100

	DefaultTopLimit      = 3
	DefaultCategoryLimit = 10
	DefaultRailLimit     = 12
)

// ClampLimit returns n when it lies in [1, MaxLimit] and def otherwise.
func ClampLimit(n, def int) int {
	if n < 1 || n > MaxLimit {
		return def
	}
	return n
}

// ParseLimit reads a client-supplied limit. Empty, non-integer and
// out-of-range input all yield def.
func ParseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return ClampLimit(n, def)
}
