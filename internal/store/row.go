// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strconv"
)

// Row maps column names to the values the driver decoded for them.
type Row map[string]any

// Value returns the raw column value, or nil when the column is absent
// or NULL.
func (r Row) Value(col string) any {
	return r[col]
}

// String returns the column as text. NULL and absent columns yield "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// NullString returns nil for NULL or absent columns and a pointer to the
// text value otherwise.
func (r Row) NullString(col string) *string {
	if r[col] == nil {
		return nil
	}
	s := r.String(col)
	return &s
}

// Int64 returns the column as an integer. Integer columns of any width
// are accepted, as are decimal strings.
func (r Row) Int64(col string) (int64, error) {
	switch v := r[col].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", col, err)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("column %q is null", col)
	default:
		return 0, fmt.Errorf("column %q: unexpected type %T", col, v)
	}
}
