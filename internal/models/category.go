// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// UnknownCategoryName is the display name returned when a requested
// category does not exist.
const UnknownCategoryName = "Unknown"

// Category is a named product grouping. Names are unique modulo case;
// a product belongs to at most one category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
