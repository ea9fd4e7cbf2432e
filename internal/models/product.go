// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// RawProduct is a product row as read from the products table, before
// display formatting. Price holds whatever numeric representation the
// driver produced.
type RawProduct struct {
	Name  string
	Price any
	Image *string
}

// Product is the public listing shape of a product. Price is a
// pre-formatted display label and ImageURL is never empty.
type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
}

// CategoryProducts pairs a category display name with its products.
type CategoryProducts struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}
