// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// PageHome scopes rails to the homepage.
const PageHome = "HOME"

// EntityTypeRail marks entity rows that are product rails.
const EntityTypeRail = "RAIL"

// Rail is a ranked, named shelf of products on a page. Rails are
// displayed in ascending Rank order.
type Rail struct {
	ID     int64
	Header string
	Rank   int
	Page   string
}

// RailResult is a rail together with its formatted products, built
// fresh for each request.
type RailResult struct {
	ID       int64     `json:"id"`
	Header   string    `json:"header"`
	Products []Product `json:"products"`
}
