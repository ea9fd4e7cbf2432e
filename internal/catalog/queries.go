// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

// Every limit is a bound parameter; nothing from a request is ever
// interpolated into query text.
const (
	queryResolveCategory = `
		SELECT id, name
		FROM category
		WHERE LOWER(name) = LOWER($1)
		ORDER BY id
		LIMIT 1`

	queryTopProducts = `
		SELECT name, price, image
		FROM products
		ORDER BY id
		LIMIT $1`

	queryProductsByCategory = `
		SELECT name, price, image
		FROM products
		WHERE parent_category_id = $1
		ORDER BY id
		LIMIT $2`

	queryRails = `
		SELECT id, header, rank, page
		FROM entity
		WHERE page = $1 AND entity_type = $2
		ORDER BY rank ASC, id ASC`

	queryRailProducts = `
		SELECT p.name, p.price, p.image
		FROM entity_product_mapping m
		INNER JOIN products p ON m.product_id = p.id
		WHERE m.entity_id = $1
		ORDER BY m.id
		LIMIT $2`

	queryRailProductsInCategory = `
		SELECT p.name, p.price, p.image
		FROM entity_product_mapping m
		INNER JOIN products p ON m.product_id = p.id
		WHERE m.entity_id = $1
		  AND p.parent_category_id = $2
		ORDER BY m.id
		LIMIT $3`
)
