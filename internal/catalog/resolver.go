// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"strings"

	"oracatalog/internal/models"
	"oracatalog/internal/store"
)

// Querier runs a parameterized read and returns rows keyed by column.
// *store.Gateway is the production implementation.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) ([]store.Row, error)
}

// CategoryResolver maps free-text category names to stored categories.
type CategoryResolver struct {
	q Querier
}

// NewCategoryResolver returns a resolver reading through q.
func NewCategoryResolver(q Querier) *CategoryResolver {
	return &CategoryResolver{q: q}
}

// Resolve looks up a category by name, ignoring case. A blank name is
// reported as not found without touching storage. When several
// categories collide modulo case the lowest id wins. Storage failures
// are returned as errors, never as "not found".
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (models.Category, bool, error) {
	if strings.TrimSpace(name) == "" {
		return models.Category{}, false, nil
	}

	rows, err := r.q.Query(ctx, queryResolveCategory, name)
	if err != nil {
		return models.Category{}, false, err
	}
	if len(rows) == 0 {
		return models.Category{}, false, nil
	}

	id, err := rows[0].Int64("id")
	if err != nil {
		return models.Category{}, false, &store.StorageError{Op: "decode category", Err: err}
	}
	return models.Category{ID: id, Name: rows[0].String("name")}, true, nil
}
