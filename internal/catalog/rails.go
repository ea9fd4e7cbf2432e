// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog assembles product listings and homepage rails from the
// storage gateway. It resolves category names, formats products for
// display and combines rail membership with category membership while
// keeping rails in rank order.
package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"oracatalog/internal/models"
	"oracatalog/internal/store"
)

// DefaultRailConcurrency bounds the per-rail product fetches in flight
// for a single request.
const DefaultRailConcurrency = 4

// RailAssembler builds flat product listings and rails with their
// products. It holds no state between calls.
type RailAssembler struct {
	q           Querier
	resolver    *CategoryResolver
	concurrency int
}

// NewRailAssembler returns an assembler reading through q. concurrency
// caps parallel per-rail fetches; values below 1 use
// DefaultRailConcurrency.
func NewRailAssembler(q Querier, resolver *CategoryResolver, concurrency int) *RailAssembler {
	if concurrency < 1 {
		concurrency = DefaultRailConcurrency
	}
	return &RailAssembler{q: q, resolver: resolver, concurrency: concurrency}
}

// TopProducts returns the first limit products by ascending id.
func (a *RailAssembler) TopProducts(ctx context.Context, limit int) ([]models.Product, error) {
	limit = ClampLimit(limit, DefaultTopLimit)

	rows, err := a.q.Query(ctx, queryTopProducts, limit)
	if err != nil {
		return nil, err
	}
	return formatRows(rows), nil
}

// ProductsByCategory lists the products of the named category by
// ascending id. An unknown category yields no products and the display
// name models.UnknownCategoryName.
func (a *RailAssembler) ProductsByCategory(ctx context.Context, name string, limit int) (models.CategoryProducts, error) {
	limit = ClampLimit(limit, DefaultCategoryLimit)

	cat, found, err := a.resolver.Resolve(ctx, name)
	if err != nil {
		return models.CategoryProducts{}, err
	}
	if !found {
		return models.CategoryProducts{
			Category: models.UnknownCategoryName,
			Products: []models.Product{},
		}, nil
	}

	rows, err := a.q.Query(ctx, queryProductsByCategory, cat.ID, limit)
	if err != nil {
		return models.CategoryProducts{}, err
	}
	return models.CategoryProducts{Category: cat.Name, Products: formatRows(rows)}, nil
}

// HomeRails returns the homepage rails in rank order, each with up to
// perRail products in mapping order.
//
// With a nil filter every rail is returned, including rails with no
// products. With a filter, only products of that category are kept and
// rails left empty are dropped; an unknown category yields no rails at
// all.
func (a *RailAssembler) HomeRails(ctx context.Context, filter *string, perRail int) ([]models.RailResult, error) {
	perRail = ClampLimit(perRail, DefaultRailLimit)

	if filter == nil {
		rails, err := a.rails(ctx, models.PageHome)
		if err != nil {
			return nil, err
		}
		products, err := a.fillRails(ctx, rails, func(ctx context.Context, rail models.Rail) ([]models.Product, error) {
			return a.products(ctx, queryRailProducts, rail.ID, perRail)
		})
		if err != nil {
			return nil, err
		}
		return railResults(rails, products, true), nil
	}

	cat, found, err := a.resolver.Resolve(ctx, *filter)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.RailResult{}, nil
	}

	rails, err := a.rails(ctx, models.PageHome)
	if err != nil {
		return nil, err
	}
	products, err := a.fillRails(ctx, rails, func(ctx context.Context, rail models.Rail) ([]models.Product, error) {
		return a.products(ctx, queryRailProductsInCategory, rail.ID, cat.ID, perRail)
	})
	if err != nil {
		return nil, err
	}
	return railResults(rails, products, false), nil
}

// rails loads the rail definitions for page in ascending rank.
func (a *RailAssembler) rails(ctx context.Context, page string) ([]models.Rail, error) {
	rows, err := a.q.Query(ctx, queryRails, page, models.EntityTypeRail)
	if err != nil {
		return nil, err
	}

	rails := make([]models.Rail, 0, len(rows))
	for _, row := range rows {
		id, err := row.Int64("id")
		if err != nil {
			return nil, &store.StorageError{Op: "decode rail", Err: err}
		}
		rank, err := row.Int64("rank")
		if err != nil {
			return nil, &store.StorageError{Op: "decode rail", Err: err}
		}
		rails = append(rails, models.Rail{
			ID:     id,
			Header: row.String("header"),
			Rank:   int(rank),
			Page:   row.String("page"),
		})
	}
	return rails, nil
}

// products runs a product query and formats the result.
func (a *RailAssembler) products(ctx context.Context, sql string, args ...any) ([]models.Product, error) {
	rows, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return formatRows(rows), nil
}

// fillRails fetches the products of every rail concurrently. Results land
// in a slot per rail index, so the returned slice lines up with rails
// regardless of completion order. The first failure cancels the
// remaining fetches.
func (a *RailAssembler) fillRails(ctx context.Context, rails []models.Rail, fetch func(context.Context, models.Rail) ([]models.Product, error)) ([][]models.Product, error) {
	slots := make([][]models.Product, len(rails))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, rail := range rails {
		g.Go(func() error {
			products, err := fetch(gctx, rail)
			if err != nil {
				return err
			}
			slots[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("rails filled", "rails", len(rails))
	return slots, nil
}

// railResults pairs rails with their products. Empty rails are kept only
// when keepEmpty is set.
func railResults(rails []models.Rail, products [][]models.Product, keepEmpty bool) []models.RailResult {
	results := make([]models.RailResult, 0, len(rails))
	for i, rail := range rails {
		if len(products[i]) == 0 && !keepEmpty {
			continue
		}
		items := products[i]
		if items == nil {
			items = []models.Product{}
		}
		results = append(results, models.RailResult{
			ID:       rail.ID,
			Header:   rail.Header,
			Products: items,
		})
	}
	return results
}
