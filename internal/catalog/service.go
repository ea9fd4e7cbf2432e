// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"

	"oracatalog/internal/models"
	"oracatalog/internal/store"
)

// Service is the read API of the catalog. Every error it returns wraps a
// *store.StorageError; an unknown category is an empty result, not an
// error.
type Service struct {
	rails *RailAssembler
}

// NewService wires a resolver and rail assembler over q.
func NewService(q Querier, railConcurrency int) *Service {
	resolver := NewCategoryResolver(q)
	return &Service{rails: NewRailAssembler(q, resolver, railConcurrency)}
}

// TopProducts lists the first products of the catalog.
func (s *Service) TopProducts(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := s.rails.TopProducts(ctx, limit)
	if err != nil {
		return nil, storageFailure("list top products", err)
	}
	return products, nil
}

// ProductsByCategory lists the products of a category looked up by name.
func (s *Service) ProductsByCategory(ctx context.Context, name string, limit int) (models.CategoryProducts, error) {
	result, err := s.rails.ProductsByCategory(ctx, name, limit)
	if err != nil {
		return models.CategoryProducts{}, storageFailure("list products by category", err)
	}
	return result, nil
}

// HomeRails lists every homepage rail with its products.
func (s *Service) HomeRails(ctx context.Context, perRail int) ([]models.RailResult, error) {
	rails, err := s.rails.HomeRails(ctx, nil, perRail)
	if err != nil {
		return nil, storageFailure("list home rails", err)
	}
	return rails, nil
}

// RailsByCategory lists the homepage rails that hold products of the
// named category, with only those products.
func (s *Service) RailsByCategory(ctx context.Context, name string, perRail int) ([]models.RailResult, error) {
	rails, err := s.rails.HomeRails(ctx, &name, perRail)
	if err != nil {
		return nil, storageFailure("list rails by category", err)
	}
	return rails, nil
}

// storageFailure labels err with the failed operation and guarantees a
// *store.StorageError somewhere in its chain.
func storageFailure(op string, err error) error {
	var se *store.StorageError
	if !errors.As(err, &se) {
		err = &store.StorageError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
