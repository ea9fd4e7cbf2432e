// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the catalog read API over HTTP. Each handler
// maps a route onto one catalog query and writes the result as JSON.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"oracatalog/internal/catalog"
	"oracatalog/internal/middleware"
	"oracatalog/internal/models"
)

// Catalog is the read API the product handlers serve. *catalog.Service
// implements it.
type Catalog interface {
	TopProducts(ctx context.Context, limit int) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, name string, limit int) (models.CategoryProducts, error)
	HomeRails(ctx context.Context, perRail int) ([]models.RailResult, error)
	RailsByCategory(ctx context.Context, name string, perRail int) ([]models.RailResult, error)
}

// Products groups the /api/products handlers.
type Products struct {
	catalog Catalog
	debug   bool
}

// NewProducts creates the product handlers. With debug set, failed
// requests carry the underlying error in a "detail" field.
func NewProducts(c Catalog, debug bool) *Products {
	return &Products{catalog: c, debug: debug}
}

// Top handles GET /api/products/top.
func (h *Products) Top(w http.ResponseWriter, r *http.Request) {
	limit := catalog.ParseLimit(r.URL.Query().Get("limit"), catalog.DefaultTopLimit)

	products, err := h.catalog.TopProducts(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch top products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// ByCategory handles GET /api/products/category/{categoryName}.
func (h *Products) ByCategory(w http.ResponseWriter, r *http.Request) {
	name := categoryParam(r)
	limit := catalog.ParseLimit(r.URL.Query().Get("limit"), catalog.DefaultCategoryLimit)

	result, err := h.catalog.ProductsByCategory(r.Context(), name, limit)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch products for category", "category", name)
		return
	}
	if result.Products == nil {
		result.Products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, result)
}

// HomeRails handles GET /api/products/home-rails.
func (h *Products) HomeRails(w http.ResponseWriter, r *http.Request) {
	perRail := catalog.ParseLimit(r.URL.Query().Get("limit"), catalog.DefaultRailLimit)

	rails, err := h.catalog.HomeRails(r.Context(), perRail)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch home rails")
		return
	}
	writeJSON(w, http.StatusOK, nonNilRails(rails))
}

// RailsByCategory handles GET /api/products/rails-by-category/{categoryName}.
func (h *Products) RailsByCategory(w http.ResponseWriter, r *http.Request) {
	name := categoryParam(r)
	perRail := catalog.ParseLimit(r.URL.Query().Get("limit"), catalog.DefaultRailLimit)

	rails, err := h.catalog.RailsByCategory(r.Context(), name, perRail)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch category-filtered rails", "category", name)
		return
	}
	writeJSON(w, http.StatusOK, nonNilRails(rails))
}

// fail logs err and writes a 500 with the public message.
func (h *Products) fail(w http.ResponseWriter, r *http.Request, err error, message string, attrs ...any) {
	attrs = append(attrs,
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	slog.Error(message, attrs...)

	resp := errorResponse{Error: message}
	if h.debug {
		resp.Detail = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

// categoryParam returns the decoded {categoryName} path segment. chi
// matches on the escaped path when one exists, so "Home%20Decor" arrives
// still encoded.
func categoryParam(r *http.Request) string {
	raw := chi.URLParam(r, "categoryName")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// nonNilRails makes sure rails and their product lists encode as [].
func nonNilRails(rails []models.RailResult) []models.RailResult {
	if rails == nil {
		return []models.RailResult{}
	}
	for i := range rails {
		if rails[i].Products == nil {
			rails[i].Products = []models.Product{}
		}
	}
	return rails
}
