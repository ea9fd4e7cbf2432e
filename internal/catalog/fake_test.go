// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fake_test.go provides an in-memory Querier that answers the catalog's
// queries with the same semantics PostgreSQL would, so the assembly logic
// can be tested without a database.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"oracatalog/internal/store"
)

type fakeCategory struct {
	id   int64
	name string
}

type fakeProduct struct {
	id         int64
	name       string
	price      any
	image      any
	categoryID int64
}

type fakeRail struct {
	id         int64
	header     string
	rank       int
	page       string
	entityType string
}

type fakeMapping struct {
	id        int64
	railID    int64
	productID int64
}

type fakeDB struct {
	categories []fakeCategory
	products   []fakeProduct
	rails      []fakeRail
	mappings   []fakeMapping

	// failOn makes queries whose text equals the key return the error.
	failOn map[string]error
	// delay is applied before answering, honoring ctx cancellation.
	delay func(sql string, args []any) time.Duration

	mu    sync.Mutex
	calls []fakeCall
}

type fakeCall struct {
	sql  string
	args []any
}

func (f *fakeDB) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeDB) callsTo(sql string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.sql == sql {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) ([]store.Row, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{sql: sql, args: args})
	f.mu.Unlock()

	if f.delay != nil {
		if d := f.delay(sql, args); d > 0 {
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, &store.StorageError{Op: "query", Err: ctx.Err()}
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, &store.StorageError{Op: "query", Err: err}
	}
	if err, ok := f.failOn[sql]; ok {
		return nil, err
	}

	switch sql {
	case queryResolveCategory:
		return f.resolveCategory(args[0].(string)), nil
	case queryTopProducts:
		return f.productRows(func(fakeProduct) bool { return true }, args[0].(int)), nil
	case queryProductsByCategory:
		catID := args[0].(int64)
		return f.productRows(func(p fakeProduct) bool { return p.categoryID == catID }, args[1].(int)), nil
	case queryRails:
		return f.railRows(args[0].(string), args[1].(string)), nil
	case queryRailProducts:
		return f.mappedRows(args[0].(int64), 0, args[1].(int)), nil
	case queryRailProductsInCategory:
		return f.mappedRows(args[0].(int64), args[1].(int64), args[2].(int)), nil
	}
	return nil, &store.StorageError{Op: "query", Err: fmt.Errorf("fake: unknown query %q", sql)}
}

func (f *fakeDB) resolveCategory(name string) []store.Row {
	var matches []fakeCategory
	for _, c := range f.categories {
		if strings.EqualFold(c.name, name) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return []store.Row{}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].id < matches[j].id })
	return []store.Row{{"id": matches[0].id, "name": matches[0].name}}
}

func (f *fakeDB) productRows(keep func(fakeProduct) bool, limit int) []store.Row {
	products := append([]fakeProduct(nil), f.products...)
	sort.Slice(products, func(i, j int) bool { return products[i].id < products[j].id })

	rows := []store.Row{}
	for _, p := range products {
		if len(rows) == limit {
			break
		}
		if keep(p) {
			rows = append(rows, productRow(p))
		}
	}
	return rows
}

func (f *fakeDB) railRows(page, entityType string) []store.Row {
	var rails []fakeRail
	for _, r := range f.rails {
		if r.page == page && r.entityType == entityType {
			rails = append(rails, r)
		}
	}
	sort.SliceStable(rails, func(i, j int) bool {
		if rails[i].rank != rails[j].rank {
			return rails[i].rank < rails[j].rank
		}
		return rails[i].id < rails[j].id
	})

	rows := make([]store.Row, 0, len(rails))
	for _, r := range rails {
		rows = append(rows, store.Row{"id": r.id, "header": r.header, "rank": int32(r.rank), "page": r.page})
	}
	return rows
}

func (f *fakeDB) mappedRows(railID, categoryID int64, limit int) []store.Row {
	mappings := append([]fakeMapping(nil), f.mappings...)
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].id < mappings[j].id })

	byID := make(map[int64]fakeProduct, len(f.products))
	for _, p := range f.products {
		byID[p.id] = p
	}

	rows := []store.Row{}
	for _, m := range mappings {
		if len(rows) == limit {
			break
		}
		if m.railID != railID {
			continue
		}
		p, ok := byID[m.productID]
		if !ok {
			continue
		}
		if categoryID != 0 && p.categoryID != categoryID {
			continue
		}
		rows = append(rows, productRow(p))
	}
	return rows
}

func productRow(p fakeProduct) store.Row {
	return store.Row{"name": p.name, "price": p.price, "image": p.image}
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// scenarioDB is the two-rail catalog used across tests: rail 1 holds two
// mobiles, rail 2 holds nothing.
func scenarioDB() *fakeDB {
	return &fakeDB{
		categories: []fakeCategory{
			{id: 1, name: "Mobiles"},
			{id: 2, name: "Laptops"},
		},
		products: []fakeProduct{
			{id: 1, name: "Pixel 9", price: "64999.00", image: "https://img.example.com/pixel.png", categoryID: 1},
			{id: 2, name: "Galaxy S24", price: "74999.00", image: nil, categoryID: 1},
		},
		rails: []fakeRail{
			{id: 2, header: "Laptops", rank: 2, page: "HOME", entityType: "RAIL"},
			{id: 1, header: "Top Mobiles", rank: 1, page: "HOME", entityType: "RAIL"},
		},
		mappings: []fakeMapping{
			{id: 1, railID: 1, productID: 2},
			{id: 2, railID: 1, productID: 1},
		},
	}
}
