package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedProduct struct {
	name     string
	price    string
	image    *string
	category string
}

type seedRail struct {
	header   string
	rank     int
	products []string
}

func img(url string) *string { return &url }

var seedCategories = []string{"Mobiles", "Laptops", "Accessories"}

var seedProducts = []seedProduct{
	{"Pixel 9", "64999", img("https://images.example.com/pixel-9.png"), "Mobiles"},
	{"Galaxy S24", "74999", img("https://images.example.com/galaxy-s24.png"), "Mobiles"},
	{"iPhone 16", "79900", nil, "Mobiles"},
	{"ThinkPad X1 Carbon", "149990", img("https://images.example.com/x1-carbon.png"), "Laptops"},
	{"MacBook Air M3", "114900", img(""), "Laptops"},
	{"USB-C Charger 65W", "1999.50", img("https://images.example.com/charger.png"), "Accessories"},
	{"Wireless Earbuds", "2499", nil, "Accessories"},
}

var seedRails = []seedRail{
	{"Top mobiles near you", 1, []string{"Galaxy S24", "Pixel 9", "iPhone 16"}},
	{"Laptops for work", 2, []string{"ThinkPad X1 Carbon", "MacBook Air M3"}},
	{"Deals under 5000", 3, []string{"USB-C Charger 65W", "Wireless Earbuds", "Pixel 9"}},
	{"New arrivals", 4, nil},
}

// Seed populates the catalog with development data. It is a no-op when
// any category already exists.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM category").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		categoryIDs := make(map[string]int64, len(seedCategories))
		for _, name := range seedCategories {
			var id int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO category (name) VALUES ($1) RETURNING id`, name,
			).Scan(&id); err != nil {
				return fmt.Errorf("seed insert category %q: %w", name, err)
			}
			categoryIDs[name] = id
		}

		productIDs := make(map[string]int64, len(seedProducts))
		for _, p := range seedProducts {
			var id int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO products (name, price, image, parent_category_id)
				VALUES ($1, $2::numeric, $3, $4)
				RETURNING id
			`, p.name, p.price, p.image, categoryIDs[p.category]).Scan(&id); err != nil {
				return fmt.Errorf("seed insert product %q: %w", p.name, err)
			}
			productIDs[p.name] = id
		}

		for _, r := range seedRails {
			var railID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO entity (header, page, entity_type, rank)
				VALUES ($1, 'HOME', 'RAIL', $2)
				RETURNING id
			`, r.header, r.rank).Scan(&railID); err != nil {
				return fmt.Errorf("seed insert rail %q: %w", r.header, err)
			}
			for _, name := range r.products {
				if _, err := tx.Exec(ctx,
					`INSERT INTO entity_product_mapping (entity_id, product_id) VALUES ($1, $2)`,
					railID, productIDs[name],
				); err != nil {
					return fmt.Errorf("seed map %q to rail %q: %w", name, r.header, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("database seeded with catalog data",
		"categories", len(seedCategories),
		"products", len(seedProducts),
		"rails", len(seedRails),
	)
	return nil
}
