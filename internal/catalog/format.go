// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"oracatalog/internal/models"
	"oracatalog/internal/store"
)

const (
	// PricePrefix precedes the raw stored price in every price label.
	PricePrefix = "Starting at ₹"

	// PlaceholderImageURL replaces missing product images.
	PlaceholderImageURL = "https://via.placeholder.com/160x160?text=No+Image"
)

// FormatProduct projects a stored product onto its listing shape. Only
// name, price and image survive; the price is never rounded or converted.
func FormatProduct(raw models.RawProduct) models.Product {
	imageURL := PlaceholderImageURL
	if raw.Image != nil && strings.TrimSpace(*raw.Image) != "" {
		imageURL = *raw.Image
	}
	return models.Product{
		Name:     raw.Name,
		Price:    PricePrefix + priceText(raw.Price),
		ImageURL: imageURL,
	}
}

// rawProduct reads the name, price and image columns of a product row.
func rawProduct(row store.Row) models.RawProduct {
	return models.RawProduct{
		Name:  row.String("name"),
		Price: row.Value("price"),
		Image: row.NullString("image"),
	}
}

// formatRows formats every row, always returning a non-nil slice.
func formatRows(rows []store.Row) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, FormatProduct(rawProduct(row)))
	}
	return products
}

// priceText renders a stored price as the driver handed it over. Floats
// go through decimal so large values never switch to exponent notation.
func priceText(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	case []byte:
		return string(p)
	case int:
		return strconv.Itoa(p)
	case int32:
		return strconv.FormatInt(int64(p), 10)
	case int64:
		return strconv.FormatInt(p, 10)
	case uint64:
		return strconv.FormatUint(p, 10)
	case float32:
		return decimal.NewFromFloat32(p).String()
	case float64:
		return decimal.NewFromFloat(p).String()
	case decimal.Decimal:
		return p.String()
	case pgtype.Numeric:
		return numericText(p)
	case driver.Valuer:
		// Other driver types expose their storage form here.
		val, err := p.Value()
		if err != nil || val == nil {
			return ""
		}
		if _, nested := val.(driver.Valuer); nested {
			return fmt.Sprint(val)
		}
		return priceText(val)
	case fmt.Stringer:
		return p.String()
	default:
		return fmt.Sprint(p)
	}
}

// numericText renders a NUMERIC column with the scale it was stored at,
// so 1999.50 stays "1999.50".
func numericText(n pgtype.Numeric) string {
	switch {
	case !n.Valid:
		return ""
	case n.NaN:
		return "NaN"
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity"
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity"
	case n.Int == nil:
		return "0"
	}
	d := decimal.NewFromBigInt(n.Int, n.Exp)
	if n.Exp < 0 {
		return d.StringFixed(-n.Exp)
	}
	return d.String()
}
