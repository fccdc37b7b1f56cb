package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type variantSeed struct {
	SKU      string
	Color    string
	ColorHex string
	Size     string
	Price    string
	Original string
	Stock    int
}

type productSeed struct {
	Name        string
	Slug        string
	Description string
	Category    string
	SubCategory string
	Tags        []string
	Featured    bool
	Trending    bool
	NewArrival  bool
	Variants    []variantSeed
}

type couponSeed struct {
	Code          string
	DiscountType  string
	DiscountValue string
	MinOrderValue string
	MaxDiscount   string
	ExpiresInDays int
	IsActive      bool
}

// Apply inserts demo catalog data for manual testing. It is idempotent via
// ON CONFLICT upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := map[string][]string{
		"men":         {"t-shirts", "jeans", "jackets"},
		"women":       {"dresses", "tops", "skirts"},
		"accessories": {"bags", "belts"},
	}
	for slug, subs := range categories {
		if err := upsertCategory(ctx, pool, slug, subs); err != nil {
			return fmt.Errorf("upsert category %s: %w", slug, err)
		}
	}

	products := []productSeed{
		{
			Name:        "Classic Cotton Tee",
			Slug:        "classic-cotton-tee",
			Description: "Soft combed-cotton tee with a relaxed fit",
			Category:    "men",
			SubCategory: "t-shirts",
			Tags:        []string{"cotton", "basics"},
			Featured:    true,
			Variants: []variantSeed{
				{SKU: "TEE-BLK-M", Color: "Black", ColorHex: "#111111", Size: "M", Price: "25.00", Stock: 40},
				{SKU: "TEE-BLK-L", Color: "Black", ColorHex: "#111111", Size: "L", Price: "25.00", Stock: 32},
				{SKU: "TEE-WHT-M", Color: "White", ColorHex: "#fafafa", Size: "M", Price: "25.00", Stock: 25},
			},
		},
		{
			Name:        "Slim Fit Denim Jeans",
			Slug:        "slim-fit-denim-jeans",
			Description: "Stretch denim with a modern slim cut",
			Category:    "men",
			SubCategory: "jeans",
			Tags:        []string{"denim"},
			Trending:    true,
			Variants: []variantSeed{
				{SKU: "JNS-IND-32", Color: "Indigo", ColorHex: "#3f4e6b", Size: "32", Price: "59.99", Original: "79.99", Stock: 18},
				{SKU: "JNS-IND-34", Color: "Indigo", ColorHex: "#3f4e6b", Size: "34", Price: "59.99", Original: "79.99", Stock: 12},
			},
		},
		{
			Name:        "Floral Summer Dress",
			Slug:        "floral-summer-dress",
			Description: "Lightweight printed dress for warm days",
			Category:    "women",
			SubCategory: "dresses",
			Tags:        []string{"summer", "floral"},
			Featured:    true,
			NewArrival:  true,
			Variants: []variantSeed{
				{SKU: "DRS-FLR-S", Color: "Coral", ColorHex: "#ff7f6e", Size: "S", Price: "64.00", Stock: 10},
				{SKU: "DRS-FLR-M", Color: "Coral", ColorHex: "#ff7f6e", Size: "M", Price: "64.00", Stock: 8},
			},
		},
		{
			Name:        "Leather Crossbody Bag",
			Slug:        "leather-crossbody-bag",
			Description: "Compact full-grain leather bag with brass hardware",
			Category:    "accessories",
			SubCategory: "bags",
			Tags:        []string{"leather"},
			Variants: []variantSeed{
				{SKU: "BAG-TAN-OS", Color: "Tan", ColorHex: "#b08850", Size: "OS", Price: "120.00", Stock: 6},
			},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	coupons := []couponSeed{
		{Code: "SUMMER50", DiscountType: "percentage", DiscountValue: "50", MinOrderValue: "0", MaxDiscount: "30", ExpiresInDays: 90, IsActive: true},
		{Code: "WELCOME10", DiscountType: "percentage", DiscountValue: "10", MinOrderValue: "50", ExpiresInDays: 365, IsActive: true},
		{Code: "FLAT20", DiscountType: "fixed", DiscountValue: "20", MinOrderValue: "100", ExpiresInDays: 30, IsActive: true},
		{Code: "VINTAGE", DiscountType: "fixed", DiscountValue: "15", MinOrderValue: "0", ExpiresInDays: -30, IsActive: false},
	}
	for _, c := range coupons {
		if err := upsertCoupon(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, slug string, subSlugs []string) error {
	const q = `
INSERT INTO categories (name, slug)
VALUES (initcap($1), $1)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, slug).Scan(&id); err != nil {
		return err
	}

	const subQ = `
INSERT INTO sub_categories (category_id, name, slug)
VALUES ($1::uuid, initcap(replace($2, '-', ' ')), $2)
ON CONFLICT (category_id, slug) DO UPDATE SET name = EXCLUDED.name
`
	for _, sub := range subSlugs {
		if _, err := pool.Exec(ctx, subQ, id, sub); err != nil {
			return err
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, slug, description, category, sub_category, tags, featured, trending, new_arrival)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    sub_category = EXCLUDED.sub_category,
    tags = EXCLUDED.tags,
    featured = EXCLUDED.featured,
    trending = EXCLUDED.trending,
    new_arrival = EXCLUDED.new_arrival
RETURNING id::text
`
	var productID string
	if err := pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.Category, p.SubCategory, p.Tags,
		p.Featured, p.Trending, p.NewArrival,
	).Scan(&productID); err != nil {
		return err
	}

	const vq = `
INSERT INTO product_variants (sku, product_id, color, color_hex, size, price, original_price, stock)
VALUES ($1, $2::uuid, $3, $4, $5, $6::numeric, NULLIF($7, '')::numeric, $8)
ON CONFLICT (sku) DO UPDATE
SET product_id = EXCLUDED.product_id,
    color = EXCLUDED.color,
    color_hex = EXCLUDED.color_hex,
    size = EXCLUDED.size,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    stock = EXCLUDED.stock
`
	for _, v := range p.Variants {
		if _, err := pool.Exec(ctx, vq, v.SKU, productID, v.Color, v.ColorHex, v.Size, v.Price, v.Original, v.Stock); err != nil {
			return err
		}
	}
	return nil
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, c couponSeed) error {
	const q = `
INSERT INTO coupons (code, discount_type, discount_value, min_order_value, max_discount, expires_at, is_active)
VALUES ($1, $2, $3::numeric, $4::numeric, NULLIF($5, '')::numeric, $6, $7)
ON CONFLICT (code) DO UPDATE
SET discount_type = EXCLUDED.discount_type,
    discount_value = EXCLUDED.discount_value,
    min_order_value = EXCLUDED.min_order_value,
    max_discount = EXCLUDED.max_discount,
    expires_at = EXCLUDED.expires_at,
    is_active = EXCLUDED.is_active
`
	expiresAt := time.Now().UTC().AddDate(0, 0, c.ExpiresInDays)
	_, err := pool.Exec(ctx, q, c.Code, c.DiscountType, c.DiscountValue, c.MinOrderValue, c.MaxDiscount, expiresAt, c.IsActive)
	return err
}
