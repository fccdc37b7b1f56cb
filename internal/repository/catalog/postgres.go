package catalog

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stylehub/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const productsQuery = `
SELECT id::text, name, slug, COALESCE(description, ''), COALESCE(short_description, ''),
       category, COALESCE(sub_category, ''), tags, images, featured, trending, new_arrival, created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, productsQuery)
	if err != nil {
		r.logger.Printf("catalog repo: list products error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
			&p.Category, &p.SubCategory, &p.Tags, &p.Images, &p.Featured, &p.Trending, &p.NewArrival, &p.CreatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const variantsQuery = `
SELECT product_id::text, sku, color, COALESCE(color_hex, ''), size, price, original_price, stock, COALESCE(image, '')
FROM product_variants
ORDER BY product_id, sku
`
	vrows, err := r.pool.Query(ctx, variantsQuery)
	if err != nil {
		r.logger.Printf("catalog repo: list variants error=%v", err)
		return nil, err
	}
	defer vrows.Close()

	for vrows.Next() {
		var productID string
		var v domain.Variant
		var original *decimal.Decimal
		if err := vrows.Scan(&productID, &v.SKU, &v.Color, &v.ColorHex, &v.Size, &v.Price, &original, &v.Stock, &v.Image); err != nil {
			return nil, err
		}
		v.OriginalPrice = original
		if i, ok := index[productID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	r.logger.Printf("catalog repo: loaded %d products", len(products))
	return products, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const categoriesQuery = `
SELECT id::text, name, slug, COALESCE(image, '')
FROM categories
ORDER BY name
`
	rows, err := r.pool.Query(ctx, categoriesQuery)
	if err != nil {
		r.logger.Printf("catalog repo: list categories error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	index := make(map[string]int)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image); err != nil {
			return nil, err
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const subQuery = `
SELECT category_id::text, id::text, name, slug
FROM sub_categories
ORDER BY name
`
	srows, err := r.pool.Query(ctx, subQuery)
	if err != nil {
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var categoryID string
		var sc domain.SubCategory
		if err := srows.Scan(&categoryID, &sc.ID, &sc.Name, &sc.Slug); err != nil {
			return nil, err
		}
		if i, ok := index[categoryID]; ok {
			categories[i].SubCategories = append(categories[i].SubCategories, sc)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *postgresRepo) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	const q = `
SELECT code, discount_type, discount_value, min_order_value, COALESCE(max_discount, 0), expires_at, is_active
FROM coupons
ORDER BY code
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list coupons error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue, &c.MaxDiscount, &c.ExpiresAt, &c.IsActive); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Printf("catalog repo: loaded %d coupons", len(coupons))
	return coupons, nil
}

// UpsertProduct writes one product and its variants. Used by the importer and
// seeder; the serving path only ever reads.
func (r *postgresRepo) UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const productQuery = `
INSERT INTO products (id, name, slug, description, short_description, category, sub_category, tags, images, featured, trending, new_arrival)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10, $11, $12)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    short_description = EXCLUDED.short_description,
    category = EXCLUDED.category,
    sub_category = EXCLUDED.sub_category,
    tags = EXCLUDED.tags,
    images = EXCLUDED.images,
    featured = EXCLUDED.featured,
    trending = EXCLUDED.trending,
    new_arrival = EXCLUDED.new_arrival
RETURNING id::text, created_at
`
	res := p
	if err := tx.QueryRow(ctx, productQuery,
		p.ID, p.Name, p.Slug, p.Description, p.ShortDescription,
		p.Category, p.SubCategory, p.Tags, p.Images, p.Featured, p.Trending, p.NewArrival,
	).Scan(&res.ID, &res.CreatedAt); err != nil {
		r.logger.Printf("catalog repo: upsert product slug=%s error=%v", p.Slug, err)
		return nil, err
	}

	const variantQuery = `
INSERT INTO product_variants (sku, product_id, color, color_hex, size, price, original_price, stock, image)
VALUES ($1, $2::uuid, $3, NULLIF($4, ''), $5, $6, $7, $8, NULLIF($9, ''))
ON CONFLICT (sku) DO UPDATE SET
    product_id = EXCLUDED.product_id,
    color = EXCLUDED.color,
    color_hex = EXCLUDED.color_hex,
    size = EXCLUDED.size,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    stock = EXCLUDED.stock,
    image = EXCLUDED.image
`
	for _, v := range p.Variants {
		if _, err := tx.Exec(ctx, variantQuery,
			v.SKU, res.ID, v.Color, v.ColorHex, v.Size, v.Price, v.OriginalPrice, v.Stock, v.Image,
		); err != nil {
			r.logger.Printf("catalog repo: upsert variant sku=%s error=%v", v.SKU, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("catalog repo: upserted product slug=%s variants=%d", res.Slug, len(p.Variants))
	return &res, nil
}
