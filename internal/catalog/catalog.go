package catalog

import (
	"strings"

	"stylehub/internal/domain"
)

// Catalog is the read-only product/coupon lookup the store prices against.
// It is built once at startup and never mutated afterwards, so it is safe
// for concurrent readers without locking.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	coupons    []domain.Coupon

	byID       map[string]*domain.Product
	bySlug     map[string]*domain.Product
	couponByUC map[string]*domain.Coupon
	couponByCC map[string]*domain.Coupon
}

func New(products []domain.Product, categories []domain.Category, coupons []domain.Coupon) *Catalog {
	c := &Catalog{
		products:   products,
		categories: categories,
		coupons:    coupons,
		byID:       make(map[string]*domain.Product, len(products)),
		bySlug:     make(map[string]*domain.Product, len(products)),
		couponByUC: make(map[string]*domain.Coupon, len(coupons)),
		couponByCC: make(map[string]*domain.Coupon, len(coupons)),
	}
	for i := range c.products {
		p := &c.products[i]
		c.byID[p.ID] = p
		if p.Slug != "" {
			c.bySlug[p.Slug] = p
		}
	}
	for i := range c.coupons {
		cp := &c.coupons[i]
		c.couponByUC[strings.ToUpper(cp.Code)] = cp
		c.couponByCC[cp.Code] = cp
	}
	return c
}

func (c *Catalog) Products() []domain.Product {
	return c.products
}

func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

func (c *Catalog) ProductBySlug(slug string) (domain.Product, bool) {
	p, ok := c.bySlug[slug]
	if !ok {
		return domain.Product{}, false
	}
	return *p, true
}

// Variant resolves a cart line reference: product by id, then variant by sku
// within that product.
func (c *Catalog) Variant(productID, sku string) (domain.Variant, bool) {
	p, ok := c.byID[productID]
	if !ok {
		return domain.Variant{}, false
	}
	for _, v := range p.Variants {
		if v.SKU == sku {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// ActiveCoupon looks a code up case-insensitively among active coupons.
// Expiry is deliberately not part of the filter; see Coupon docs.
func (c *Catalog) ActiveCoupon(code string) (domain.Coupon, bool) {
	cp, ok := c.couponByUC[strings.ToUpper(code)]
	if !ok || !cp.IsActive {
		return domain.Coupon{}, false
	}
	return *cp, true
}

// Coupon looks up the exact canonical code, active or not. Totals use this so
// an already-applied coupon keeps discounting even if deactivated later.
func (c *Catalog) Coupon(code string) (domain.Coupon, bool) {
	cp, ok := c.couponByCC[code]
	if !ok {
		return domain.Coupon{}, false
	}
	return *cp, true
}
