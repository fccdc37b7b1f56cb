package httpserver

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stylehub/internal/domain"
)

func filterFixture() []domain.Product {
	return []domain.Product{
		{
			ID: "tee", Name: "Classic Tee", Category: "men", SubCategory: "t-shirts",
			Tags:     []string{"cotton"},
			Variants: []domain.Variant{{SKU: "TEE-M", Price: decimal.RequireFromString("25.00")}},
		},
		{
			ID: "jacket", Name: "Denim Jacket", Category: "men", SubCategory: "jackets",
			Description: "Heavy denim outerwear",
			Variants:    []domain.Variant{{SKU: "JKT-M", Price: decimal.RequireFromString("75.00")}},
		},
		{
			ID: "dress", Name: "Summer Dress", Category: "women", SubCategory: "dresses",
			Variants: []domain.Variant{
				{SKU: "DRS-S", Price: decimal.RequireFromString("64.00")},
				{SKU: "DRS-M", Price: decimal.RequireFromString("58.00")},
			},
		},
	}
}

func TestFilterProducts_ByPriceAndCategory(t *testing.T) {
	got := filterProducts(filterFixture(), productQuery{Category: "men", MinPrice: "10", MaxPrice: "30"})
	if len(got) != 1 || got[0].ID != "tee" {
		t.Fatalf("unexpected filter result %+v", got)
	}
}

func TestFilterProducts_SearchMatchesNameTagsDescription(t *testing.T) {
	if got := filterProducts(filterFixture(), productQuery{Search: "cotton"}); len(got) != 1 || got[0].ID != "tee" {
		t.Fatalf("expected tag match, got %+v", got)
	}
	if got := filterProducts(filterFixture(), productQuery{Search: "outerwear"}); len(got) != 1 || got[0].ID != "jacket" {
		t.Fatalf("expected description match, got %+v", got)
	}
	if got := filterProducts(filterFixture(), productQuery{Search: "DRESS"}); len(got) != 1 || got[0].ID != "dress" {
		t.Fatalf("expected case-insensitive name match, got %+v", got)
	}
}

func TestFilterProducts_UsesLowestVariantPrice(t *testing.T) {
	// The dress has variants at 64 and 58, so a 60 cap should keep it.
	got := filterProducts(filterFixture(), productQuery{MaxPrice: "60"})
	if len(got) != 2 {
		t.Fatalf("expected tee and dress, got %+v", got)
	}
}

func TestSortProducts_DefaultsToNameAsc(t *testing.T) {
	products := filterFixture()
	sortProducts(products, "")
	if products[0].Name != "Classic Tee" || products[2].Name != "Summer Dress" {
		t.Fatalf("unexpected order %+v", products)
	}
}

func TestSortProducts_PriceDesc(t *testing.T) {
	products := filterFixture()
	sortProducts(products, "price-desc")
	if products[0].ID != "jacket" || products[2].ID != "tee" {
		t.Fatalf("unexpected order %+v", products)
	}
}

func TestSortProducts_Newest(t *testing.T) {
	products := filterFixture()
	products[2].CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	products[0].CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sortProducts(products, "newest")
	if products[0].ID != "dress" {
		t.Fatalf("expected newest first, got %+v", products)
	}
}
