package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Category         string    `json:"category"`
	SubCategory      string    `json:"subCategory,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Variants         []Variant `json:"variants"`
	Featured         bool      `json:"featured"`
	Trending         bool      `json:"trending"`
	NewArrival       bool      `json:"newArrival"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Variant is one purchasable color/size combination of a product. SKUs are
// unique across the whole catalog.
type Variant struct {
	SKU           string           `json:"sku"`
	Color         string           `json:"color"`
	ColorHex      string           `json:"colorHex,omitempty"`
	Size          string           `json:"size"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Stock         int              `json:"stock"`
	Image         string           `json:"image,omitempty"`
}
