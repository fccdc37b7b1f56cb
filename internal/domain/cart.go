package domain

import "time"

// CartItem is one cart line. Lines are identified by VariantSKU: adding the
// same SKU twice merges quantities instead of duplicating the line.
type CartItem struct {
	ProductID  string `json:"productId"`
	VariantSKU string `json:"variantSku"`
	Quantity   int    `json:"quantity"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
}

// WishlistItem is a set entry keyed by ProductID.
type WishlistItem struct {
	ProductID string    `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}
