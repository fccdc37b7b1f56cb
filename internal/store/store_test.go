package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylehub/internal/catalog"
	"stylehub/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() *catalog.Catalog {
	products := []domain.Product{
		{
			ID:   "p1",
			Name: "Classic Tee",
			Slug: "classic-tee",
			Variants: []domain.Variant{
				{SKU: "TEE-BLK-M", Color: "Black", Size: "M", Price: price("25.00"), Stock: 10},
				{SKU: "TEE-BLK-L", Color: "Black", Size: "L", Price: price("25.00"), Stock: 4},
			},
		},
		{
			ID:   "p2",
			Name: "Denim Jacket",
			Slug: "denim-jacket",
			Variants: []domain.Variant{
				{SKU: "JKT-BLU-M", Color: "Blue", Size: "M", Price: price("75.00"), Stock: 2},
			},
		},
	}
	coupons := []domain.Coupon{
		{
			Code:          "SUMMER50",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: price("50"),
			MinOrderValue: decimal.Zero,
			MaxDiscount:   price("30"),
			IsActive:      true,
		},
		{
			Code:          "WELCOME10",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: price("10"),
			MinOrderValue: price("50"),
			IsActive:      true,
		},
		{
			Code:          "BIGFLAT",
			DiscountType:  domain.DiscountFixed,
			DiscountValue: price("500"),
			MinOrderValue: decimal.Zero,
			IsActive:      true,
		},
		{
			Code:          "RETIRED",
			DiscountType:  domain.DiscountFixed,
			DiscountValue: price("5"),
			MinOrderValue: decimal.Zero,
			IsActive:      false,
		},
	}
	return catalog.New(products, nil, coupons)
}

func item(productID, sku string, qty int) domain.CartItem {
	return domain.CartItem{ProductID: productID, VariantSKU: sku, Quantity: qty}
}

func TestAddToCartMergesBySKU(t *testing.T) {
	s := New(testCatalog())

	s.AddToCart(item("p1", "TEE-BLK-M", 1))
	s.AddToCart(item("p1", "TEE-BLK-M", 2))
	s.AddToCart(item("p1", "TEE-BLK-M", 3))

	items := s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, "TEE-BLK-M", items[0].VariantSKU)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestAddToCartDistinctSKUsAppend(t *testing.T) {
	s := New(testCatalog())

	s.AddToCart(item("p1", "TEE-BLK-M", 1))
	s.AddToCart(item("p1", "TEE-BLK-L", 1))

	require.Len(t, s.CartItems(), 2)
}

func TestRemoveFromCart(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))
	s.AddToCart(item("p2", "JKT-BLU-M", 1))

	s.RemoveFromCart("TEE-BLK-M")

	items := s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, "JKT-BLU-M", items[0].VariantSKU)

	// removing a missing sku is a silent no-op
	s.RemoveFromCart("NOPE")
	assert.Len(t, s.CartItems(), 1)
}

func TestUpdateCartQuantityClampsToOne(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 5))

	for _, q := range []int{0, -3} {
		s.UpdateCartQuantity("TEE-BLK-M", q)
		items := s.CartItems()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	}

	s.UpdateCartQuantity("TEE-BLK-M", 7)
	assert.Equal(t, 7, s.CartItems()[0].Quantity)

	// missing sku: no-op, no new line
	s.UpdateCartQuantity("NOPE", 3)
	assert.Len(t, s.CartItems(), 1)
}

func TestClearCartDropsCoupon(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))
	res := s.ApplyCoupon("SUMMER50")
	require.True(t, res.Success)

	s.ClearCart()

	assert.Empty(t, s.CartItems())
	assert.Equal(t, "", s.AppliedCoupon())
}

func TestWishlistSetSemantics(t *testing.T) {
	s := New(testCatalog())

	s.AddToWishlist("p1")
	s.AddToWishlist("p1")
	require.Len(t, s.WishlistItems(), 1)
	assert.True(t, s.IsInWishlist("p1"))
	assert.False(t, s.IsInWishlist("p2"))

	s.RemoveFromWishlist("p1")
	assert.Empty(t, s.WishlistItems())
	assert.False(t, s.IsInWishlist("p1"))
}

func TestWishlistAddKeepsOriginalTimestamp(t *testing.T) {
	s := New(testCatalog())
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return first }
	s.AddToWishlist("p1")

	s.now = func() time.Time { return first.Add(time.Hour) }
	s.AddToWishlist("p1")

	items := s.WishlistItems()
	require.Len(t, items, 1)
	assert.Equal(t, first, items[0].AddedAt)
}

func TestApplyCouponUnknownCode(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))

	res := s.ApplyCoupon("NOSUCH")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid coupon code", res.Message)
	assert.Equal(t, "", s.AppliedCoupon())
}

func TestApplyCouponInactiveCode(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))

	res := s.ApplyCoupon("RETIRED")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid coupon code", res.Message)
}

func TestApplyCouponCaseInsensitiveCanonicalizes(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))

	res := s.ApplyCoupon("summer50")
	require.True(t, res.Success)
	assert.Equal(t, "Coupon applied successfully!", res.Message)
	assert.Equal(t, "SUMMER50", s.AppliedCoupon())
}

func TestApplyCouponMinOrderValue(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 1)) // subtotal 25 < 50

	res := s.ApplyCoupon("WELCOME10")
	assert.False(t, res.Success)
	assert.Equal(t, "Minimum order value of $50 required", res.Message)
	assert.Equal(t, "", s.AppliedCoupon())

	s.AddToCart(item("p1", "TEE-BLK-M", 1)) // subtotal 50 meets the minimum
	res = s.ApplyCoupon("WELCOME10")
	assert.True(t, res.Success)
}

func TestPercentageDiscountCappedAtMax(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 4)) // subtotal 100
	require.True(t, s.ApplyCoupon("SUMMER50").Success)

	totals := s.CartTotal()
	assert.True(t, totals.Subtotal.Equal(price("100")), "subtotal = %s", totals.Subtotal)
	// 50% of 100 is 50, capped at 30
	assert.True(t, totals.Discount.Equal(price("30")), "discount = %s", totals.Discount)
}

func TestShippingFeeUnderThreshold(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2)) // subtotal 50

	totals := s.CartTotal()
	assert.True(t, totals.Shipping.Equal(price("9.99")), "shipping = %s", totals.Shipping)
	assert.True(t, totals.Total.Equal(price("59.99")), "total = %s", totals.Total)
}

func TestShippingFreeOverThreshold(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 6)) // subtotal 150

	totals := s.CartTotal()
	assert.True(t, totals.Shipping.IsZero(), "shipping = %s", totals.Shipping)
	assert.True(t, totals.Total.Equal(price("150")), "total = %s", totals.Total)
}

func TestShippingChargedAtExactThreshold(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 4)) // subtotal exactly 100

	totals := s.CartTotal()
	assert.True(t, totals.Shipping.Equal(price("9.99")), "shipping = %s", totals.Shipping)
}

func TestFixedDiscountNeverGoesNegative(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2)) // subtotal 50, shipping 9.99
	require.True(t, s.ApplyCoupon("BIGFLAT").Success)

	totals := s.CartTotal()
	assert.True(t, totals.Discount.Equal(price("500")))
	assert.True(t, totals.Total.IsZero(), "total = %s", totals.Total)
}

func TestUnresolvableLinesContributeZero(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))
	s.AddToCart(item("gone", "GONE-SKU", 5))
	s.AddToCart(item("p1", "WRONG-SKU", 5))

	totals := s.CartTotal()
	assert.True(t, totals.Subtotal.Equal(price("50")), "subtotal = %s", totals.Subtotal)
}

func TestCartItemCountSumsQuantities(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(item("p1", "TEE-BLK-M", 2))
	s.AddToCart(item("p2", "JKT-BLU-M", 3))

	assert.Equal(t, 5, s.CartItemCount())
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := New(testCatalog())
	var got []State
	s.Subscribe(func(st State) { got = append(got, st) })

	s.AddToCart(item("p1", "TEE-BLK-M", 1))
	s.AddToWishlist("p2")
	res := s.ApplyCoupon("NOSUCH")
	require.False(t, res.Success)

	// failed coupon application does not change state, hence no notification
	require.Len(t, got, 2)
	assert.Len(t, got[1].Cart, 1)
	assert.Len(t, got[1].Wishlist, 1)
	assert.Nil(t, got[1].AppliedCoupon)
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	s := New(testCatalog())
	s.AddToCart(domain.CartItem{ProductID: "p1", VariantSKU: "TEE-BLK-M", Quantity: 2, Color: "Black", Size: "M"})
	s.AddToWishlist("p2")
	require.True(t, s.ApplyCoupon("SUMMER50").Success)

	raw, err := json.Marshal(s.State())
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored := Restore(testCatalog(), decoded)
	assert.Equal(t, s.CartItems(), restored.CartItems())
	assert.Equal(t, s.WishlistItems(), restored.WishlistItems())
	assert.Equal(t, "SUMMER50", restored.AppliedCoupon())
}

func TestEmptyStateMarshalsEmptyCollections(t *testing.T) {
	s := New(testCatalog())
	s.ClearCart()

	raw, err := json.Marshal(s.State())
	require.NoError(t, err)
	assert.JSONEq(t, `{"cart":[],"wishlist":[],"appliedCoupon":null}`, string(raw))
}
