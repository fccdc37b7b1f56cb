package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stylehub/internal/domain"
)

// Shipping policy. Orders strictly over the threshold ship free.
var (
	shippingFee       = decimal.RequireFromString("9.99")
	freeShippingAbove = decimal.NewFromInt(100)
	percentBase       = decimal.NewFromInt(100)
)

// Lookup is the read-only catalog surface the store prices against.
type Lookup interface {
	Variant(productID, sku string) (domain.Variant, bool)
	ActiveCoupon(code string) (domain.Coupon, bool)
	Coupon(code string) (domain.Coupon, bool)
}

// State is the durable snapshot of a store. It round-trips through JSON
// without transformation: {cart, wishlist, appliedCoupon}.
type State struct {
	Cart          []domain.CartItem     `json:"cart"`
	Wishlist      []domain.WishlistItem `json:"wishlist"`
	AppliedCoupon *string               `json:"appliedCoupon"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// CouponResult is the typed outcome of ApplyCoupon. No other operation can
// fail: mutations on missing keys are permissive no-ops.
type CouponResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Store owns one shopper's cart lines, wishlist entries and applied coupon.
// Every operation runs to completion under the lock and notifies subscribers
// before returning.
type Store struct {
	mu            sync.Mutex
	catalog       Lookup
	cart          []domain.CartItem
	wishlist      []domain.WishlistItem
	appliedCoupon string
	subs          []func(State)
	now           func() time.Time
}

func New(catalog Lookup) *Store {
	return &Store{catalog: catalog, now: time.Now}
}

// Restore builds a store from a previously persisted snapshot.
func Restore(catalog Lookup, st State) *Store {
	s := New(catalog)
	s.cart = append(s.cart, st.Cart...)
	s.wishlist = append(s.wishlist, st.Wishlist...)
	if st.AppliedCoupon != nil {
		s.appliedCoupon = *st.AppliedCoupon
	}
	return s
}

// Subscribe registers a change listener. Listeners run synchronously after
// each mutation with a snapshot of the new state; they must not call back
// into the store.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddToCart merges by variant SKU: a repeated add accumulates quantity on the
// existing line instead of appending a duplicate. Stock is not checked here;
// availability is the caller's concern.
func (s *Store) AddToCart(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].VariantSKU == item.VariantSKU {
			s.cart[i].Quantity += item.Quantity
			s.notifyLocked()
			return
		}
	}
	s.cart = append(s.cart, item)
	s.notifyLocked()
}

// RemoveFromCart drops the line with the given SKU. Absent SKUs are a no-op.
func (s *Store) RemoveFromCart(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, item := range s.cart {
		if item.VariantSKU != sku {
			kept = append(kept, item)
		}
	}
	s.cart = kept
	s.notifyLocked()
}

// UpdateCartQuantity sets the line's quantity, clamped to a minimum of 1.
// Passing zero or a negative value never removes the line; use RemoveFromCart
// for that. Absent SKUs are a no-op.
func (s *Store) UpdateCartQuantity(sku string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.cart {
		if s.cart[i].VariantSKU == sku {
			s.cart[i].Quantity = quantity
			break
		}
	}
	s.notifyLocked()
}

// ClearCart empties the cart and drops any applied coupon: a coupon is scoped
// to one cart lifecycle.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.appliedCoupon = ""
	s.notifyLocked()
}

// AddToWishlist is idempotent; a product already on the wishlist stays as a
// single entry with its original AddedAt.
func (s *Store) AddToWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.wishlist {
		if item.ProductID == productID {
			return
		}
	}
	s.wishlist = append(s.wishlist, domain.WishlistItem{
		ProductID: productID,
		AddedAt:   s.now().UTC(),
	})
	s.notifyLocked()
}

func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.wishlist[:0]
	for _, item := range s.wishlist {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.wishlist = kept
	s.notifyLocked()
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.wishlist {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ApplyCoupon validates the code against the catalog (case-insensitive,
// active coupons only) and the current subtotal against the coupon's minimum
// order value. Validation happens only here: the coupon stays applied even if
// the cart later drops below the minimum. Expiry is not checked.
func (s *Store) ApplyCoupon(code string) CouponResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupon, ok := s.catalog.ActiveCoupon(code)
	if !ok {
		return CouponResult{Success: false, Message: "Invalid coupon code"}
	}

	subtotal := s.subtotalLocked()
	if subtotal.LessThan(coupon.MinOrderValue) {
		return CouponResult{
			Success: false,
			Message: fmt.Sprintf("Minimum order value of $%s required", coupon.MinOrderValue),
		}
	}

	s.appliedCoupon = coupon.Code
	s.notifyLocked()
	return CouponResult{Success: true, Message: "Coupon applied successfully!"}
}

func (s *Store) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appliedCoupon = ""
	s.notifyLocked()
}

func (s *Store) AppliedCoupon() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedCoupon
}

// CartTotal derives {subtotal, discount, shipping, total} from current state.
// Pure: no mutation, no notification.
func (s *Store) CartTotal() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

// CartItemCount sums quantities across lines, not the number of lines.
func (s *Store) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

func (s *Store) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.cart...)
}

func (s *Store) WishlistItems() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistItem(nil), s.wishlist...)
}

// subtotalLocked resolves each line through the catalog. Lines whose product
// or variant no longer exists contribute zero instead of failing the whole
// calculation.
func (s *Store) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.cart {
		variant, ok := s.catalog.Variant(item.ProductID, item.VariantSKU)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func (s *Store) totalsLocked() Totals {
	subtotal := s.subtotalLocked()

	discount := decimal.Zero
	if s.appliedCoupon != "" {
		if coupon, ok := s.catalog.Coupon(s.appliedCoupon); ok {
			if coupon.DiscountType == domain.DiscountPercentage {
				discount = subtotal.Mul(coupon.DiscountValue).Div(percentBase)
				if coupon.MaxDiscount.IsPositive() && discount.GreaterThan(coupon.MaxDiscount) {
					discount = coupon.MaxDiscount
				}
			} else {
				// Fixed discounts are flat and may exceed the subtotal;
				// the final clamp keeps the total at zero.
				discount = coupon.DiscountValue
			}
		}
	}

	shipping := shippingFee
	if subtotal.GreaterThan(freeShippingAbove) {
		shipping = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{Subtotal: subtotal, Discount: discount, Shipping: shipping, Total: total}
}

func (s *Store) snapshotLocked() State {
	// Empty collections marshal as [] rather than null so the persisted
	// layout round-trips exactly.
	st := State{
		Cart:     append(make([]domain.CartItem, 0, len(s.cart)), s.cart...),
		Wishlist: append(make([]domain.WishlistItem, 0, len(s.wishlist)), s.wishlist...),
	}
	if s.appliedCoupon != "" {
		code := s.appliedCoupon
		st.AppliedCoupon = &code
	}
	return st
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	st := s.snapshotLocked()
	for _, fn := range s.subs {
		fn(st)
	}
}
