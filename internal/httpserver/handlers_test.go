package httpserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stylehub/internal/catalog"
	"stylehub/internal/domain"
	"stylehub/internal/persist"
	"stylehub/internal/store"
)

func testCatalog() *catalog.Catalog {
	products := []domain.Product{
		{
			ID:       "p1",
			Name:     "Classic Tee",
			Slug:     "classic-tee",
			Category: "men",
			Variants: []domain.Variant{
				{SKU: "TEE-BLK-M", Color: "Black", Size: "M", Price: decimal.RequireFromString("25.00"), Stock: 10},
			},
		},
		{
			ID:       "p2",
			Name:     "Summer Dress",
			Slug:     "summer-dress",
			Category: "women",
			Variants: []domain.Variant{
				{SKU: "DRS-RED-S", Color: "Red", Size: "S", Price: decimal.RequireFromString("59.00"), Stock: 3},
			},
		},
	}
	coupons := []domain.Coupon{
		{Code: "SUMMER50", DiscountType: domain.DiscountPercentage, DiscountValue: decimal.NewFromInt(50), MaxDiscount: decimal.NewFromInt(30), IsActive: true},
	}
	return catalog.New(products, nil, coupons)
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	cat := testCatalog()
	stores := store.NewManager(cat, persist.NewMemory(), logger)
	router, err := buildRouter(logger, nil, Deps{Catalog: cat, Stores: stores})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(router *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSessionHeaderRequired(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(router, http.MethodGet, "/api/cart", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListProducts(t *testing.T) {
	router := testRouter(t)
	rec := doJSON(router, http.MethodGet, "/api/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 {
		t.Fatalf("expected 2 products, got %d", body.Count)
	}

	rec = doJSON(router, http.MethodGet, "/api/products?category=women", "", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 1 {
		t.Fatalf("expected 1 product for category filter, got %d", body.Count)
	}
}

func TestGetProductBySlugOrID(t *testing.T) {
	router := testRouter(t)
	for _, key := range []string{"p1", "classic-tee"} {
		rec := doJSON(router, http.MethodGet, "/api/products/"+key, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %q, got %d", key, rec.Code)
		}
	}
	rec := doJSON(router, http.MethodGet, "/api/products/missing", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCartFlow(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/cart/items", "sess-1",
		`{"productId":"p1","variantSku":"TEE-BLK-M","quantity":2,"color":"Black","size":"M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// same sku again merges
	doJSON(router, http.MethodPost, "/api/cart/items", "sess-1",
		`{"productId":"p1","variantSku":"TEE-BLK-M","quantity":1}`)

	rec = doJSON(router, http.MethodGet, "/api/cart", "sess-1", "")
	var cart cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cart.Items) != 1 || cart.ItemCount != 3 {
		t.Fatalf("expected one merged line with count 3, got %+v", cart)
	}
	if !cart.Totals.Subtotal.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected subtotal %s", cart.Totals.Subtotal)
	}

	// another session has its own empty cart
	rec = doJSON(router, http.MethodGet, "/api/cart", "sess-2", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if cart.ItemCount != 0 {
		t.Fatalf("expected empty cart for new session, got %+v", cart)
	}

	rec = doJSON(router, http.MethodDelete, "/api/cart/items/TEE-BLK-M", "sess-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestApplyCouponEndpoint(t *testing.T) {
	router := testRouter(t)
	doJSON(router, http.MethodPost, "/api/cart/items", "sess-1",
		`{"productId":"p1","variantSku":"TEE-BLK-M","quantity":4}`)

	rec := doJSON(router, http.MethodPost, "/api/cart/coupon", "sess-1", `{"code":"summer50"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res store.CouponResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.Success || res.Message != "Coupon applied successfully!" {
		t.Fatalf("unexpected result %+v", res)
	}

	rec = doJSON(router, http.MethodPost, "/api/cart/coupon", "sess-1", `{"code":"NOSUCH"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Success || res.Message != "Invalid coupon code" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestWishlistEndpoints(t *testing.T) {
	router := testRouter(t)

	doJSON(router, http.MethodPost, "/api/wishlist", "sess-1", `{"productId":"p2"}`)
	doJSON(router, http.MethodPost, "/api/wishlist", "sess-1", `{"productId":"p2"}`)

	rec := doJSON(router, http.MethodGet, "/api/wishlist", "sess-1", "")
	var body struct {
		Items []domain.WishlistItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode wishlist: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ProductID != "p2" {
		t.Fatalf("expected single wishlist entry, got %+v", body.Items)
	}

	rec = doJSON(router, http.MethodDelete, "/api/wishlist/p2", "sess-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}
