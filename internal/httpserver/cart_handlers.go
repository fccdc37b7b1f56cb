package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylehub/internal/catalog"
	"stylehub/internal/domain"
	"stylehub/internal/store"
)

type addCartItemRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	VariantSKU string `json:"variantSku" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Color      string `json:"color"`
	Size       string `json:"size"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type cartLineResponse struct {
	domain.CartItem
	ProductName string          `json:"productName,omitempty"`
	Variant     *domain.Variant `json:"variant,omitempty"`
}

type cartResponse struct {
	Items         []cartLineResponse `json:"items"`
	ItemCount     int                `json:"itemCount"`
	AppliedCoupon string             `json:"appliedCoupon,omitempty"`
	Totals        store.Totals       `json:"totals"`
}

func cartView(s *store.Store, cat *catalog.Catalog) cartResponse {
	items := s.CartItems()
	lines := make([]cartLineResponse, 0, len(items))
	for _, item := range items {
		line := cartLineResponse{CartItem: item}
		if p, ok := cat.ProductByID(item.ProductID); ok {
			line.ProductName = p.Name
		}
		if v, ok := cat.Variant(item.ProductID, item.VariantSKU); ok {
			line.Variant = &v
		}
		lines = append(lines, line)
	}
	return cartResponse{
		Items:         lines,
		ItemCount:     s.CartItemCount(),
		AppliedCoupon: s.AppliedCoupon(),
		Totals:        s.CartTotal(),
	}
}

func getCartHandler(stores *store.Manager, cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, cartView(s, cat))
	}
}

func addCartItemHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.AddToCart(domain.CartItem{
			ProductID:  req.ProductID,
			VariantSKU: req.VariantSKU,
			Quantity:   req.Quantity,
			Color:      req.Color,
			Size:       req.Size,
		})
		c.JSON(http.StatusOK, gin.H{"itemCount": s.CartItemCount()})
	}
}

func updateCartItemHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.UpdateCartQuantity(c.Param("sku"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{"itemCount": s.CartItemCount()})
	}
}

func removeCartItemHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.RemoveFromCart(c.Param("sku"))
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.ClearCart()
		c.Status(http.StatusNoContent)
	}
}

func applyCouponHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		res := s.ApplyCoupon(req.Code)
		status := http.StatusOK
		if !res.Success {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, res)
	}
}

func removeCouponHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.RemoveCoupon()
		c.Status(http.StatusNoContent)
	}
}
