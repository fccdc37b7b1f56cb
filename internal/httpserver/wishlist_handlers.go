package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stylehub/internal/store"
)

type addWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func getWishlistHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		c.JSON(http.StatusOK, gin.H{"items": s.WishlistItems()})
	}
}

func addWishlistHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.AddToWishlist(req.ProductID)
		c.Status(http.StatusNoContent)
	}
}

func removeWishlistHandler(stores *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := stores.ForSession(c.Request.Context(), sessionID(c))
		s.RemoveFromWishlist(c.Param("productId"))
		c.Status(http.StatusNoContent)
	}
}
