package httpserver

import (
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stylehub/internal/catalog"
	"stylehub/internal/service/checkout"
	"stylehub/internal/store"
)

// Deps carries the wired services the routes need.
type Deps struct {
	Catalog  *catalog.Catalog
	Stores   *store.Manager
	Checkout *checkout.Service
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if deps.Stores == nil {
		return nil, errors.New("store manager is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", sessionHeader},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))
	api.GET("/categories", listCategoriesHandler(deps.Catalog))

	session := api.Group("")
	session.Use(sessionMiddleware())
	session.GET("/cart", getCartHandler(deps.Stores, deps.Catalog))
	session.POST("/cart/items", addCartItemHandler(deps.Stores))
	session.PATCH("/cart/items/:sku", updateCartItemHandler(deps.Stores))
	session.DELETE("/cart/items/:sku", removeCartItemHandler(deps.Stores))
	session.DELETE("/cart", clearCartHandler(deps.Stores))
	session.POST("/cart/coupon", applyCouponHandler(deps.Stores))
	session.DELETE("/cart/coupon", removeCouponHandler(deps.Stores))
	session.GET("/wishlist", getWishlistHandler(deps.Stores))
	session.POST("/wishlist", addWishlistHandler(deps.Stores))
	session.DELETE("/wishlist/:productId", removeWishlistHandler(deps.Stores))

	if deps.Checkout != nil {
		session.POST("/checkout", placeOrderHandler(deps.Stores, deps.Checkout))
		session.GET("/orders", listOrdersHandler(deps.Checkout))
		session.GET("/orders/:id", getOrderHandler(deps.Checkout))
	}

	return router, nil
}
