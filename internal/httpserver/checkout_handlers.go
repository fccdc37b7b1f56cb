package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stylehub/internal/domain"
	"stylehub/internal/service/checkout"
	"stylehub/internal/store"
)

func placeOrderHandler(stores *store.Manager, svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sid := sessionID(c)
		s := stores.ForSession(c.Request.Context(), sid)

		order, err := svc.Place(c.Request.Context(), sid, s, in)
		if err != nil {
			var ve checkout.ValidationError
			switch {
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case errors.As(err, &ve):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not place order"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func getOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), sessionID(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listOrdersHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
