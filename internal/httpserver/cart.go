package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/domain"
	"homesteadhub/internal/service/inventory"
)

type cartResponse struct {
	Lines    []domain.LineItem `json:"lineItems"`
	Subtotal string            `json:"subtotal"`
}

func cartToResponse(c *cart.Cart) cartResponse {
	return cartResponse{
		Lines:    c.Lines(),
		Subtotal: c.Subtotal().StringFixed(2),
	}
}

func getCartHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		c.JSON(http.StatusOK, cartToResponse(carts.Get(u.ID)))
	}
}

type addCartItemRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

func addCartItemHandler(carts *cart.Store, catalog *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sku and quantity required"})
			return
		}
		product, err := catalog.Product(req.SKU)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog lookup failed"})
			return
		}

		u := currentUser(c)
		crt := carts.Get(u.ID)
		if err := crt.AddLine(*product, req.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cartToResponse(crt))
	}
}

func removeCartItemHandler(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		crt := carts.Get(u.ID)
		crt.RemoveLine(c.Param("sku"))
		c.JSON(http.StatusOK, cartToResponse(crt))
	}
}
