package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/domain"
	"homesteadhub/internal/pricing"
	"homesteadhub/internal/service/checkout"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentToken  string `json:"paymentToken"`
}

type checkoutResponse struct {
	Order   *domain.Order   `json:"order"`
	Charges pricing.Charges `json:"charges"`
}

func checkoutHandler(svc *checkout.Service, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethod required"})
			return
		}

		u := currentUser(c)
		crt := carts.Get(u.ID)
		order, err := svc.PlaceOrder(c.Request.Context(), u, crt, domain.PaymentDetail{
			Method:       req.PaymentMethod,
			Token:        req.PaymentToken,
			CustomerName: u.Username,
		})
		if err != nil {
			var stockErr *domain.InsufficientStockError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusConflict, gin.H{
					"error":     "insufficient stock",
					"sku":       stockErr.SKU,
					"requested": stockErr.Requested,
					"available": stockErr.Available,
				})
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.Is(err, domain.ErrUnsupportedMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "order placement failed"})
			}
			return
		}

		c.JSON(http.StatusCreated, checkoutResponse{
			Order:   order,
			Charges: pricing.Quote(order.Total),
		})
	}
}
