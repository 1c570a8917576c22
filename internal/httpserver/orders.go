package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homesteadhub/internal/domain"
	orderrepo "homesteadhub/internal/repository/order"
)

func listOrdersHandler(orders orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		result, err := orders.ListByCustomer(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list orders failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func getOrderHandler(orders orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		order, err := orders.GetByID(c.Request.Context(), c.Param("id"), u.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get order failed"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// farmerOrdersHandler lists the incoming order lines for the farmer's own
// products across all customers.
func farmerOrdersHandler(orders orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		lines, err := orders.ListLinesToFarmer(c.Request.Context(), u.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list incoming orders failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lineItems": lines})
	}
}
