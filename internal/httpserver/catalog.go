package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
	"homesteadhub/internal/service/inventory"
)

func listProductsHandler(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": svc.Products()})
	}
}

type addProductRequest struct {
	SKU         string          `json:"sku"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func addProductHandler(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
			return
		}
		farmer := currentUser(c)
		saved, err := svc.AddProduct(c.Request.Context(), domain.Product{
			SKU:            req.SKU,
			Title:          req.Title,
			Description:    req.Description,
			Stock:          req.Stock,
			UnitPrice:      req.UnitPrice,
			FarmerID:       farmer.ID,
			FarmerUsername: farmer.Username,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "sku belongs to another farmer"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func listFarmerProductsHandler(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		farmer := currentUser(c)
		products, err := svc.ProductsByFarmer(c.Request.Context(), farmer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list products failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func lowStockHandler(svc *inventory.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		threshold := 0
		if raw := c.Query("threshold"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
				return
			}
			threshold = v
		}
		c.JSON(http.StatusOK, gin.H{"products": svc.LowStock(threshold)})
	}
}
