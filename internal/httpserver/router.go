package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"homesteadhub/internal/cart"
	"homesteadhub/internal/domain"
	orderrepo "homesteadhub/internal/repository/order"
	"homesteadhub/internal/service/checkout"
	"homesteadhub/internal/service/inventory"
	"homesteadhub/internal/service/portal"
)

// Deps bundles the services the router needs.
type Deps struct {
	Portal    *portal.Service
	Inventory *inventory.Service
	Checkout  *checkout.Service
	Carts     *cart.Store
	Orders    orderrepo.Repository
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/login", loginHandler(deps.Portal))
	router.GET("/products", listProductsHandler(deps.Inventory))

	authed := router.Group("/", authMiddleware(deps.Portal))
	authed.POST("/logout", logoutHandler(deps.Portal))

	customers := authed.Group("/", requireRole(domain.RoleCustomer))
	customers.GET("/cart", getCartHandler(deps.Carts))
	customers.POST("/cart/items", addCartItemHandler(deps.Carts, deps.Inventory))
	customers.DELETE("/cart/items/:sku", removeCartItemHandler(deps.Carts))
	customers.POST("/checkout", checkoutHandler(deps.Checkout, deps.Carts))
	customers.GET("/orders", listOrdersHandler(deps.Orders))
	customers.GET("/orders/:id", getOrderHandler(deps.Orders))

	farmers := authed.Group("/farmer", requireRole(domain.RoleFarmer))
	farmers.POST("/products", addProductHandler(deps.Inventory))
	farmers.GET("/products", listFarmerProductsHandler(deps.Inventory))
	farmers.GET("/products/low-stock", lowStockHandler(deps.Inventory))
	farmers.GET("/orders", farmerOrdersHandler(deps.Orders))

	return router
}
