package api

import (
	"net/http"

	"street-eats/internal/api/middleware"
	"street-eats/internal/modules/addresses"
	"street-eats/internal/modules/admin"
	"street-eats/internal/modules/auth"
	"street-eats/internal/modules/menu"
	"street-eats/internal/modules/orders"
	"street-eats/internal/modules/users"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	authHandler *auth.Handler,
	menuHandler *menu.Handler,
	userHandler *users.Handler,
	addressHandler *addresses.Handler,
	orderHandler *orders.Handler,
	adminHandler *admin.Handler,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	adminRequired := middleware.AdminRequired()

	// --- Public Routes ---
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/telegram", authHandler.AuthenticateTelegram)
	e.POST("/bot/register", userHandler.RegisterFromBot)
	e.POST("/admin/login", adminHandler.Login)
	e.GET("/menu", menuHandler.GetMenu)
	e.GET("/regions", menuHandler.GetRegions)

	// --- User (Customer) Routes ---
	e.GET("/profile", userHandler.GetMyProfile, authMiddleware)

	addressGroup := e.Group("/addresses", authMiddleware)
	{
		addressGroup.GET("", addressHandler.ListMyAddresses)
		addressGroup.POST("", addressHandler.AddAddress)
		addressGroup.PUT("/:addressId", addressHandler.UpdateAddress)
		addressGroup.DELETE("/:addressId", addressHandler.DeleteAddress)
	}

	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("", orderHandler.ListMyOrders)
		orderGroup.GET("/:orderId", orderHandler.GetOrderDetails)
	}

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		adminGroup.POST("/categories", adminHandler.CreateCategory)
		adminGroup.PUT("/categories/:categoryId", adminHandler.UpdateCategory)
		adminGroup.DELETE("/categories/:categoryId", adminHandler.DeleteCategory)

		adminGroup.POST("/products", adminHandler.CreateProduct)
		adminGroup.PUT("/products/:productId", adminHandler.UpdateProduct)
		adminGroup.DELETE("/products/:productId", adminHandler.DeleteProduct)

		adminGroup.POST("/regions", adminHandler.CreateRegion)
		adminGroup.PUT("/regions/:regionId", adminHandler.UpdateRegion)
		adminGroup.DELETE("/regions/:regionId", adminHandler.DeleteRegion)

		adminGroup.GET("/orders", adminHandler.GetAllOrders)
		adminGroup.PUT("/orders/:orderId/status", adminHandler.SetOrderStatus)
	}
}
