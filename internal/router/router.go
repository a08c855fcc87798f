// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/config"
	"github.com/frameit/frameit-backend/internal/handlers"
	"github.com/frameit/frameit-backend/internal/middleware"
	"github.com/frameit/frameit-backend/internal/services"
	"github.com/frameit/frameit-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	glassesService := services.NewGlassesService(db, storageService, productService)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(productService, glassesService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(productService, glassesService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Uploaded assets. Both prefixes serve the same tree: GLTF documents
	// reference textures through /api/static, the storefront uses /static.
	r.Static("/static", storageService.PublicDir())
	r.Static("/api/static", storageService.PublicDir())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"version": "1.0.0",
			})
		})

		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.UserRequired(db), authHandler.Me)
		}

		// Public catalog
		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:slug", catalogHandler.GetProduct)
		api.GET("/glasses-models", catalogHandler.ListGlassesModels)

		// Customer orders
		orders := api.Group("/orders")
		orders.Use(middleware.UserRequired(db))
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/my", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetMyOrder)
		}

		// Payments
		payments := api.Group("/payments")
		{
			payments.GET("/config", paymentHandler.GetConfig)
			payments.POST("/create-intent", middleware.UserRequired(db), paymentHandler.CreateIntent)
			payments.POST("/confirm", middleware.UserRequired(db), paymentHandler.ConfirmPayment)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AdminRequired(db))
		{
			admin.POST("/glasses/add-complete", middleware.UploadRateLimit(), adminHandler.AddCompleteGlasses)

			admin.GET("/products", adminHandler.ListProducts)
			admin.PATCH("/products/:id", adminHandler.UpdateProduct)
			admin.POST("/products/:id/images", middleware.UploadRateLimit(), adminHandler.UploadProductImages)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			admin.GET("/orders", orderHandler.ListAllOrders)
			admin.GET("/orders/:id", orderHandler.GetOrder)
			admin.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)

			admin.POST("/payments/refund", paymentHandler.RefundOrder)
		}
	}

	return r, nil
}
