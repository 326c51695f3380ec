// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/config"
	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/handlers"
	"github.com/fastr/fastr-backend/internal/middleware"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, dispatcher events.Dispatcher) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	shopService := services.NewShopService(db)
	productService := services.NewProductService(db, shopService)
	shippingService := services.NewShippingService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, dispatcher, time.Duration(cfg.Orders.ConvertTimeout)*time.Second)
	fulfillmentService := services.NewFulfillmentService(db, dispatcher)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	shopHandler := handlers.NewShopHandler(shopService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	shippingHandler := handlers.NewShippingHandler(shippingService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	fulfillmentHandler := handlers.NewFulfillmentHandler(fulfillmentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Catalog vocabulary (public)
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.GET("/:id", catalogHandler.GetCategory)
		}

		attributes := v1.Group("/attributes")
		{
			attributes.GET("", catalogHandler.ListAttributes)
			attributes.GET("/:id", catalogHandler.GetAttribute)
			attributes.POST("", middleware.AuthRequired(), middleware.SellerRequired(), catalogHandler.CreateAttribute)
		}

		// Public storefront
		shops := v1.Group("/shops")
		{
			shops.GET("", shopHandler.ListOpenShops)
			shops.GET("/:id", shopHandler.GetOpenShop)
		}

		products := v1.Group("/products")
		{
			products.GET("", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetPublicProduct)
		}

		// Seller side: own shop, products and fulfillments
		shop := v1.Group("/shop")
		shop.Use(middleware.AuthRequired(), middleware.SellerRequired())
		{
			shop.POST("", shopHandler.CreateShop)
			shop.GET("", shopHandler.GetOwnShop)
			shop.PATCH("", shopHandler.UpdateShop)

			shop.POST("/products", productHandler.CreateProduct)
			shop.GET("/products", productHandler.GetOwnProducts)
			shop.GET("/products/:id", productHandler.GetOwnProduct)
			shop.PATCH("/products/:id", productHandler.UpdateProduct)
			shop.POST("/products/:id/images", middleware.UploadRateLimit(), productHandler.UploadImages)

			shop.GET("/fulfillments", fulfillmentHandler.ListFulfillments)
			shop.GET("/fulfillments/:id", fulfillmentHandler.GetFulfillment)
			shop.PATCH("/fulfillments/:id", fulfillmentHandler.UpdateStatus)
		}

		// Buyer side: shipping notes, cart and orders
		shippingNotes := v1.Group("/shipping-notes")
		shippingNotes.Use(middleware.AuthRequired(), middleware.BuyerRequired())
		{
			shippingNotes.POST("", shippingHandler.CreateShippingNote)
			shippingNotes.GET("", shippingHandler.ListShippingNotes)
			shippingNotes.GET("/:id", shippingHandler.GetShippingNote)
		}

		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired(), middleware.BuyerRequired())
		{
			cart.GET("", cartHandler.ViewCart)
			cart.POST("/lines", cartHandler.AddLines)
			cart.PATCH("/lines", cartHandler.UpdateLines)
			cart.DELETE("/lines", cartHandler.RemoveLines)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired(), middleware.BuyerRequired())
		{
			orders.POST("", middleware.CheckoutRateLimit(), orderHandler.Convert)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
