// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes onto the given group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupOrderRoutes(rg, db, redisClient, cfg)
	SetupWishlistRoutes(rg, db, cfg)
	SetupWaitlistRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupCatalogRoutes sets up public catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	rg.GET("/home", catalogHandler.GetHome)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:slug", catalogHandler.GetProductBySlug)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
	}
}

// SetupCartRoutes sets up cart routes; all require authentication
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupOrderRoutes sets up checkout and order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg))
	{
		checkout.POST("", orderHandler.Checkout)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.GetInvoice)
	}
}

// SetupWishlistRoutes sets up wishlist routes; all require authentication
func SetupWishlistRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(db, cfg)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
	}
}

// SetupWaitlistRoutes sets up the public waitlist signup route
func SetupWaitlistRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	waitlistHandler := handlers.NewWaitlistHandler(db, cfg)

	rg.POST("/waitlist", waitlistHandler.Join)
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	adminHandler := handlers.NewAdminHandler(db, redisClient, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)

		products := admin.Group("/products")
		{
			products.GET("", adminHandler.GetProducts)
			products.GET("/:id", adminHandler.GetProduct)
			products.POST("", adminHandler.CreateProduct)
			products.PUT("/:id", adminHandler.UpdateProduct)
			products.DELETE("/:id", adminHandler.DeleteProduct)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", adminHandler.GetCategories)
			categories.POST("", adminHandler.CreateCategory)
			categories.PUT("/:id", adminHandler.UpdateCategory)
			categories.DELETE("/:id", adminHandler.DeleteCategory)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", adminHandler.GetOrders)
			orders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
		}

		users := admin.Group("/users")
		{
			users.GET("", adminHandler.GetUsers)
			users.POST("/promote", adminHandler.PromoteUser)
			users.PUT("/:id/status", adminHandler.UpdateUserStatus)
		}

		waitlist := admin.Group("/waitlist")
		{
			waitlist.GET("", adminHandler.GetWaitlist)
			waitlist.PUT("/:id/grant", adminHandler.GrantWaitlistAccess)
		}
	}
}
