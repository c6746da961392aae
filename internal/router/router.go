package router

import (
	"fmt"
	"strings"

	"github.com/tijara-next/internal/cache"
	"github.com/tijara-next/internal/config"
	adminhandlers "github.com/tijara-next/internal/http/handlers/admin"
	publichandlers "github.com/tijara-next/internal/http/handlers/public"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/metrics"
	"github.com/tijara-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter mounts the full API surface.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tj"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		Message:       "too many checkout attempts",
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware())
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, metrics.Handler())
	}

	apiV1 := r.Group("/api/v1")
	{
		// Storefront, no auth required. Checkout accepts both guests
		// and signed-in customers, so identity is attached when present.
		public := apiV1.Group("/public")
		public.Use(OptionalUserMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/latest", publicHandler.ListLatestProducts)
			public.GET("/products/featured", publicHandler.ListFeaturedProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/captcha/image", publicHandler.GetCaptcha)

			public.GET("/cart", publicHandler.GetCart)
			public.POST("/cart/items", publicHandler.AddCartItem)
			public.DELETE("/cart/items", publicHandler.RemoveCartItem)

			checkoutLimiter := RateLimitMiddleware(redisClient, checkoutRule, KeyByIPAndJSONField("phone_number"))
			public.POST("/orders/quick", checkoutLimiter, publicHandler.QuickOrder)
			public.POST("/orders/checkout", checkoutLimiter, publicHandler.Checkout)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// Signed-in customer surface.
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
		}

		// Admin panel.
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/profit-stats", adminHandler.GetOrderProfitStats)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrder)
			admin.PATCH("/orders/batch-status", adminHandler.BulkUpdateOrderStatus)
			admin.POST("/orders/:id/deliver", adminHandler.DeliverOrder)
			admin.POST("/orders/:id/pay", adminHandler.MarkOrderPaid)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)

			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/stock", adminHandler.AdjustProductStock)

			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.PUT("/users/:id/roles", adminHandler.SetUserRoles)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
