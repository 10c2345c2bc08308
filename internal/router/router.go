package router

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storepanel/internal/cache"
	"github.com/storepanel/internal/config"
	adminhandlers "github.com/storepanel/internal/http/handlers/admin"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sp"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health-check", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := r.Group("/api/v1")
	{
		apiV1.POST("/admin/login",
			RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")),
			adminHandler.Login,
		)

		// 后台接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RBACMiddleware(c.AuthzService))
		{
			admin.POST("/logout", adminHandler.Logout)
			admin.GET("/profile", adminHandler.Me)
			admin.PUT("/profile", adminHandler.UpdateProfile)
			admin.PUT("/password", adminHandler.ChangePassword)

			admin.GET("/dashboard", adminHandler.GetDashboard)

			admin.GET("/stores", adminHandler.GetStores)
			admin.POST("/stores", adminHandler.CreateStore)
			admin.GET("/stores/:id", adminHandler.GetStore)
			admin.PUT("/stores/:id", adminHandler.UpdateStore)
			admin.PATCH("/stores/:id", adminHandler.UpdateStore)
			admin.DELETE("/stores/:id", adminHandler.DeleteStore)

			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/categories", adminHandler.GetCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.GET("/categories/:id", adminHandler.GetCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/brands", adminHandler.GetBrands)
			admin.POST("/brands", adminHandler.CreateBrand)
			admin.GET("/brands/:id", adminHandler.GetBrand)
			admin.PUT("/brands/:id", adminHandler.UpdateBrand)
			admin.DELETE("/brands/:id", adminHandler.DeleteBrand)

			admin.GET("/products", adminHandler.GetProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.PATCH("/products/:id/stock", adminHandler.AdjustProductStock)

			admin.GET("/customers", adminHandler.GetCustomers)
			admin.POST("/customers", adminHandler.CreateCustomer)
			admin.GET("/customers/:id", adminHandler.GetCustomer)
			admin.PUT("/customers/:id", adminHandler.UpdateCustomer)
			admin.DELETE("/customers/:id", adminHandler.DeleteCustomer)

			admin.GET("/orders", adminHandler.GetOrders)
			admin.POST("/orders", adminHandler.CreateOrder)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/notifications", adminHandler.GetNotifications)
			admin.POST("/notifications", adminHandler.CreateNotification)
			admin.GET("/notifications/:id", adminHandler.GetNotification)
			admin.PUT("/notifications/:id", adminHandler.UpdateNotification)
			admin.DELETE("/notifications/:id", adminHandler.DeleteNotification)
			admin.POST("/notifications/:id/send", adminHandler.SendNotification)
			admin.POST("/notifications/:id/track", adminHandler.TrackNotification)

			admin.GET("/activity-logs", adminHandler.GetActivityLogs)
		}
	}

	return r
}
