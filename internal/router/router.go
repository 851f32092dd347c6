package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/melodybeans/coffeestore/internal/handlers"
	"github.com/melodybeans/coffeestore/internal/middleware"
	"github.com/melodybeans/coffeestore/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/orders", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.OrderFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		products := api.Group("/products")
		{
			products.GET("/", handlers.ListProducts)
			products.GET("/:id", handlers.GetProduct)

			admin := products.Group("", middleware.AuthMiddleware(), middleware.AdminMiddleware())
			{
				admin.POST("/", handlers.CreateProduct)
				admin.PUT("/:id", handlers.UpdateProduct)
				admin.DELETE("/:id", handlers.DeleteProduct)
			}
		}

		reviews := api.Group("/reviews")
		{
			// Creation is deliberately unauthenticated for now; see the
			// user_id note in handlers.CreateReviewRequest.
			reviews.POST("/", handlers.CreateReview)
			reviews.GET("/", handlers.ListReviews)
			reviews.GET("/:id", handlers.GetReview)
			reviews.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.DeleteReview)
		}

		orders := api.Group("/orders")
		{
			orders.POST("/", handlers.CreateOrder)
			orders.GET("/", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.PUT("/:id/status", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.UpdateOrderStatus)
			orders.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), handlers.DeleteOrder)
		}
	}

	return r
}
