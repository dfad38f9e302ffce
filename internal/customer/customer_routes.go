package customer

import (
	"customer-registry/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	customers := r.Group("/customers")
	customers.Use(middleware.ContextLogger(logger))
	{
		customers.GET("",
			middleware.RateLimitByIP(10, 30),
			handler.List,
		)

		customers.GET("/:id",
			middleware.RateLimitByIP(10, 30),
			handler.GetByID,
		)

		customers.GET("/email/:email",
			middleware.RateLimitByIP(10, 30),
			handler.GetByEmail,
		)

		customers.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)

		customers.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)

		customers.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.SoftDelete,
		)

		customers.DELETE("/:id/hard",
			middleware.RateLimitByIP(0.2, 1),
			handler.HardDelete,
		)
	}
}
