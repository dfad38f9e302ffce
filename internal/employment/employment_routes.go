package employment

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
	employments := r.Group("/employments")
	employments.Use(middleware.ContextLogger(logger))
	{
		employments.GET("",
			middleware.RateLimitByIP(10, 30),
			handler.List,
		)

		employments.GET("/:id",
			middleware.RateLimitByIP(10, 30),
			handler.GetByID,
		)

		employments.GET("/customer/:customerId",
			middleware.RateLimitByIP(10, 30),
			handler.GetByCustomer,
		)

		employments.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)

		employments.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)

		employments.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
	}
}
