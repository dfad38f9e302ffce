package app

import (
	"customer-registry/internal/customer"
	"customer-registry/internal/employment"
	"customer-registry/internal/messaging/kafka"
	"customer-registry/internal/registration"
	"customer-registry/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	customerRepo := customer.NewRepository(gormDB)
	employmentRepo := employment.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	customerService := customer.NewService(gormDB, customerRepo, counterRepo, rdb, logger)
	employmentService := employment.NewService(gormDB, employmentRepo, rdb, logger)
	registrationService := registration.NewService(
		gormDB, customerRepo, employmentRepo, counterRepo, outboxRepo, rdb, logger,
	)

	// --- Handlers ---
	customerHandler := customer.NewHandler(customerService, logger)
	employmentHandler := employment.NewHandler(employmentService, logger)
	registrationHandler := registration.NewHandler(registrationService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		customer.RegisterRoutes(api, customerHandler, logger)
		employment.RegisterRoutes(api, employmentHandler, logger)
		registration.RegisterRoutes(api, registrationHandler, rdb, logger)
	}

	return nil
}
