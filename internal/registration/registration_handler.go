package registration

import (
	"encoding/json"
	"net/http"
	"time"

	"customer-registry/internal/shared/apperror"
	"customer-registry/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyResultTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("registration.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("registration.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("registration request failed",
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	h.releaseIdempotencyLock(c)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http registration binding failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.storeIdempotencyResult(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

// storeIdempotencyResult menyimpan hasil sukses di bawah Idempotency-Key
// supaya retry client mendapat response yang sama, lalu melepas lock.
func (h *Handler) storeIdempotencyResult(c *gin.Context, resp RegistrationResponse) {
	if h.rdb == nil {
		return
	}
	cacheKey, ok := c.Get("idempotency_cache_key")
	if !ok {
		return
	}
	if data, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey.(string), data, idempotencyResultTTL)
	}
	h.releaseIdempotencyLock(c)
}

// Error tidak boleh di-cache; lock dilepas agar client bisa retry segera.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey, ok := c.Get("idempotency_lock_key"); ok {
		h.rdb.Del(c.Request.Context(), lockKey.(string))
	}
}
