package employment

import (
	"net/http"
	"strconv"
	"strings"

	"customer-registry/internal/shared/apperror"
	"customer-registry/internal/shared/listquery"
	"customer-registry/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		h.writeServiceError(c, apperror.RequiredField("Customer Id"))
		return
	}

	var req CreateEmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employment binding failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	q := ListEmploymentsQuery{
		Params:         listquery.Params{Skip: skip, Limit: limit}.Normalize(),
		Search:         strings.TrimSpace(c.Query("search")),
		EmploymentType: strings.TrimSpace(c.Query("employment_type")),
	}

	if raw, ok := c.GetQuery("is_current"); ok {
		isCurrent, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("Is Current"))
			return
		}
		q.IsCurrent = &isCurrent
	}

	items, total, err := h.service.List(ctx, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Params.Page(), len(items))
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	h.logger.Debug("http get employment by id", zap.String("employment_id", id))

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := c.Param("customerId")

	resp, err := h.service.GetByCustomer(ctx, customerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req UpdateEmploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employment binding failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Employment with ID " + id + " has been deleted",
	}, nil)
}
