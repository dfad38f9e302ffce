package response

import (
	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

// NewPaginationMeta: total adalah jumlah baris yang cocok SEBELUM offset/limit,
// size adalah jumlah item yang benar-benar dikembalikan di halaman ini.
func NewPaginationMeta(total int64, page, size int) PaginationMeta {
	return PaginationMeta{
		Total: total,
		Page:  page,
		Size:  size,
	}
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: nil,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
