package audit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
	"github.com/HafsaFatima26/hospital-management-system/pkg/export"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/audit-logs")
	{
		logs.GET("", h.ListLogs)
		logs.GET("/export", h.ExportLogs)
	}
}

func (h *Handler) ListLogs(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	var filter model.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handler.Error(c, apperrors.Validation("invalid filter", err))
		return
	}

	logs, err := h.service.List(c.Request.Context(), sess, filter)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"logs": logs,
	}))
}

func (h *Handler) ExportLogs(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	logs, err := h.service.Export(c.Request.Context(), sess)
	if err != nil {
		handler.Error(c, err)
		return
	}

	data, err := export.CSV(logs)
	if err != nil {
		handler.Error(c, apperrors.Internal(err))
		return
	}

	filename := export.Filename("audit_logs", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
