package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/rbac"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
)

type Handler struct {
	auditor   *audit.Service
	startedAt time.Time
}

func NewHandler(auditor *audit.Service, startedAt time.Time) *Handler {
	return &Handler{
		auditor:   auditor,
		startedAt: startedAt,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
}

// Dashboard reports the caller's identity, capabilities and process
// uptime.
func (h *Handler) Dashboard(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	if err := h.auditor.Log(c.Request.Context(), sess.User, model.ActionViewDashboard, "Accessed dashboard"); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"username":       sess.User.Username,
		"role":           sess.User.Role,
		"permissions":    rbac.Permissions(sess.User.Role),
		"session_start":  sess.StartedAt,
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	}))
}
