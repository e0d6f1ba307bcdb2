package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/auth"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
)

type Handler struct {
	service *auth.Service
	auditor *audit.Service
}

func NewHandler(service *auth.Service, auditor *audit.Service) *Handler {
	return &Handler{
		service: service,
		auditor: auditor,
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("username and password are required", err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Bad credentials are a user-visible rejection, not an audit
		// entry.
		handler.Error(c, err)
		return
	}

	if err := h.auditor.Log(c.Request.Context(), sess.User, model.ActionLogin, fmt.Sprintf("User %s logged in", sess.User.Username)); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.LoginResponse{
		Token:    sess.Token,
		Username: sess.User.Username,
		Role:     sess.User.Role,
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	if err := h.auditor.Log(c.Request.Context(), sess.User, model.ActionLogout, "User logged out"); err != nil {
		handler.Error(c, err)
		return
	}

	h.service.Logout(sess.Token)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"logged_out": true}))
}
