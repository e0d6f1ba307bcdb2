package patient

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/service/patient"
	apperrors "github.com/HafsaFatima26/hospital-management-system/pkg/errors"
	"github.com/HafsaFatima26/hospital-management-system/pkg/export"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.GET("/export", h.ExportPatients)
		patients.POST("/anonymize", h.AnonymizeAll)
		patients.GET("/:id/decrypt", h.DecryptPatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("name, contact and diagnosis are required", err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), sess, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"patient_id":      created.ID,
		"anonymized_name": created.AnonymizedName,
		"date_added":      created.DateAdded,
	}))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid patient id", err))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.Validation("name, contact and diagnosis are required", err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), sess, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patient_id":         updated.ID,
		"anonymized_name":    updated.AnonymizedName,
		"anonymized_contact": updated.AnonymizedContact,
	}))
}

func (h *Handler) ListPatients(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	view := c.DefaultQuery("view", "anonymized")
	if view != "raw" && view != "anonymized" {
		handler.Error(c, apperrors.Validation("view must be raw or anonymized", nil))
		return
	}

	views, err := h.service.List(c.Request.Context(), sess, view == "raw")
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"view":     view,
		"patients": views,
	}))
}

func (h *Handler) ExportPatients(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	patients, err := h.service.Export(c.Request.Context(), sess)
	if err != nil {
		handler.Error(c, err)
		return
	}

	data, err := export.CSV(patients)
	if err != nil {
		handler.Error(c, apperrors.Internal(err))
		return
	}

	filename := export.Filename("patients_data", time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) AnonymizeAll(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	count, err := h.service.AnonymizeAll(c.Request.Context(), sess)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"anonymized": count,
	}))
}

func (h *Handler) DecryptPatient(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		handler.Error(c, apperrors.Unauthorized("no active session", nil))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid patient id", err))
		return
	}

	decrypted, err := h.service.Decrypt(c.Request.Context(), sess, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(decrypted))
}
