package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	auditHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/audit"
	authHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/auth"
	dashboardHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/dashboard"
	patientHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/patient"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository/sqlite"
	auditService "github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	authService "github.com/HafsaFatima26/hospital-management-system/internal/service/auth"
	patientService "github.com/HafsaFatima26/hospital-management-system/internal/service/patient"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
	"github.com/HafsaFatima26/hospital-management-system/pkg/validator"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.RegisterCustomRules())

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	hasher := security.NewBcryptHasher(4)
	require.NoError(t, sqlite.SeedUsers(context.Background(), userRepo, hasher))

	key, err := security.GenerateEncryptionKey()
	require.NoError(t, err)
	cipher, err := security.NewAESEncryptor(key)
	require.NoError(t, err)

	sessions := authService.NewSessionStore(time.Hour)
	authSvc := authService.NewService(userRepo, hasher, sessions)
	auditSvc := auditService.NewService(sqlite.NewAuditRepository(db))
	patientSvc := patientService.NewService(sqlite.NewPatientRepository(db), cipher, auditSvc)

	r := New(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc, auditSvc),
		dashboardHandler.NewHandler(auditSvc, time.Now()),
		patientHandler.NewHandler(patientSvc),
		auditHandler.NewHandler(auditSvc),
		handler.NewHealthHandler(db),
		Config{},
	)
	return r.Engine()
}

type envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp envelope
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func login(t *testing.T, engine *gin.Engine, username, password string) string {
	t.Helper()
	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	engine := newTestApp(t)
	w, _ := doRequest(t, engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestApp(t)
	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	engine := newTestApp(t)

	w, _ := doRequest(t, engine, http.MethodGet, "/api/v1/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/patients", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceptionistAddPatientFlow(t *testing.T) {
	engine := newTestApp(t)
	token := login(t, engine, "alice_recep", "rec123")

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/patients", token, gin.H{
		"name":      "Jane Doe",
		"contact":   "5551234567",
		"diagnosis": "flu",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp.Data["patient_id"])
	assert.Equal(t, "Patient_1", resp.Data["anonymized_name"])

	// The audit trail has the corresponding ADD_PATIENT entry.
	adminToken := login(t, engine, "admin", "admin123")
	w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/audit-logs?action=ADD_PATIENT", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs, ok := resp.Data["logs"].([]interface{})
	require.True(t, ok)
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]interface{})
	assert.Equal(t, "alice_recep", entry["username"])
	assert.Equal(t, "receptionist", entry["role"])
}

func TestDoctorCannotAddPatient(t *testing.T) {
	engine := newTestApp(t)
	token := login(t, engine, "dr_bob", "doc123")

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/patients", token, gin.H{
		"name":      "Jane Doe",
		"contact":   "5551234567",
		"diagnosis": "flu",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Blocked attempts leave no record and no audit entry.
	adminToken := login(t, engine, "admin", "admin123")
	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/patients?view=raw", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	patients, ok := resp.Data["patients"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, patients)

	w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/audit-logs?action=ADD_PATIENT", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs, _ := resp.Data["logs"].([]interface{})
	assert.Empty(t, logs)
}

func TestRoleGatedPatientViews(t *testing.T) {
	engine := newTestApp(t)
	recep := login(t, engine, "alice_recep", "rec123")

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/patients", recep, gin.H{
		"name": "Jane Doe", "contact": "5551234567", "diagnosis": "flu",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	doctor := login(t, engine, "dr_bob", "doc123")
	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/patients", doctor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	patients := resp.Data["patients"].([]interface{})
	require.Len(t, patients, 1)
	view := patients[0].(map[string]interface{})
	assert.Equal(t, "Patient_1", view["name"])
	assert.Equal(t, "******4567", view["contact"])

	// Doctors never see raw data; receptionists see nothing.
	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/patients?view=raw", doctor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/patients", recep, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnonymizeAndDecrypt(t *testing.T) {
	engine := newTestApp(t)
	recep := login(t, engine, "alice_recep", "rec123")
	admin := login(t, engine, "admin", "admin123")

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/patients", recep, gin.H{
		"name": "Jane Doe", "contact": "5551234567", "diagnosis": "flu",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/patients/anonymize", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp.Data["anonymized"])

	w, resp = doRequest(t, engine, http.MethodGet, "/api/v1/patients/1/decrypt", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Doe", resp.Data["name"])
	assert.Equal(t, "5551234567", resp.Data["contact"])

	// Anonymize and decrypt are admin capabilities.
	w, _ = doRequest(t, engine, http.MethodPost, "/api/v1/patients/anonymize", recep, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCSVExport(t *testing.T) {
	engine := newTestApp(t)
	recep := login(t, engine, "alice_recep", "rec123")
	admin := login(t, engine, "admin", "admin123")

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/patients", recep, gin.H{
		"name": "Jane Doe", "contact": "5551234567", "diagnosis": "flu",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/patients/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "patients_data_")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "patient_id,name,contact,diagnosis"))
	assert.Contains(t, lines[1], "Jane Doe")

	// Export is admin only.
	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/patients/export", recep, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	engine := newTestApp(t)
	token := login(t, engine, "admin", "admin123")

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboard(t *testing.T) {
	engine := newTestApp(t)
	token := login(t, engine, "dr_bob", "doc123")

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dr_bob", resp.Data["username"])
	assert.Equal(t, "doctor", resp.Data["role"])
}
