package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mediflow-ai/mediflow/internal/config"
	"github.com/mediflow-ai/mediflow/internal/domain"
	"github.com/mediflow-ai/mediflow/internal/service"
	"github.com/mediflow-ai/mediflow/internal/store"
	"github.com/mediflow-ai/mediflow/pkg/auth"
	"github.com/mediflow-ai/mediflow/pkg/metrics"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "mediflow-test", Environment: "test", Version: "0.0.0-test"},
		JWT: config.JWTConfig{
			Secret:          "router-test-secret-0123456789abcdef",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			Issuer:          "mediflow-test",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.mediflow.ai"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         time.Hour,
		},
	}

	log := zap.NewNop()
	collector := metrics.NewCollectorWith("test", prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager(cfg.JWT)
	mem := store.NewMemory()

	auditSvc := service.NewAuditService(mem, collector, log)
	router := NewRouter(cfg, log, collector, jwtManager, Handlers{
		Patient: NewPatientHandler(service.NewPatientService(
			mem.Patients(), mem.Allergies(), mem.Conditions(),
			mem.Notes(), mem.Tasks(), mem.Appointments(), mem.Referrals(),
			auditSvc, collector, log,
		)),
		Note:        NewNoteHandler(service.NewNoteService(mem.Notes(), mem.Patients(), auditSvc, collector, log)),
		Task:        NewTaskHandler(service.NewTaskService(mem.Tasks(), mem.Patients(), auditSvc, collector, log)),
		Appointment: NewAppointmentHandler(service.NewAppointmentService(mem.Appointments(), mem.Patients(), auditSvc, log)),
		Referral:    NewReferralHandler(service.NewReferralService(mem.Referrals(), mem.Patients(), auditSvc, log)),
		Workflow:    NewWorkflowHandler(service.NewWorkflowService(mem.Templates(), auditSvc, collector, log)),
		Admin:       NewAdminHandler(service.NewAdminService(mem, auditSvc, log)),
		Auth:        NewAuthHandler(service.NewAuthService(mem, jwtManager, log)),
	})
	return router, mem
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPatientHTTP(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"first_name":    "Maria",
		"last_name":     "Santos",
		"date_of_birth": "1988-04-17",
		"gender":        "female",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mediflow-test")
}

func TestPatientEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createPatientHTTP(t, r)

	// Chart comes back with empty dependent sequences.
	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allergies":[]`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/unknown-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/v1/patients/"+id, gin.H{"phone": "+1-555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+1-555-0100")

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/search?q=santos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/patients/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientValidationResponse(t *testing.T) {
	r, _ := newTestRouter(t)

	// Binding catches missing required fields.
	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{"first_name": "Maria"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Service-level validation reports field errors.
	w = doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"first_name":    "Maria",
		"last_name":     "Santos",
		"date_of_birth": "not-a-date",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date_of_birth must be YYYY-MM-DD")
}

func TestNoteTransitionRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createPatientHTTP(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/notes", gin.H{
		"patient_id": id,
		"type":       "soap",
		"content":    "S: headache.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	noteURL := fmt.Sprintf("/api/v1/notes/%d", resp.Data.ID)

	w = doJSON(t, r, http.MethodPatch, noteURL, gin.H{"status": "signed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, noteURL, gin.H{"status": "final"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWorkflowUsage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/workflows", gin.H{
		"name":     "Discharge",
		"category": "inpatient",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/workflows/1/use", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"usage_count":1`)

	w = doJSON(t, r, http.MethodPost, "/api/v1/workflows/404/use", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/workflows/not-a-number/use", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createPatientHTTP(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_patients":1`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/audit-log?entity_type=patient&entity_id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"CREATE"`)
}

func TestAuthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":      "dr.reyes@mediflow.ai",
		"password":   "correct horse battery",
		"first_name": "Elena",
		"last_name":  "Reyes",
		"role":       "doctor",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "dr.reyes@mediflow.ai",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "dr.reyes@mediflow.ai",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{
		"refresh_token": resp.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityAttributesAuditActor(t *testing.T) {
	r, mem := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":      "dr.reyes@mediflow.ai",
		"password":   "correct horse battery",
		"first_name": "Elena",
		"last_name":  "Reyes",
		"role":       "doctor",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "dr.reyes@mediflow.ai",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	body, err := json.Marshal(gin.H{"title": "review labs"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+resp.Data.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	entries, err := mem.AuditLog(req.Context(), domain.AuditFilter{EntityType: "task"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dr.reyes@mediflow.ai", entries[0].Actor)
}

func TestUnauthenticatedMutationsUseSystemActor(t *testing.T) {
	r, mem := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks", gin.H{"title": "restock"})
	require.Equal(t, http.StatusCreated, w.Code)

	entries, err := mem.AuditLog(httptest.NewRequest(http.MethodGet, "/", nil).Context(), domain.AuditFilter{EntityType: "task"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "system", entries[0].Actor)
}
