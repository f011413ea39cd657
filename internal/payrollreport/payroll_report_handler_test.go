package payrollreport_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-portal/internal/payrollreport"
	"hr-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withActor(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithActorName(c.Request.Context(), name))
		c.Next()
	}
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newService(t)
	h := payrollreport.NewHandler(svc)

	r := gin.New()
	r.Use(withActor("Ana López"))
	g := r.Group("/payroll/reports")
	g.GET("", h.List)
	g.GET("/export.xlsx", h.ExportXLSX)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/pdf", h.PDF)
	g.POST("/:id/submit", h.Submit)
	g.POST("/:id/approve", h.Approve)
	g.POST("/:id/reject", h.Reject)
	return r
}

func TestHandler_ApproveFlow(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll/reports?status=Pending%20Approval", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"PP-001"`)
	assert.NotContains(t, w.Body.String(), `"id":"PP-002"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payroll/reports/PP-001/approve", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Approved"`)
	assert.Contains(t, w.Body.String(), `"approver":"Ana López"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/reports/PP-001/reject", strings.NewReader(`{"reason":"late"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_SubmitFlow(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll/reports/PP-003/submit", strings.NewReader(`{"version":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Pending Approval"`)
	assert.Contains(t, w.Body.String(), `"submitted_by":"Ana López"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payroll/reports/PP-003/submit", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payroll/reports/PP-003/approve", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Approved"`)
}

func TestHandler_Downloads(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll/reports/PP-002/pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payroll-report-PP-002.pdf")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll/reports/export.xlsx", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll/reports/PP-404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
