package attendance

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, employeeID string, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(t, now, Options{}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Next()
	})
	g := r.Group("/attendance")
	g.GET("", h.List)
	g.GET("/calendar", h.Calendar)
	g.POST("/clock-in", h.ClockIn)
	g.POST("/clock-out", h.ClockOut)
	return r
}

func TestHandler_ClockInOut(t *testing.T) {
	r := setupRouter(t, "emp-1", time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PRESENT"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/clock-out", strings.NewReader(`{"notes":"done"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":"done"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?year=2026&month=3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attendance_date":"2026-03-02"`)
}

func TestHandler_Calendar(t *testing.T) {
	r := setupRouter(t, "emp-1", time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/calendar?year=2026&month=3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"March 2026"`)
	assert.Contains(t, w.Body.String(), `"off":5`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/calendar?month=13", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_NoEmployee(t *testing.T) {
	r := setupRouter(t, "", time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
