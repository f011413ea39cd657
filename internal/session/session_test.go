package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hr-portal/internal/session"
	"hr-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-nextauth-secret"

func signToken(t *testing.T, role, name string) string {
	t.Helper()
	reader := session.NewReader(testSecret)
	token, err := reader.Sign(session.Claims{
		Name:       name,
		Email:      "ana@example.com",
		Role:       role,
		EmployeeID: "emp-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-1",
		},
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestReader_Read(t *testing.T) {
	reader := session.NewReader(testSecret)

	t.Run("success from secure cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.SecureCookieName, Value: signToken(t, "hr", "Ana López")})

		claims, err := reader.Read(req)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, "hr", claims.Role)
		assert.Equal(t, "Ana López", claims.DisplayName())
	})

	t.Run("success from bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "employee", ""))

		claims, err := reader.Read(req)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.DisplayName())
	})

	t.Run("negative no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		claims, err := reader.Read(req)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		other := session.NewReader("another-secret")
		token, err := other.Sign(session.Claims{Role: "hr", RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})

		claims, err := reader.Read(req)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})

	t.Run("negative expired", func(t *testing.T) {
		token, err := reader.Sign(session.Claims{Role: "hr", RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, -time.Minute)
		require.NoError(t, err)

		_, err = reader.Parse(token)
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	})
}

func TestPolicy_Allowed(t *testing.T) {
	policy, err := session.NewPolicy("")
	require.NoError(t, err)

	cases := []struct {
		role, resource, action string
		want                   bool
	}{
		{"employee", session.ResourceEmployeeDashboard, session.ActionView, true},
		{"employee", session.ResourceRequests, session.ActionApprove, false},
		{"hr", session.ResourceRequests, session.ActionApprove, true},
		{"hr", session.ResourceRequests, session.ActionCreate, true},
		{"HR", session.ResourceHRDashboard, session.ActionView, true},
		{"payroll", session.ResourceHRDashboard, session.ActionView, false},
		{"payroll", session.ResourcePayrollReports, session.ActionApprove, true},
		{"admin", session.ResourcePayrollReports, session.ActionExport, true},
		{"admin", session.ResourceEmployees, session.ActionDelete, true},
		{"", session.ResourceRequests, session.ActionRead, false},
		{"guest", session.ResourceRequests, session.ActionRead, false},
	}
	for _, tc := range cases {
		got, err := policy.Allowed(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}

func newGateRouter(t *testing.T, mode session.Mode) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policy, err := session.NewPolicy("")
	require.NoError(t, err)
	gate := session.NewGate(session.NewReader(testSecret), policy, "/login")

	r := gin.New()
	r.GET("/guarded", gate.Require(session.ResourceHRDashboard, session.ActionView, mode), func(c *gin.Context) {
		claims := session.FromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user":  claims.Subject,
			"actor": contextutil.GetActorName(c.Request.Context()),
		})
	})
	return r
}

func TestGate_Require(t *testing.T) {
	t.Run("page mode redirects without session", func(t *testing.T) {
		r := newGateRouter(t, session.ModePage)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("page mode redirects forbidden role", func(t *testing.T) {
		r := newGateRouter(t, session.ModePage)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signToken(t, "employee", "Eva")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("api mode answers 401 and 403", func(t *testing.T) {
		r := newGateRouter(t, session.ModeAPI)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "payroll", "Pat"))
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var env struct {
			Ok    bool `json:"ok"`
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Ok)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("success stores claims and actor", func(t *testing.T) {
		r := newGateRouter(t, session.ModeAPI)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signToken(t, "admin", "Ana López")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"user-1","actor":"Ana López"}`, w.Body.String())
	})
}
