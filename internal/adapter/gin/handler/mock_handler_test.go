package handler

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupMockRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMockHandler("2.0.0", zaptest.NewLogger(t))
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/users/search", h.SearchUsers)
	r.POST("/users/:id/avatar", h.UploadAvatar)
	r.DELETE("/users/:id/avatar", h.DeleteAvatar)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)
	r.GET("/admin/users", h.AdminListUsers)
	r.POST("/admin/users/:id/ban", h.BanUser)
	r.GET("/admin/statistics", h.Statistics)
	r.GET("/export/users", h.ExportUsers)
	r.NoRoute(h.NotFound)
	return r
}

func TestMockHandler_FixedResponses(t *testing.T) {
	r := setupMockRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		code   int
		body   string
	}{
		{
			name:   "health",
			method: http.MethodGet,
			path:   "/health",
			code:   http.StatusOK,
			body:   `{"status":"healthy","timestamp":"2024-05-01T12:30:00.000Z","version":"2.0.0"}`,
		},
		{
			name:   "search",
			method: http.MethodGet,
			path:   "/users/search?q=john",
			code:   http.StatusOK,
			body:   `[{"id":1,"name":"Results for: john","email":"search@example.com"}]`,
		},
		{
			name:   "upload avatar",
			method: http.MethodPost,
			path:   "/users/1/avatar",
			code:   http.StatusOK,
			body:   `{"message":"Avatar uploaded successfully"}`,
		},
		{
			name:   "login",
			method: http.MethodPost,
			path:   "/auth/login",
			code:   http.StatusOK,
			body:   `{"token":"mock-jwt-token","user":{"id":1,"name":"John Doe"},"expiresIn":3600}`,
		},
		{
			name:   "logout",
			method: http.MethodPost,
			path:   "/auth/logout",
			code:   http.StatusOK,
			body:   `{"message":"Logged out successfully"}`,
		},
		{
			name:   "forgot password",
			method: http.MethodPost,
			path:   "/auth/forgot-password",
			code:   http.StatusOK,
			body:   `{"message":"Password reset email sent"}`,
		},
		{
			name:   "reset password",
			method: http.MethodPost,
			path:   "/auth/reset-password",
			code:   http.StatusOK,
			body:   `{"message":"Password reset successful"}`,
		},
		{
			name:   "ban",
			method: http.MethodPost,
			path:   "/admin/users/7/ban",
			code:   http.StatusOK,
			body:   `{"message":"User banned successfully"}`,
		},
		{
			name:   "statistics",
			method: http.MethodGet,
			path:   "/admin/statistics",
			code:   http.StatusOK,
			body:   `{"totalUsers":150,"activeUsers":142,"newUsersToday":5}`,
		},
		{
			name:   "admin users",
			method: http.MethodGet,
			path:   "/admin/users",
			code:   http.StatusOK,
			body:   `[{"id":1,"name":"John Doe","email":"john.doe@example.com"},{"id":2,"name":"Jane Smith","email":"jane.smith@example.com"}]`,
		},
		{
			name:   "export json",
			method: http.MethodGet,
			path:   "/export/users?format=json",
			code:   http.StatusOK,
			body:   `[{"id":1,"name":"John Doe","email":"john.doe@example.com"},{"id":2,"name":"Jane Smith","email":"jane.smith@example.com"}]`,
		},
		{
			name:   "export invalid format",
			method: http.MethodGet,
			path:   "/export/users?format=xlsx",
			code:   http.StatusBadRequest,
			body:   `{"status":400,"message":"Invalid format"}`,
		},
		{
			name:   "unmatched route",
			method: http.MethodGet,
			path:   "/nope",
			code:   http.StatusNotFound,
			body: `{"message":"Route not found","availableEndpoints":{
				"User Management":"/users","Authentication":"/auth","Admin Panel":"/admin",
				"Health Check":"/health","API Documentation":"/docs"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestMockHandler_Root(t *testing.T) {
	r := setupMockRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Welcome to the Complete User Management API"`)
	assert.Contains(t, w.Body.String(), `"version":"2.0.0"`)
	assert.Contains(t, w.Body.String(), `"documentation":"/docs"`)
}

func TestMockHandler_DeleteAvatar(t *testing.T) {
	r := setupMockRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/1/avatar", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestMockHandler_SearchRejectsInvalidQuery(t *testing.T) {
	r := setupMockRouter(t)

	for _, path := range []string{
		"/users/search",
		"/users/search?q=%20%20",
		"/users/search?q=x%27%20OR%201%3D1",
		"/users/search?q=john&fields=password",
	} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"status":400,"message":"Invalid search query"}`, w.Body.String())
		})
	}
}

func TestMockHandler_ExportCSV(t *testing.T) {
	r := setupMockRouter(t)

	for _, path := range []string{"/export/users", "/export/users?format=CSV"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

			records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, [][]string{
				{"id", "name", "email"},
				{"1", "John Doe", "john.doe@example.com"},
				{"2", "Jane Smith", "jane.smith@example.com"},
			}, records)
		})
	}
}
