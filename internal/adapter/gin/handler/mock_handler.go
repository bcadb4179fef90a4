package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Export formats accepted by GET /export/users
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// mockUsers backs the admin and export endpoints. It is independent of the user store.
var mockUsers = []UserResponse{
	{ID: 1, Name: "John Doe", Email: "john.doe@example.com"},
	{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com"},
}

// MessageResponse is a body carrying only a message
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the fixed body of POST /auth/login
type LoginResponse struct {
	Token     string    `json:"token"`
	User      LoginUser `json:"user"`
	ExpiresIn int       `json:"expiresIn"`
}

// LoginUser is the user embedded in LoginResponse
type LoginUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StatisticsResponse is the fixed body of GET /admin/statistics
type StatisticsResponse struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	NewUsersToday int `json:"newUsersToday"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// MockHandler serves the demonstration endpoints that return fixed data.
// None of them authenticate, store files or touch the user store.
type MockHandler struct {
	version string
	log     *zap.Logger
	now     func() time.Time
}

// NewMockHandler creates a MockHandler reporting version on / and /health
func NewMockHandler(version string, log *zap.Logger) *MockHandler {
	return &MockHandler{
		version: version,
		log:     log,
		now:     time.Now,
	}
}

// Root handles GET /
func (h *MockHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Complete User Management API",
		"endpoints": gin.H{
			"users":          "/users",
			"authentication": "/auth",
			"admin":          "/admin",
			"documentation":  "/docs",
		},
		"version":  h.version,
		"features": []string{"CRUD Operations", "Authentication", "File Upload", "Admin Panel", "Search", "Export", "Analytics"},
	})
}

// Health handles GET /health
func (h *MockHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:   h.version,
	})
}

// SearchUsers handles GET /users/search
func (h *MockHandler) SearchUsers(c *gin.Context) {
	q, err := security.ValidateSearchQuery(c.Query("q"))
	if err == nil {
		_, err = security.ParseSearchFields(c.Query("fields"))
	}
	if err != nil {
		h.log.Warn("Invalid search query", zap.String("q", c.Query("q")), zap.Error(err))
		apiErr := pkgerrors.NewBadRequestError(pkgerrors.MsgInvalidSearch)
		apiErr.Err = err
		respondError(c, h.log, apiErr)
		return
	}

	c.JSON(http.StatusOK, []UserResponse{
		{ID: 1, Name: "Results for: " + q, Email: "search@example.com"},
	})
}

// UploadAvatar handles POST /users/:id/avatar
func (h *MockHandler) UploadAvatar(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Avatar uploaded successfully"})
}

// DeleteAvatar handles DELETE /users/:id/avatar
func (h *MockHandler) DeleteAvatar(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Login handles POST /auth/login
func (h *MockHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, LoginResponse{
		Token:     "mock-jwt-token",
		User:      LoginUser{ID: 1, Name: "John Doe"},
		ExpiresIn: 3600,
	})
}

// Logout handles POST /auth/logout
func (h *MockHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// ForgotPassword handles POST /auth/forgot-password
func (h *MockHandler) ForgotPassword(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset email sent"})
}

// ResetPassword handles POST /auth/reset-password
func (h *MockHandler) ResetPassword(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successful"})
}

// AdminListUsers handles GET /admin/users
func (h *MockHandler) AdminListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, mockUsers)
}

// BanUser handles POST /admin/users/:id/ban
func (h *MockHandler) BanUser(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: "User banned successfully"})
}

// Statistics handles GET /admin/statistics
func (h *MockHandler) Statistics(c *gin.Context) {
	c.JSON(http.StatusOK, StatisticsResponse{
		TotalUsers:    150,
		ActiveUsers:   142,
		NewUsersToday: 5,
	})
}

// ExportUsers handles GET /export/users
func (h *MockHandler) ExportUsers(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", FormatCSV))

	switch format {
	case FormatJSON:
		c.Header("Content-Disposition", `attachment; filename="users.json"`)
		c.JSON(http.StatusOK, mockUsers)
	case FormatCSV:
		c.Header("Content-Disposition", `attachment; filename="users.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"id", "name", "email"})
		for _, u := range mockUsers {
			_ = w.Write([]string{strconv.FormatInt(u.ID, 10), u.Name, u.Email})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			h.log.Error("Failed to write CSV export", zap.Error(err))
		}
	default:
		respondError(c, h.log, pkgerrors.NewBadRequestError(pkgerrors.MsgInvalidFormat))
	}
}

// NotFound answers every unmatched route with a directory of the API.
func (h *MockHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"message": "Route not found",
		"availableEndpoints": gin.H{
			"User Management":   "/users",
			"Authentication":    "/auth",
			"Admin Panel":       "/admin",
			"Health Check":      "/health",
			"API Documentation": "/docs",
		},
	})
}
