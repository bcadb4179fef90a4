package handler

import (
	"errors"
	"io"
	"net/http"

	domain "user-directory-service/internal/domain/user"
	"user-directory-service/internal/usecase/user"
	pkgerrors "user-directory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserRequest represents the HTTP request body for creating or replacing a user
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age,omitempty"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	req, err := bindUserRequest(c)
	if err != nil {
		h.log.Warn("Invalid create user request", zap.Error(err))
		respondError(c, h.log, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(resp))
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id := domain.ParseID(c.Param("id"))

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := domain.ParseID(c.Param("id"))

	req, err := bindUserRequest(c)
	if err != nil {
		h.log.Warn("Invalid update user request", zap.String("id", c.Param("id")), zap.Error(err))
		respondError(c, h.log, err)
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := domain.ParseID(c.Param("id"))

	if err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /users. Query parameters are ignored.
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	users := make([]UserResponse, 0, len(resp))
	for i := range resp {
		users = append(users, toResponse(&resp[i]))
	}

	c.JSON(http.StatusOK, users)
}

// bindUserRequest decodes the JSON body. An empty body decodes as {} so the
// usecase reports the missing fields.
func bindUserRequest(c *gin.Context) (UserRequest, error) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apiErr := pkgerrors.NewBadRequestError(pkgerrors.MsgInvalidBody)
		apiErr.Err = err
		return UserRequest{}, apiErr
	}
	return req, nil
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
	}
}
