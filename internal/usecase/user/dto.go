package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
	Age   *int
}

// UpdateUserRequest represents the request payload for replacing an existing user.
// Name, Email and Age are all overwritten; a nil Age clears the stored age.
type UpdateUserRequest struct {
	ID    int64
	Name  string `validate:"required"`
	Email string `validate:"required"`
	Age   *int
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
	Age   *int
}
