package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/user"
	pkgerrors "user-directory-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)                  // All users in insertion order
	GetByID(ctx context.Context, id int64) (*domain.User, error)      // Retrieve user by ID
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Assign ID and append
	Update(ctx context.Context, u *domain.User) (*domain.User, error) // Replace name, email, age
	Delete(ctx context.Context, id int64) error                       // Remove user by ID
}

// UserUsecase implements the user directory operations on top of a Repository.
// Expected failures are returned as *pkgerrors.APIError values.
type UserUsecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, log: log, validate: validator.New()}
}

// validateInput runs before any lookup or mutation. All failures collapse into one
// client message.
func (uc *UserUsecase) validateInput(in any) error {
	if err := uc.validate.Struct(in); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return pkgerrors.NewBadRequestError(pkgerrors.MsgNameEmailMissing)
		}
		return err
	}
	return nil
}

// ListUsers returns every user in insertion order.
func (uc *UserUsecase) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, uc.lookupError("get", in.ID, err)
	}

	out := toDTO(*u)
	return &out, nil
}

// CreateUser validates the input and appends a new user with a directory-assigned ID.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validateInput(in); err != nil {
		uc.log.Warn("create user validation failed", zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	out := toDTO(*u)
	return &out, nil
}

// UpdateUser validates the input first, then replaces name, email and age of an
// existing user. An invalid body on a missing id is a bad request, not a not-found.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validateInput(in); err != nil {
		uc.log.Warn("update user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.Update(ctx, &domain.User{
		ID:    in.ID,
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	})
	if err != nil {
		return nil, uc.lookupError("update", in.ID, err)
	}

	out := toDTO(*u)
	return &out, nil
}

// DeleteUser removes a user by ID.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		return uc.lookupError("delete", in.ID, err)
	}
	return nil
}

// lookupError maps a repository miss to the client-facing not-found error.
func (uc *UserUsecase) lookupError(op string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn("user not found", zap.String("op", op), zap.Int64("id", id))
		return pkgerrors.NewNotFoundError(pkgerrors.MsgUserNotFound)
	}
	uc.log.Error("user lookup failed", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	return err
}

func toDTO(u domain.User) User {
	return User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Age:   u.Age,
	}
}
