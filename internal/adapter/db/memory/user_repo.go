package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"user-directory-service/internal/domain/user"
)

// IDStrategy selects how new user IDs are assigned.
type IDStrategy string

const (
	// IDStrategyMax assigns max(existing ids)+1, or 1 when empty. Deleting the
	// highest-id user lets that id be issued again.
	IDStrategyMax IDStrategy = "max"
	// IDStrategySequence assigns ids from a counter that only moves forward.
	IDStrategySequence IDStrategy = "sequence"
)

// ParseIDStrategy validates a configured strategy name.
func ParseIDStrategy(s string) (IDStrategy, error) {
	switch IDStrategy(s) {
	case IDStrategyMax, IDStrategySequence:
		return IDStrategy(s), nil
	case "":
		return IDStrategyMax, nil
	default:
		return "", fmt.Errorf("unknown id strategy %q", s)
	}
}

// DefaultUsers is the data the directory starts with when seeding is enabled.
func DefaultUsers() []user.User {
	aliceAge, bobAge := 30, 25
	return []user.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Age: &aliceAge},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Age: &bobAge},
	}
}

// UserRepo is the process-wide user store: an insertion-ordered slice guarded by a
// single mutex around every read-modify-write.
type UserRepo struct {
	mu       sync.Mutex
	users    []user.User
	strategy IDStrategy
	lastID   int64 // highest id ever issued, used by IDStrategySequence
	log      *zap.Logger
}

// NewUserRepo creates a store holding copies of seed, in order.
// Seed entries must carry unique positive ids.
func NewUserRepo(strategy IDStrategy, log *zap.Logger, seed ...user.User) (*UserRepo, error) {
	if strategy == "" {
		strategy = IDStrategyMax
	}

	r := &UserRepo{
		users:    make([]user.User, 0, len(seed)),
		strategy: strategy,
		log:      log,
	}

	seen := make(map[int64]struct{}, len(seed))
	for _, u := range seed {
		if u.ID <= 0 {
			return nil, fmt.Errorf("seed user %q has invalid id %d", u.Name, u.ID)
		}
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("seed user id %d is duplicated", u.ID)
		}
		seen[u.ID] = struct{}{}
		r.users = append(r.users, u.Clone())
		r.lastID = max(r.lastID, u.ID)
	}

	return r, nil
}

// List returns a copy of every stored user in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]user.User, len(r.users))
	for i, u := range r.users {
		out[i] = u.Clone()
	}
	return out, nil
}

// GetByID returns the user with the given id or user.ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.log.Debug("user not found in store", zap.Int64("id", id))
		return nil, user.ErrNotFound
	}

	u := r.users[i].Clone()
	return &u, nil
}

// Create assigns the next id, appends the user and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := u.Clone()
	stored.ID = r.nextID()
	r.users = append(r.users, stored)
	r.lastID = max(r.lastID, stored.ID)

	r.log.Info("user created in store", zap.Int64("id", stored.ID), zap.Int("count", len(r.users)))

	out := stored.Clone()
	return &out, nil
}

// Update replaces name, email and age of the user with u.ID in place.
func (r *UserRepo) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(u.ID)
	if i < 0 {
		return nil, user.ErrNotFound
	}

	replacement := u.Clone()
	r.users[i].Name = replacement.Name
	r.users[i].Email = replacement.Email
	r.users[i].Age = replacement.Age

	r.log.Info("user updated in store", zap.Int64("id", u.ID))

	out := r.users[i].Clone()
	return &out, nil
}

// Delete removes exactly one user by id.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return user.ErrNotFound
	}

	r.users = append(r.users[:i], r.users[i+1:]...)

	r.log.Info("user deleted from store", zap.Int64("id", id), zap.Int("count", len(r.users)))
	return nil
}

// indexOf must be called with mu held.
func (r *UserRepo) indexOf(id int64) int {
	for i, u := range r.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// nextID must be called with mu held.
func (r *UserRepo) nextID() int64 {
	if r.strategy == IDStrategySequence {
		return r.lastID + 1
	}

	var highest int64
	for _, u := range r.users {
		highest = max(highest, u.ID)
	}
	return highest + 1
}
