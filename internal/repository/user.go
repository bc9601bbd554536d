package repository

import (
	"context"
	"errors"

	"github.com/bookvault/bookvault-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	users *Collection[model.User]
}

// NewUserRepository creates a new UserRepository over the users collection.
func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{users: NewCollection[model.User](store, UsersCollection)}
}

// Create appends user unless another user already has the same email.
func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	return r.users.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
}

// GetByEmail retrieves a user by exact, case-sensitive email match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range r.users.Load(ctx) {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	for _, u := range r.users.Load(ctx) {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// Count returns the number of registered users.
func (r *UserRepository) Count(ctx context.Context) int {
	return len(r.users.Load(ctx))
}
