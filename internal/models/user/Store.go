package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrUserNotFound is returned when a requested user is not found in the database.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a user with the same email already exists.
	ErrEmailTaken = errors.New("a user with this email already exists")
)

// Store is the document-store surface the rest of the application depends on.
// UserManager implements it on top of MongoDB; MemoryStore implements it
// in-process for tests and local runs.
type Store interface {
	// FindAll returns every user record.
	FindAll(ctx context.Context) ([]User, error)
	// FindByEmail returns the user with the given email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	// Create inserts a new user, assigning an ID if none is set.
	// Returns ErrEmailTaken when the unique-email constraint is violated.
	Create(ctx context.Context, u *User) error
	// Save writes back an existing user, or ErrUserNotFound.
	Save(ctx context.Context, u *User) error
	// Delete removes the user with the given ID, or ErrUserNotFound.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
