package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UserHive/go-user-server/internal/auth"
	"github.com/UserHive/go-user-server/internal/log"
	"github.com/UserHive/go-user-server/internal/models/user"
)

// ErrWrongPassword is returned when a submitted password does not verify
// against the stored hash.
var ErrWrongPassword = errors.New("wrong password")

type UserService struct {
	store  user.Store
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	events *EventService
	logger *log.Logger
}

// NewUserService creates a new UserService. The events service may be nil,
// in which case lifecycle events are silently skipped.
func NewUserService(store user.Store, hasher *auth.PasswordHasher, tokens *auth.TokenService, events *EventService, logger *log.Logger) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: logger,
	}
}

// ListUsers returns every user record.
func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.store.FindAll(ctx)
}

// Register hashes the password and inserts a new user.
// Returns user.ErrEmailTaken if the email is already registered. Two
// concurrent registrations can both pass the existence check here; the
// store's unique-email constraint is the backstop and surfaces as the same
// error.
func (s *UserService) Register(ctx context.Context, email, password string) (*user.User, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, user.ErrEmailTaken
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &user.User{Email: email, Password: hash}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publish(ctx, EventUserRegistered, u)
	return u, nil
}

// Login verifies the credentials and issues a session token.
// Returns user.ErrUserNotFound for an unknown email and ErrWrongPassword for
// a failed password check; the controller maps these to distinct statuses.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(u.Password, password) {
		return "", ErrWrongPassword
	}

	return s.tokens.Issue(u.ID.Hex())
}

// UpdateEmail sets a new email on the user with the given ID.
func (s *UserService) UpdateEmail(ctx context.Context, id primitive.ObjectID, email string) (*user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Email = email
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword verifies the old password and stores a hash of the new one.
func (s *UserService) UpdatePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) (*user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(u.Password, oldPassword) {
		return nil, ErrWrongPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	u.Password = hash
	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser verifies the password and removes the user record.
func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID, password string) (*user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(u.Password, password) {
		return nil, ErrWrongPassword
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.publish(ctx, EventUserDeleted, u)
	return u, nil
}

// publish sends a lifecycle event when an event service is configured.
// Publishing is best-effort; failures are logged and never surfaced.
func (s *UserService) publish(ctx context.Context, eventType string, u *user.User) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, u); err != nil {
		s.logger.Warnf("Failed to publish %s event for user %s: %s", eventType, u.ID.Hex(), err)
	}
}
