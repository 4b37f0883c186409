package user

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store implementation. It backs the test suite
// and local runs without a MongoDB instance, and enforces the same
// unique-email constraint as the real collection.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[primitive.ObjectID]User),
	}
}

func (ms *MemoryStore) FindAll(_ context.Context) ([]User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	users := []User{}
	for _, u := range ms.users {
		users = append(users, u)
	}
	return users, nil
}

func (ms *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, u := range ms.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (ms *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	u, ok := ms.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := u
	return &found, nil
}

func (ms *MemoryStore) Create(_ context.Context, u *User) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, existing := range ms.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	ms.users[u.ID] = *u
	return nil
}

func (ms *MemoryStore) Save(_ context.Context, u *User) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	for id, existing := range ms.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	ms.users[u.ID] = *u
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(ms.users, id)
	return nil
}
