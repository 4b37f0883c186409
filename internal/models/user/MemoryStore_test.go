package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryStoreCreateAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()

	u := &User{Email: "john@doe.com", Password: "hash"}
	require.NoError(t, ms.Create(ctx, u))
	assert.False(t, u.ID.IsZero())

	byID, err := ms.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@doe.com", byID.Email)

	byEmail, err := ms.FindByEmail(ctx, "john@doe.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	all, err := ms.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStoreUniqueEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()

	require.NoError(t, ms.Create(ctx, &User{Email: "john@doe.com", Password: "hash"}))
	err := ms.Create(ctx, &User{Email: "john@doe.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	all, err := ms.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStoreSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()

	u := &User{Email: "john@doe.com", Password: "hash"}
	require.NoError(t, ms.Create(ctx, u))

	u.Email = "jane@doe.com"
	require.NoError(t, ms.Save(ctx, u))

	saved, err := ms.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@doe.com", saved.Email)

	// Saving onto another user's email violates the unique constraint.
	other := &User{Email: "bob@doe.com", Password: "hash"}
	require.NoError(t, ms.Create(ctx, other))
	other.Email = "jane@doe.com"
	assert.ErrorIs(t, ms.Save(ctx, other), ErrEmailTaken)

	missing := &User{ID: primitive.NewObjectID(), Email: "ghost@doe.com"}
	assert.ErrorIs(t, ms.Save(ctx, missing), ErrUserNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()

	u := &User{Email: "john@doe.com", Password: "hash"}
	require.NoError(t, ms.Create(ctx, u))

	require.NoError(t, ms.Delete(ctx, u.ID))
	_, err := ms.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, ms.Delete(ctx, u.ID), ErrUserNotFound)
}
