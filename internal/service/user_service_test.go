package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func TestUserServiceCreate(t *testing.T) {
	db := setupStore(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Name: "", Email: "x@example.com"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Bob", Email: "not-an-email"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Bob", Email: "alice@example.com"})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestUserServicePatch(t *testing.T) {
	db := setupStore(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// Patching only the name leaves the email untouched.
	updated, err := svc.UpdateUser(ctx, created.ID, &models.UpdateUserRequest{Name: strPtr("Alice B")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	updated, err = svc.UpdateUser(ctx, created.ID, &models.UpdateUserRequest{Email: strPtr("alice.b@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
}

func TestUserServicePatchEmailConflict(t *testing.T) {
	db := setupStore(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()

	alice, err := svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, alice.ID, &models.UpdateUserRequest{Email: strPtr("bob@example.com")})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// Re-submitting the current email is not a conflict.
	got, err := svc.UpdateUser(ctx, alice.ID, &models.UpdateUserRequest{Email: strPtr("alice@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserServiceGetDelete(t *testing.T) {
	db := setupStore(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()

	_, err := svc.GetUser(ctx, 42)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	created, err := svc.CreateUser(ctx, &models.CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))
	err = svc.DeleteUser(ctx, created.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
