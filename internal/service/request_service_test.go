package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func TestRequestServiceCreate(t *testing.T) {
	db := setupStore(t)
	svc := NewRequestService(db, testLogger())
	ctx := context.Background()

	alice := newUser(t, db, "Alice", "alice@example.com")

	created, err := svc.CreateRequest(ctx, alice.ID, &models.CreateRequestRequest{Description: "need a ladder"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, alice.ID, created.RequesterID)
	assert.False(t, created.Created.IsZero())

	_, err = svc.CreateRequest(ctx, alice.ID, &models.CreateRequestRequest{Description: "  "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateRequest(ctx, 999, &models.CreateRequestRequest{Description: "need a ladder"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRequestServiceAnswers(t *testing.T) {
	db := setupStore(t)
	svc := NewRequestService(db, testLogger())
	items := NewItemService(db, testLogger())
	ctx := context.Background()

	alice := newUser(t, db, "Alice", "alice@example.com")
	bob := newUser(t, db, "Bob", "bob@example.com")

	request, err := svc.CreateRequest(ctx, alice.ID, &models.CreateRequestRequest{Description: "need a ladder"})
	require.NoError(t, err)

	_, err = items.CreateItem(ctx, bob.ID, &models.CreateItemRequest{Name: "Ladder", Available: true, RequestID: &request.ID})
	require.NoError(t, err)

	got, err := svc.GetRequest(ctx, alice.ID, request.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Ladder", got.Items[0].Name)

	_, err = svc.GetRequest(ctx, alice.ID, 999)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.GetRequest(ctx, 999, request.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestRequestServiceListing(t *testing.T) {
	db := setupStore(t)
	svc := NewRequestService(db, testLogger())
	ctx := context.Background()

	alice := newUser(t, db, "Alice", "alice@example.com")
	bob := newUser(t, db, "Bob", "bob@example.com")

	first, err := svc.CreateRequest(ctx, alice.ID, &models.CreateRequestRequest{Description: "need a ladder"})
	require.NoError(t, err)
	second, err := svc.CreateRequest(ctx, alice.ID, &models.CreateRequestRequest{Description: "need a saw"})
	require.NoError(t, err)
	theirs, err := svc.CreateRequest(ctx, bob.ID, &models.CreateRequestRequest{Description: "need a tent"})
	require.NoError(t, err)

	mine, err := svc.GetUserRequests(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	assert.NotNil(t, mine[0].Items)

	// The full listing carries every request, the caller's own included,
	// newest first.
	all, err := svc.GetAllRequests(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, theirs.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	_, err = svc.GetUserRequests(ctx, 999)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
