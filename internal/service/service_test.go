package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/models"
)

// Services are tested against a real in-memory store; the SQL layer is
// cheap enough that mocking it buys nothing.
func setupStore(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) PublishJSON(eventType string, _ interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
	return nil
}

func (r *eventRecorder) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newUser(t *testing.T, db *database.DB, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func newItem(t *testing.T, db *database.DB, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func newBooking(t *testing.T, db *database.DB, itemID, bookerID int64, start, end time.Time, status string) *models.Booking {
	t.Helper()
	b := &models.Booking{ItemID: itemID, BookerID: bookerID, StartDate: start, EndDate: end, Status: models.StatusWaiting}
	require.NoError(t, db.CreateBooking(context.Background(), b))
	if status != models.StatusWaiting {
		require.NoError(t, db.UpdateBookingStatus(context.Background(), b.ID, status))
		b.Status = status
	}
	return b
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
