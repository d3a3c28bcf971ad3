package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

func TestBookingServiceCreate(t *testing.T) {
	db := setupStore(t)
	recorder := &eventRecorder{}
	svc := NewBookingService(db, recorder, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	resp, err := svc.CreateBooking(ctx, booker.ID, &models.CreateBookingRequest{
		ItemID: item.ID,
		Start:  start,
		End:    start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, models.StatusWaiting, resp.Status)
	assert.Equal(t, item.ID, resp.Item.ID)
	assert.Equal(t, booker.ID, resp.Booker.ID)
	assert.Equal(t, []string{events.EventBookingCreated}, recorder.published())
}

func TestBookingServiceCreateErrorOrder(t *testing.T) {
	db := setupStore(t)
	svc := NewBookingService(db, &eventRecorder{}, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	unavailable := newItem(t, db, owner.ID, "Broken Drill", false)

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	valid := &models.CreateBookingRequest{ItemID: unavailable.ID, Start: start, End: start.Add(time.Hour)}

	// Unknown booker wins over everything else.
	_, err := svc.CreateBooking(ctx, 999, valid)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// Unknown item wins over bad dates.
	_, err = svc.CreateBooking(ctx, booker.ID, &models.CreateBookingRequest{ItemID: 999, Start: start.Add(time.Hour), End: start})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	// Bad dates win over availability.
	_, err = svc.CreateBooking(ctx, booker.ID, &models.CreateBookingRequest{ItemID: unavailable.ID, Start: start.Add(time.Hour), End: start})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateBooking(ctx, booker.ID, &models.CreateBookingRequest{ItemID: unavailable.ID, Start: start, End: start})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.CreateBooking(ctx, booker.ID, valid)
	assert.Equal(t, domain.KindUnavailableItem, domain.KindOf(err))
}

func TestBookingServiceSetApproved(t *testing.T) {
	db := setupStore(t)
	recorder := &eventRecorder{}
	svc := NewBookingService(db, recorder, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Second)
	booking := newBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	// Only the owner decides.
	_, err := svc.SetApproved(ctx, booker.ID, booking.ID, true)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	resp, err := svc.SetApproved(ctx, owner.ID, booking.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, resp.Status)
	assert.Equal(t, []string{events.EventBookingApproved}, recorder.published())

	// A decision is terminal.
	_, err = svc.SetApproved(ctx, owner.ID, booking.ID, false)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.SetApproved(ctx, owner.ID, 999, true)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBookingServiceReject(t *testing.T) {
	db := setupStore(t)
	recorder := &eventRecorder{}
	svc := NewBookingService(db, recorder, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Second)
	booking := newBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	resp, err := svc.SetApproved(ctx, owner.ID, booking.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, resp.Status)
	assert.Equal(t, []string{events.EventBookingRejected}, recorder.published())
}

func TestBookingServiceGetVisibility(t *testing.T) {
	db := setupStore(t)
	svc := NewBookingService(db, &eventRecorder{}, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	stranger := newUser(t, db, "Stranger", "stranger@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Second)
	booking := newBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	_, err := svc.GetBooking(ctx, booker.ID, booking.ID)
	require.NoError(t, err)
	_, err = svc.GetBooking(ctx, owner.ID, booking.ID)
	require.NoError(t, err)

	_, err = svc.GetBooking(ctx, stranger.ID, booking.ID)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))

	_, err = svc.GetBooking(ctx, booker.ID, 999)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBookingServiceLists(t *testing.T) {
	db := setupStore(t)
	svc := NewBookingService(db, &eventRecorder{}, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Second)
	newBooking(t, db, item.ID, booker.ID, now.Add(-3*time.Hour), now.Add(-2*time.Hour), models.StatusApproved)
	newBooking(t, db, item.ID, booker.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), models.StatusWaiting)

	all, err := svc.ListBookerBookings(ctx, booker.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Responses carry the joined item and booker.
	assert.Equal(t, "Drill", all[0].Item.Name)
	assert.Equal(t, "Booker", all[0].Booker.Name)

	waiting, err := svc.ListBookerBookings(ctx, booker.ID, "WAITING")
	require.NoError(t, err)
	assert.Len(t, waiting, 1)

	ownerAll, err := svc.ListOwnerBookings(ctx, owner.ID, "ALL")
	require.NoError(t, err)
	assert.Len(t, ownerAll, 2)

	_, err = svc.ListBookerBookings(ctx, booker.ID, "SOMEDAY")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.ListBookerBookings(ctx, 999, "ALL")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.ListOwnerBookings(ctx, 999, "ALL")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBookingServiceExport(t *testing.T) {
	db := setupStore(t)
	svc := NewBookingService(db, &eventRecorder{}, testLogger())
	ctx := context.Background()

	owner := newUser(t, db, "Owner", "owner@example.com")
	booker := newUser(t, db, "Booker", "booker@example.com")
	item := newItem(t, db, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Second)
	newBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportBookings(ctx, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Drill", rows[1][1])
}
