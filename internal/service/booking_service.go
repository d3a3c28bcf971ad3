package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/metrics"
	"shareit/internal/models"
)

type BookingService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{store: store, eventBus: eventBus, logger: logger}
}

// CreateBooking places a new booking in the WAITING state. The booker and
// item must exist, the interval must be well formed and the item available.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	booker, err := s.store.GetUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	start := req.Start.UTC()
	end := req.End.UTC()
	if start.IsZero() || end.IsZero() {
		return nil, domain.Validation("start and end must be set")
	}
	if start.After(end) {
		return nil, domain.Validation("start must not be after end")
	}
	if start.Equal(end) {
		return nil, domain.Validation("start must not equal end")
	}

	booking := &models.Booking{
		ItemID:    item.ID,
		BookerID:  bookerID,
		StartDate: start,
		EndDate:   end,
		Status:    models.StatusWaiting,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking, item, booker)
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", bookerID).
		Msg("booking created")

	return models.BookingToResponse(booking, item, booker), nil
}

// SetApproved records the owner's decision on a WAITING booking. Only the
// item's owner may decide, and a decided booking cannot be decided again.
func (s *BookingService) SetApproved(ctx context.Context, actorID, bookingID int64, approved bool) (*models.BookingResponse, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != actorID {
		return nil, domain.Authorization("user %d does not own item %d", actorID, item.ID)
	}
	if booking.Status != models.StatusWaiting {
		return nil, domain.Validation("booking %d has already been decided", bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.store.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	booker, err := s.store.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(status)
	s.publishEvent(eventType, booking, item, booker)
	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", status).
		Msg("booking decided")

	return models.BookingToResponse(booking, item, booker), nil
}

// GetBooking is visible to the booker and the item's owner only.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*models.BookingResponse, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if actorID != booking.BookerID && actorID != item.OwnerID {
		return nil, domain.Authorization("user %d may not view booking %d", actorID, bookingID)
	}

	booker, err := s.store.GetUser(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	return models.BookingToResponse(booking, item, booker), nil
}

// ListBookerBookings returns the booker's bookings filtered by state, most
// recent start first.
func (s *BookingService) ListBookerBookings(ctx context.Context, bookerID int64, rawState string) ([]*models.BookingResponse, error) {
	state, ok := models.ParseState(rawState)
	if !ok {
		return nil, domain.Validation("unknown state: %s", rawState)
	}
	if _, err := s.store.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}

	bookings, err := s.store.ListByBooker(ctx, bookerID, state, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.assembleResponses(ctx, bookings)
}

// ListOwnerBookings returns bookings of all the owner's items filtered by
// state, most recent start first.
func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID int64, rawState string) ([]*models.BookingResponse, error) {
	state, ok := models.ParseState(rawState)
	if !ok {
		return nil, domain.Validation("unknown state: %s", rawState)
	}
	if _, err := s.store.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.store.ListByOwner(ctx, ownerID, state, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.assembleResponses(ctx, bookings)
}

// ExportBookings writes an xlsx report of every booking to w.
func (s *BookingService) ExportBookings(ctx context.Context, w io.Writer) error {
	bookings, err := s.store.ListAll(ctx)
	if err != nil {
		return err
	}

	responses, err := s.assembleResponses(ctx, bookings)
	if err != nil {
		return err
	}

	s.logger.Info().Int("bookings", len(responses)).Msg("exporting bookings report")
	return export.WriteReport(w, responses)
}

// assembleResponses joins bookings with their items and bookers using two
// batch lookups instead of a query per row.
func (s *BookingService) assembleResponses(ctx context.Context, bookings []*models.Booking) ([]*models.BookingResponse, error) {
	itemIDs := make([]int64, 0, len(bookings))
	bookerIDs := make([]int64, 0, len(bookings))
	seenItems := make(map[int64]bool)
	seenUsers := make(map[int64]bool)
	for _, b := range bookings {
		if !seenItems[b.ItemID] {
			seenItems[b.ItemID] = true
			itemIDs = append(itemIDs, b.ItemID)
		}
		if !seenUsers[b.BookerID] {
			seenUsers[b.BookerID] = true
			bookerIDs = append(bookerIDs, b.BookerID)
		}
	}

	items, err := s.store.GetItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookers, err := s.store.GetUsersByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		item, ok := items[b.ItemID]
		if !ok {
			return nil, domain.NotFound("item with id %d not found", b.ItemID)
		}
		booker, ok := bookers[b.BookerID]
		if !ok {
			return nil, domain.NotFound("user with id %d not found", b.BookerID)
		}
		responses = append(responses, models.BookingToResponse(b, item, booker))
	}
	return responses, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, item *models.Item, booker *models.User) {
	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		ItemID:     item.ID,
		ItemName:   item.Name,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		OwnerID:    item.OwnerID,
		Status:     booking.Status,
		Start:      booking.StartDate,
		End:        booking.EndDate,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
