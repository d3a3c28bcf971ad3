package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_date, end_date, status`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.StartDate, &b.EndDate, &b.Status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking re-checks item availability and inserts inside one
// transaction so a concurrent owner toggle cannot slip between the check
// and the write.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM items WHERE id = ?`, booking.ItemID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("item with id %d not found", booking.ItemID)
	}
	if err != nil {
		return fmt.Errorf("check item availability: %w", err)
	}
	if !available {
		return domain.UnavailableItem("item %d is not available", booking.ItemID)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (item_id, booker_id, start_date, end_date, status) VALUES (?, ?, ?, ?, ?)`,
		booking.ItemID, booking.BookerID, booking.StartDate, booking.EndDate, booking.Status,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create booking: last insert id: %w", err)
	}
	booking.ID = id

	return tx.Commit()
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("booking with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

func (db *DB) ListByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ?`
	args := []any{bookerID}
	query, args = applyStateFilter(query, args, "", state, now)
	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListByOwner(ctx context.Context, ownerID int64, state models.State, now time.Time) ([]*models.Booking, error) {
	query := `SELECT b.id, b.item_id, b.booker_id, b.start_date, b.end_date, b.status
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE i.owner_id = ?`
	args := []any{ownerID}
	query, args = applyStateFilter(query, args, "b.", state, now)
	return db.queryBookings(ctx, query, args...)
}

func (db *DB) ListAll(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_date DESC`
	return db.queryBookings(ctx, query)
}

// HasFinishedBooking reports whether the booker has at least one booking
// on the item that ended strictly before now. This is the gate that lets
// only past renters leave comments.
func (db *DB) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE item_id = ? AND booker_id = ? AND end_date < ?`
	if err := db.QueryRowContext(ctx, query, itemID, bookerID, now).Scan(&count); err != nil {
		return false, fmt.Errorf("check finished booking: %w", err)
	}
	return count > 0, nil
}

// applyStateFilter appends the temporal/status predicate for the state and
// the ordering shared by every list query. CURRENT uses strict bounds;
// bookings touching now exactly fall out of the slice.
func applyStateFilter(query string, args []any, prefix string, state models.State, now time.Time) (string, []any) {
	switch state {
	case models.StateCurrent:
		query += ` AND ` + prefix + `start_date < ? AND ` + prefix + `end_date > ?`
		args = append(args, now, now)
	case models.StatePast:
		query += ` AND ` + prefix + `end_date < ?`
		args = append(args, now)
	case models.StateFuture:
		query += ` AND ` + prefix + `start_date > ?`
		args = append(args, now)
	case models.StateWaiting:
		query += ` AND ` + prefix + `status = ?`
		args = append(args, models.StatusWaiting)
	case models.StateRejected:
		query += ` AND ` + prefix + `status = ?`
		args = append(args, models.StatusRejected)
	}
	query += ` ORDER BY ` + prefix + `start_date DESC`
	return query, args
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
