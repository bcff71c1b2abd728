package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

const bookingViewColumns = `b.id, b.item_id, b.booker_id, b.start_at, b.end_at, b.status,
       b.created_at, b.updated_at, i.name, u.name`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	now := time.Now().UTC()
	// Window endpoints are stored as text; normalizing to UTC keeps sqlite's
	// lexicographic comparisons and ordering correct for offset timestamps.
	booking.StartAt = booking.StartAt.UTC()
	booking.EndAt = booking.EndAt.UTC()
	query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		booking.ItemID, booking.BookerID, booking.StartAt, booking.EndAt, booking.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT id, item_id, booker_id, start_at, end_at, status, created_at, updated_at
              FROM bookings WHERE id = ?`

	var b models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.StartAt, &b.EndAt, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("booking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

// GetBookingView returns the booking joined with item and booker names.
func (db *DB) GetBookingView(ctx context.Context, id int64) (*models.BookingView, error) {
	query := `SELECT ` + bookingViewColumns + `
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users u ON u.id = b.booker_id
              WHERE b.id = ?`

	var v models.BookingView
	err := db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.ItemID, &v.BookerID, &v.StartAt, &v.EndAt, &v.Status,
		&v.CreatedAt, &v.UpdatedAt, &v.ItemName, &v.BookerName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("booking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking view: %w", err)
	}
	return &v, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// ListBookingsForBooker returns the booker's bookings filtered by state,
// newest start first.
func (db *DB) ListBookingsForBooker(ctx context.Context, bookerID int64, state string, now time.Time, page models.Page) ([]models.BookingView, error) {
	return db.listBookings(ctx, `b.booker_id = ?`, bookerID, state, now, page)
}

// ListBookingsForOwner returns bookings against the owner's items filtered
// by state, newest start first.
func (db *DB) ListBookingsForOwner(ctx context.Context, ownerID int64, state string, now time.Time, page models.Page) ([]models.BookingView, error) {
	return db.listBookings(ctx, `i.owner_id = ?`, ownerID, state, now, page)
}

func (db *DB) listBookings(ctx context.Context, who string, id int64, state string, now time.Time, page models.Page) ([]models.BookingView, error) {
	clause, args := stateClause(state, now.UTC())
	query := `SELECT ` + bookingViewColumns + `
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users u ON u.id = b.booker_id
              WHERE ` + who + clause + `
              ORDER BY b.start_at DESC LIMIT ? OFFSET ?`

	queryArgs := append([]interface{}{id}, args...)
	queryArgs = append(queryArgs, page.Size, page.From)

	rows, err := db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	views := []models.BookingView{}
	for rows.Next() {
		var v models.BookingView
		err := rows.Scan(
			&v.ID, &v.ItemID, &v.BookerID, &v.StartAt, &v.EndAt, &v.Status,
			&v.CreatedAt, &v.UpdatedAt, &v.ItemName, &v.BookerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func stateClause(state string, now time.Time) (string, []interface{}) {
	switch state {
	case models.StateCurrent:
		return ` AND b.start_at < ? AND b.end_at > ?`, []interface{}{now, now}
	case models.StatePast:
		return ` AND b.end_at < ?`, []interface{}{now}
	case models.StateFuture:
		return ` AND b.start_at > ?`, []interface{}{now}
	case models.StateWaiting, models.StateRejected:
		return ` AND b.status = ?`, []interface{}{state}
	default: // ALL
		return ``, nil
	}
}

// LastBooking is the most recently concluded booking of the item: the
// maximum end_at strictly before now. Rejected bookings are excluded.
func (db *DB) LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id, start_at, end_at FROM bookings
              WHERE item_id = ? AND end_at < ? AND status != ?
              ORDER BY end_at DESC LIMIT 1`
	return db.queryBookingRef(ctx, query, itemID, now.UTC(), models.StatusRejected)
}

// NextBooking is the upcoming booking of the item: the minimum start_at
// strictly after now. Rejected bookings are excluded.
func (db *DB) NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error) {
	query := `SELECT id, booker_id, start_at, end_at FROM bookings
              WHERE item_id = ? AND start_at > ? AND status != ?
              ORDER BY start_at ASC LIMIT 1`
	return db.queryBookingRef(ctx, query, itemID, now.UTC(), models.StatusRejected)
}

func (db *DB) queryBookingRef(ctx context.Context, query string, args ...interface{}) (*models.BookingRef, error) {
	var ref models.BookingRef
	err := db.QueryRowContext(ctx, query, args...).Scan(&ref.ID, &ref.BookerID, &ref.StartAt, &ref.EndAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking ref: %w", err)
	}
	return &ref, nil
}

// HasFinishedBooking reports whether the user holds an approved booking of
// the item that already ended. Gates comment creation.
func (db *DB) HasFinishedBooking(ctx context.Context, userID, itemID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE booker_id = ? AND item_id = ? AND status = ? AND end_at < ?`

	var count int
	err := db.QueryRowContext(ctx, query, userID, itemID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}
