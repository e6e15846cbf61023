package repository

import (
	"context"
	"fmt"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Admission
	CheckConflict(ctx context.Context, courtID, date string, slots []string) (bool, error)
	Create(ctx context.Context, booking *entity.Booking) error
	ClaimSlots(ctx context.Context, booking *entity.Booking) error
	ReleaseSlots(ctx context.Context, bookingID uuid.UUID) error

	// Lookups
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, email string) ([]*entity.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error)
	FindPending(ctx context.Context) ([]*entity.Booking, error)
	FindApprovedByEmail(ctx context.Context, email string) ([]*entity.Booking, error)

	// Mutations
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) (*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeletePending(ctx context.Context, id uuid.UUID) error
	DeleteAllByEmail(ctx context.Context, email string) (int64, error)
}

const bookingColumns = `id, user_email, court_id, court_type, date, slots, status, price, created_at, updated_at`

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// CheckConflict reports whether any active booking already holds one of the
// slots on the court and date.
func (r *bookingRepository) CheckConflict(ctx context.Context, courtID, date string, slots []string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM booking_slots
			WHERE court_id = $1 AND date = $2 AND slot = ANY($3)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, courtID, date, entity.NormalizeSlots(slots)).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check slot conflict",
			zap.Error(err),
			zap.String("court_id", courtID),
			zap.String("date", date),
			zap.Strings("slots", slots),
		)
		return false, fmt.Errorf("check conflict for court %s on %s: %w", courtID, date, err)
	}

	return exists, nil
}

// Create inserts the booking and claims its slot keys. It must run inside a
// transaction so that a lost race on a slot leaves no booking row behind.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserEmail,
		booking.CourtID,
		booking.CourtType,
		booking.Date,
		booking.Slots,
		booking.Status,
		booking.Price,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_email", booking.UserEmail),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	if booking.Status.Active() {
		return r.ClaimSlots(ctx, booking)
	}
	return nil
}

// ClaimSlots inserts one booking_slots row per slot. The primary key on
// (court_id, date, slot) rejects a slot already held by another booking.
func (r *bookingRepository) ClaimSlots(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO booking_slots (court_id, date, slot, booking_id)
		SELECT $1, $2, slot, $4 FROM unnest($3::text[]) AS slot
		ON CONFLICT (court_id, date, slot) DO UPDATE SET booking_id = EXCLUDED.booking_id
		WHERE booking_slots.booking_id = EXCLUDED.booking_id
	`

	tag, err := r.db.Exec(ctx, query, booking.CourtID, booking.Date, booking.Slots, booking.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("claim slots for booking %s: %w", booking.ID.String(), ErrSlotTaken)
		}
		r.log.Error("Failed to claim booking slots",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("claim slots for booking %s: %w", booking.ID.String(), err)
	}

	// rows held by another booking are skipped by the WHERE of the upsert
	if tag.RowsAffected() != int64(len(booking.Slots)) {
		return fmt.Errorf("claim slots for booking %s: %w", booking.ID.String(), ErrSlotTaken)
	}

	return nil
}

func (r *bookingRepository) ReleaseSlots(ctx context.Context, bookingID uuid.UUID) error {
	query := `DELETE FROM booking_slots WHERE booking_id = $1`

	if _, err := r.db.Exec(ctx, query, bookingID); err != nil {
		r.log.Error("Failed to release booking slots",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("release slots for booking %s: %w", bookingID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// FindAll lists bookings newest first, optionally restricted to one email.
func (r *bookingRepository) FindAll(ctx context.Context, email string) ([]*entity.Booking, error) {
	if email == "" {
		return r.findMany(ctx, "find all bookings",
			`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC, id`)
	}
	return r.findMany(ctx, "find all bookings",
		`SELECT `+bookingColumns+` FROM bookings WHERE user_email = $1 ORDER BY created_at DESC, id`, email)
}

// FindByEmail lists a user's bookings in insertion order.
func (r *bookingRepository) FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	return r.findMany(ctx, "find bookings by email",
		`SELECT `+bookingColumns+` FROM bookings WHERE user_email = $1 ORDER BY created_at, id`, email)
}

func (r *bookingRepository) FindPending(ctx context.Context) ([]*entity.Booking, error) {
	return r.findMany(ctx, "find pending bookings",
		`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY created_at, id`,
		entity.BookingStatusPending)
}

func (r *bookingRepository) FindApprovedByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	return r.findMany(ctx, "find approved bookings by email",
		`SELECT `+bookingColumns+` FROM bookings WHERE user_email = $1 AND status = $2 ORDER BY created_at DESC, id`,
		email, entity.BookingStatusApproved)
}

func (r *bookingRepository) findMany(ctx context.Context, operation, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err), zap.Any("args", args))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return bookings, nil
}

// UpdateStatus writes the status only when it differs from the stored one and
// returns the updated row, or nil when nothing was modified.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) (*entity.Booking, error) {
	query := `
		UPDATE bookings SET status = $2, updated_at = $3
		WHERE id = $1 AND status <> $2
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, status, at))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// DeletePending removes the booking only while it is still pending.
func (r *bookingRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to delete pending booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete pending booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending booking %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Pending booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) DeleteAllByEmail(ctx context.Context, email string) (int64, error) {
	query := `DELETE FROM bookings WHERE user_email = $1`

	result, err := r.db.Exec(ctx, query, email)
	if err != nil {
		r.log.Error("Failed to delete bookings by email",
			zap.Error(err),
			zap.String("user_email", email),
		)
		return 0, fmt.Errorf("delete bookings for %s: %w", email, err)
	}

	return result.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserEmail,
		&booking.CourtID,
		&booking.CourtType,
		&booking.Date,
		&booking.Slots,
		&booking.Status,
		&booking.Price,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
