package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CourtNameUnknown is shown when a booking carries no court type.
const CourtNameUnknown = "N/A"

var bookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusRejected,
	BookingStatusCancelled,
}

// BookingStatuses returns the recognized status labels.
func BookingStatuses() []BookingStatus {
	out := make([]BookingStatus, len(bookingStatuses))
	copy(out, bookingStatuses)
	return out
}

func (s BookingStatus) Valid() bool {
	for _, status := range bookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Active reports whether a booking in this status holds its slots.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusApproved
}

type Booking struct {
	Record
	UserEmail string        `db:"user_email"`
	CourtID   string        `db:"court_id"`
	CourtType *string       `db:"court_type"`
	Date      string        `db:"date"`
	Slots     []string      `db:"slots"`
	Status    BookingStatus `db:"status"`
	Price     *float64      `db:"price"`
}

// NewBooking builds a pending booking with a fresh identity.
func NewBooking(userEmail, courtID, date string, slots []string, now time.Time) *Booking {
	return &Booking{
		Record: Record{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserEmail: userEmail,
		CourtID:   courtID,
		Date:      date,
		Slots:     NormalizeSlots(slots),
		Status:    BookingStatusPending,
	}
}

// CourtName is the display name derived from the court type.
func (b *Booking) CourtName() string {
	if b.CourtType == nil || *b.CourtType == "" {
		return CourtNameUnknown
	}
	return *b.CourtType
}

// SlotKeys returns the mutual-exclusion keys this booking claims.
func (b *Booking) SlotKeys() []SlotKey {
	return KeysFor(b.CourtID, b.Date, b.Slots)
}
