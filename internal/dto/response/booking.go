package response

import (
	"time"

	"sports-club/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	UserEmail string               `json:"userEmail"`
	CourtID   string               `json:"courtId"`
	CourtType *string              `json:"courtType,omitempty"`
	Date      string               `json:"date"`
	Slots     []string             `json:"slots"`
	Status    entity.BookingStatus `json:"status"`
	Price     *float64             `json:"price,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ApprovedBookingResponse is the member-facing view of an approved booking.
type ApprovedBookingResponse struct {
	BookingResponse
	CourtName string `json:"courtName"`
}

type StatusChangeResponse struct {
	Booking            BookingResponse `json:"booking"`
	MembershipUpgraded bool            `json:"membershipUpgraded"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	slots := b.Slots
	if slots == nil {
		slots = []string{}
	}
	return BookingResponse{
		ID:        b.ID.String(),
		UserEmail: b.UserEmail,
		CourtID:   b.CourtID,
		CourtType: b.CourtType,
		Date:      b.Date,
		Slots:     slots,
		Status:    b.Status,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingToResponse(b))
	}
	return out
}

func ApprovedBookingsToResponse(bookings []*entity.Booking) []ApprovedBookingResponse {
	out := make([]ApprovedBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ApprovedBookingResponse{
			BookingResponse: BookingToResponse(b),
			CourtName:       b.CourtName(),
		})
	}
	return out
}
