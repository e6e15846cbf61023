package usecase

import (
	"context"
	"errors"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/internal/dto/request"
	"sports-club/internal/dto/response"
	"sports-club/pkg/apperror"
	"sports-club/pkg/events"
	"sports-club/pkg/metrics"
	"sports-club/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, email string) ([]response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]response.BookingResponse, error)
	GetPendingBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetApprovedBookings(ctx context.Context, email string) ([]response.ApprovedBookingResponse, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	DeletePendingBooking(ctx context.Context, bookingID string) error

	// UpdateStatus drives the booking lifecycle; see booking_lifecycle.go.
	UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateStatusRequest) (*response.StatusChangeResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	projector *membershipProjector
	policy    entity.TransitionPolicy
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	policy entity.TransitionPolicy,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		projector: newMembershipProjector(log),
		policy:    policy,
		publisher: publisher,
		metrics:   m,
		log:       log.With(zap.String("service", "booking")),
		now:       utcNow,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()

	slots := entity.NormalizeSlots(req.Slots)
	if len(slots) == 0 {
		s.metrics.IncAdmission("invalid")
		return nil, apperror.Validation("Missing required fields").
			WithDetails(map[string]string{"slots": "slots must contain at least one slot"})
	}

	booking := entity.NewBooking(utils.NormalizeEmail(req.UserEmail), req.CourtID, req.Date, slots, s.now())
	booking.CourtType = req.CourtType
	booking.Price = req.Price

	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		taken, err := tx.Booking.CheckConflict(ctx, booking.CourtID, booking.Date, booking.Slots)
		if err != nil {
			return err
		}
		if taken {
			return apperror.Conflict("Slot already booked")
		}

		if err := tx.Booking.Create(ctx, booking); err != nil {
			// lost the race against a concurrent admission
			if errors.Is(err, repository.ErrSlotTaken) {
				return apperror.Wrap(apperror.KindConflict, "Slot already booked", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperror.IsConflict(err) {
			s.log.Warn("Booking rejected, slot taken",
				zap.String("court_id", booking.CourtID),
				zap.String("date", booking.Date),
				zap.Strings("slots", booking.Slots))
			s.metrics.IncAdmission("conflict")
			return nil, err
		}
		s.metrics.IncAdmission("error")
		span.RecordError(err)
		return nil, asAppError(s.log, err, "Failed to create booking",
			zap.String("court_id", booking.CourtID), zap.String("date", booking.Date))
	}

	s.metrics.IncAdmission("admitted")
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_email", booking.UserEmail),
		zap.String("court_id", booking.CourtID),
		zap.String("date", booking.Date))

	publish(ctx, s.publisher, s.log, events.BookingCreated, bookingEvent(booking, ""))

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, email string) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to list bookings")
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("Booking not found")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to get booking", zap.String("booking_id", bookingID))
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingsByEmail(ctx context.Context, email string) ([]response.BookingResponse, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}

	bookings, err := s.repo.Booking.FindByEmail(ctx, email)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to get bookings", zap.String("email", email))
	}
	if len(bookings) == 0 {
		return nil, apperror.NotFound("No bookings found for this email")
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetPendingBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindPending(ctx)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to get pending bookings")
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetApprovedBookings(ctx context.Context, email string) ([]response.ApprovedBookingResponse, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}

	bookings, err := s.repo.Booking.FindApprovedByEmail(ctx, email)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to get approved bookings", zap.String("email", email))
	}
	return response.ApprovedBookingsToResponse(bookings), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperror.NotFound("Booking not found")
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Booking not found")
		}
		return asAppError(s.log, err, "Failed to delete booking", zap.String("booking_id", bookingID))
	}

	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	publish(ctx, s.publisher, s.log, events.BookingDeleted, events.BookingEvent{BookingID: bookingID})
	return nil
}

func (s *bookingService) DeletePendingBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperror.Validation("Invalid booking id")
	}

	if err := s.repo.Booking.DeletePending(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Pending booking not found")
		}
		return asAppError(s.log, err, "Failed to delete pending booking", zap.String("booking_id", bookingID))
	}

	s.log.Info("Pending booking deleted", zap.String("booking_id", bookingID))
	publish(ctx, s.publisher, s.log, events.BookingDeleted, events.BookingEvent{
		BookingID: bookingID,
		Status:    string(entity.BookingStatusPending),
	})
	return nil
}

func bookingEvent(b *entity.Booking, previous entity.BookingStatus) events.BookingEvent {
	return events.BookingEvent{
		BookingID:      b.ID.String(),
		UserEmail:      b.UserEmail,
		CourtID:        b.CourtID,
		Date:           b.Date,
		Slots:          b.Slots,
		Status:         string(b.Status),
		PreviousStatus: string(previous),
	}
}
