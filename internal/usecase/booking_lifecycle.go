package usecase

import (
	"context"
	"errors"
	"fmt"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/internal/dto/request"
	"sports-club/internal/dto/response"
	"sports-club/pkg/apperror"
	"sports-club/pkg/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateStatus validates the requested status, applies it under a row lock and,
// on approval, promotes the booking's user to member in the same transaction.
// Moving out of pending/approved releases the slots; moving back re-claims them.
func (s *bookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateStatusRequest) (*response.StatusChangeResponse, error) {
	ctx, span := tracer.Start(ctx, "booking.update_status")
	defer span.End()

	status := entity.BookingStatus(req.Status)
	if !status.Valid() {
		s.log.Warn("Invalid booking status", zap.String("booking_id", bookingID), zap.String("status", req.Status))
		return nil, apperror.Validation("Invalid status").
			WithDetails(map[string]any{"allowed": entity.BookingStatuses()})
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("Booking not found")
	}

	var (
		updated  *entity.Booking
		previous entity.BookingStatus
		upgraded bool
	)

	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		current, err := tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NotFound("Booking not found")
		}
		previous = current.Status

		if current.Status == status {
			// re-approval only re-applies the membership projection
			if status != entity.BookingStatusApproved {
				return apperror.Noop("Booking status is already " + string(status))
			}
			updated = current
			upgraded, err = s.projector.upgrade(ctx, tx, current.UserEmail, s.now())
			return err
		}

		if !s.policy.Allows(current.Status, status) {
			return apperror.Validation(fmt.Sprintf("cannot change booking status from %s to %s", current.Status, status))
		}

		updated, err = tx.Booking.UpdateStatus(ctx, id, status, s.now())
		if err != nil {
			return err
		}
		if updated == nil {
			return apperror.Noop("Booking status was not modified")
		}

		switch {
		case previous.Active() && !status.Active():
			if err := tx.Booking.ReleaseSlots(ctx, id); err != nil {
				return err
			}
		case !previous.Active() && status.Active():
			if err := tx.Booking.ClaimSlots(ctx, updated); err != nil {
				if errors.Is(err, repository.ErrSlotTaken) {
					return apperror.Wrap(apperror.KindConflict, "Slot already booked", err)
				}
				return err
			}
		}

		if status == entity.BookingStatusApproved {
			upgraded, err = s.projector.upgrade(ctx, tx, updated.UserEmail, s.now())
			return err
		}
		return nil
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			s.log.Warn("Update booking status rejected",
				zap.String("booking_id", bookingID),
				zap.String("status", string(status)),
				zap.String("reason", appErr.Message))
			return nil, appErr
		}
		span.RecordError(err)
		return nil, asAppError(s.log, err, "Failed to update booking status",
			zap.String("booking_id", bookingID), zap.String("status", string(status)))
	}

	if previous != status {
		s.metrics.IncTransition(string(status))
		s.log.Info("Booking status updated",
			zap.String("booking_id", bookingID),
			zap.String("from", string(previous)),
			zap.String("to", string(status)))
		publish(ctx, s.publisher, s.log, events.BookingStatusChanged, bookingEvent(updated, previous))
	}
	if upgraded {
		s.metrics.IncMembership("upgraded")
		publish(ctx, s.publisher, s.log, events.MembershipUpgraded, events.MembershipEvent{
			Email:     updated.UserEmail,
			BookingID: bookingID,
		})
	}

	return &response.StatusChangeResponse{
		Booking:            response.BookingToResponse(updated),
		MembershipUpgraded: upgraded,
	}, nil
}
