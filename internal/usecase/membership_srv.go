package usecase

import (
	"context"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/internal/dto/response"
	"sports-club/pkg/apperror"
	"sports-club/pkg/events"
	"sports-club/pkg/metrics"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type MembershipService interface {
	RevokeMembership(ctx context.Context, email string) (*response.RevokeResponse, error)
}

// membershipProjector writes the user-side effects of booking approval.
// It always runs on the caller's transaction.
type membershipProjector struct {
	log *zap.Logger
}

func newMembershipProjector(log *zap.Logger) *membershipProjector {
	return &membershipProjector{log: log.With(zap.String("service", "membership"))}
}

// upgrade promotes email to member. A missing user is not an error; the
// returned flag reports whether a user row was written.
func (p *membershipProjector) upgrade(ctx context.Context, tx *repository.Repository, email string, at time.Time) (bool, error) {
	n, err := tx.User.PromoteToMember(ctx, email, at)
	if err != nil {
		return false, err
	}
	if n == 0 {
		p.log.Info("No user to upgrade for approved booking", zap.String("email", email))
		return false, nil
	}
	return true, nil
}

type membershipService struct {
	repo      *repository.Repository
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

func NewMembershipService(repo *repository.Repository, publisher events.Publisher, m *metrics.Metrics, log *zap.Logger) MembershipService {
	return &membershipService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		log:       log.With(zap.String("service", "membership")),
		now:       utcNow,
	}
}

// RevokeMembership deletes every booking of the member and demotes them in one
// transaction. If the demotion writes nothing the deletions are rolled back.
func (s *membershipService) RevokeMembership(ctx context.Context, email string) (*response.RevokeResponse, error) {
	ctx, span := tracer.Start(ctx, "membership.revoke")
	defer span.End()

	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}

	var deleted int64
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		member, err := tx.User.FindMemberByEmail(ctx, email)
		if err != nil {
			return err
		}
		if member == nil {
			return apperror.NotFound("Member not found")
		}

		deleted, err = tx.Booking.DeleteAllByEmail(ctx, email)
		if err != nil {
			return err
		}

		n, err := tx.User.DemoteMember(ctx, email, s.now())
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.UpdateFailed("Failed to update user role")
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			s.log.Warn("Revoke membership failed - not a member", zap.String("email", email))
			return nil, err
		}
		if apperror.Is(err, apperror.KindUpdateFailed) {
			s.log.Error("Revoke membership rolled back, demotion wrote nothing", zap.String("email", email))
			return nil, err
		}
		return nil, asAppError(s.log, err, "Failed to revoke membership", zap.String("email", email))
	}

	s.metrics.IncMembership("revoked")
	s.log.Info("Membership revoked", zap.String("email", email), zap.Int64("deleted_bookings", deleted))
	publish(ctx, s.publisher, s.log, events.MembershipRevoked, events.MembershipEvent{
		Email:           email,
		DeletedBookings: deleted,
	})

	return &response.RevokeResponse{
		Email:           email,
		Role:            entity.RoleUser,
		IsMember:        false,
		MembershipDate:  nil,
		DeletedBookings: deleted,
	}, nil
}
