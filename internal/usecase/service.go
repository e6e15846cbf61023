package usecase

import (
	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/pkg/events"
	"sports-club/pkg/metrics"
	"sports-club/pkg/payment"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Booking    BookingService
	Membership MembershipService
	User       UserService
	Payment    PaymentService
}

// Dependencies are the collaborators shared by all services.
type Dependencies struct {
	Repo      *repository.Repository
	Config    *utils.Config
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Gateway   payment.Gateway
	Log       *zap.Logger
}

func NewService(deps Dependencies) *Service {
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}
	if deps.Gateway == nil {
		deps.Gateway = payment.Disabled{}
	}

	policy := entity.PermissiveTransitions()
	if deps.Config.Booking.StrictTransitions {
		policy = entity.StrictTransitions()
	}
	deps.Log.Info("Booking transition policy", zap.Bool("strict", policy.Strict()))

	return &Service{
		Booking:    NewBookingService(deps.Repo, policy, deps.Publisher, deps.Metrics, deps.Log),
		Membership: NewMembershipService(deps.Repo, deps.Publisher, deps.Metrics, deps.Log),
		User:       NewUserService(deps.Repo.User, deps.Log),
		Payment:    NewPaymentService(deps.Gateway, deps.Config.Stripe.Currency, deps.Metrics, deps.Log),
	}
}
