package usecase

import (
	"context"
	"sync"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CheckConflict(ctx context.Context, courtID, date string, slots []string) (bool, error) {
	args := m.Called(ctx, courtID, date, slots)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) ClaimSlots(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepo) ReleaseSlots(ctx context.Context, bookingID uuid.UUID) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, email string) ([]*entity.Booking, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindPending(ctx context.Context) ([]*entity.Booking, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindApprovedByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) (*entity.Booking, error) {
	args := m.Called(ctx, id, status, at)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) DeletePending(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingRepo) DeleteAllByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindMemberByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindMembers(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) PromoteToMember(ctx context.Context, email string, at time.Time) (int64, error) {
	args := m.Called(ctx, email, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) DemoteMember(ctx context.Context, email string, at time.Time) (int64, error) {
	args := m.Called(ctx, email, at)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*payment.Intent)
	return i, args.Error(1)
}

// recordingPublisher keeps the routing keys it was asked to publish.
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	data []any
}

func (p *recordingPublisher) Publish(_ context.Context, key string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.data = append(p.data, data)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

func newMockRepository() (*repository.Repository, *mockBookingRepo, *mockUserRepo) {
	bookings := &mockBookingRepo{}
	users := &mockUserRepo{}
	repo := &repository.Repository{Booking: bookings, User: users}
	repo.Transactor = repository.JoinTx(repo)
	return repo, bookings, users
}
