package adaptor

import (
	"context"

	"sports-club/internal/dto/request"
	"sports-club/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) ListBookings(ctx context.Context, email string) ([]response.BookingResponse, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, bookingID)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) GetBookingsByEmail(ctx context.Context, email string) ([]response.BookingResponse, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) GetPendingBookings(ctx context.Context) ([]response.BookingResponse, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) GetApprovedBookings(ctx context.Context, email string) ([]response.ApprovedBookingResponse, error) {
	args := m.Called(ctx, email)
	b, _ := args.Get(0).([]response.ApprovedBookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockBookingService) DeletePendingBooking(ctx context.Context, bookingID string) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, bookingID string, req *request.UpdateStatusRequest) (*response.StatusChangeResponse, error) {
	args := m.Called(ctx, bookingID, req)
	b, _ := args.Get(0).(*response.StatusChangeResponse)
	return b, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) RegisterUser(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, bool, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*response.UserResponse)
	return u, args.Bool(1), args.Error(2)
}

func (m *mockUserService) GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*response.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) GetMembers(ctx context.Context) ([]response.UserResponse, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]response.UserResponse)
	return u, args.Error(1)
}

type mockMembershipService struct {
	mock.Mock
}

func (m *mockMembershipService) RevokeMembership(ctx context.Context, email string) (*response.RevokeResponse, error) {
	args := m.Called(ctx, email)
	r, _ := args.Get(0).(*response.RevokeResponse)
	return r, args.Error(1)
}

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*response.PaymentIntentResponse)
	return p, args.Error(1)
}
