package usecase

import (
	"context"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"
	"sports-club/internal/dto/request"
	"sports-club/internal/dto/response"
	"sports-club/pkg/apperror"
	"sports-club/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// RegisterUser stores the user if the email is new. The flag reports whether it was created.
	RegisterUser(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error)
	GetMembers(ctx context.Context) ([]response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) RegisterUser(ctx context.Context, req *request.RegisterUserRequest) (*response.UserResponse, bool, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		return nil, false, apperror.Validation("Email is required")
	}

	now := utcNow()
	user := &entity.User{
		Timestamps: entity.Timestamps{CreatedAt: now, UpdatedAt: now},
		Email:      email,
		Name:       req.Name,
		PhotoURL:   req.PhotoURL,
		Role:       entity.RoleUser,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, false, asAppError(s.log, err, "Failed to register user", zap.String("email", user.Email))
	}

	stored, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, asAppError(s.log, err, "Failed to load user", zap.String("email", user.Email))
	}
	if stored == nil {
		return nil, false, apperror.Upstream("Failed to load user", repository.ErrNotFound)
	}

	if created {
		s.log.Info("User registered", zap.String("email", user.Email))
	}

	resp := response.UserToResponse(stored)
	return &resp, created, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*response.UserResponse, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to get user", zap.String("email", email))
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetMembers(ctx context.Context) ([]response.UserResponse, error) {
	members, err := s.userRepo.FindMembers(ctx)
	if err != nil {
		return nil, asAppError(s.log, err, "Failed to list members")
	}
	return response.UsersToResponse(members), nil
}
