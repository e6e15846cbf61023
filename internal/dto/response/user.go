package response

import (
	"time"

	"sports-club/internal/data/entity"
)

type UserResponse struct {
	Email          string          `json:"email"`
	Name           string          `json:"name,omitempty"`
	PhotoURL       string          `json:"photoURL,omitempty"`
	Role           entity.UserRole `json:"role"`
	IsMember       bool            `json:"isMember"`
	MembershipDate *time.Time      `json:"membershipDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RevokeResponse describes a demoted member and how many bookings went with the membership.
type RevokeResponse struct {
	Email           string          `json:"email"`
	Role            entity.UserRole `json:"role"`
	IsMember        bool            `json:"isMember"`
	MembershipDate  *time.Time      `json:"membershipDate"`
	DeletedBookings int64           `json:"deletedBookings"`
}

func UserToResponse(u *entity.User) UserResponse {
	return UserResponse{
		Email:          u.Email,
		Name:           u.Name,
		PhotoURL:       u.PhotoURL,
		Role:           u.Role,
		IsMember:       u.IsMember,
		MembershipDate: u.MembershipDate,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u))
	}
	return out
}
