package entity

import "time"

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// User is keyed by email. Role member and IsMember are written together.
type User struct {
	Timestamps
	Email          string     `db:"email"`
	Name           string     `db:"name"`
	PhotoURL       string     `db:"photo_url"`
	Role           UserRole   `db:"role"`
	IsMember       bool       `db:"is_member"`
	MembershipDate *time.Time `db:"membership_date"`
}
