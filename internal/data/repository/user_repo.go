package repository

import (
	"context"
	"fmt"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (bool, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindMemberByEmail(ctx context.Context, email string) (*entity.User, error)
	FindMembers(ctx context.Context) ([]*entity.User, error)

	// Membership projection
	PromoteToMember(ctx context.Context, email string, at time.Time) (int64, error)
	DemoteMember(ctx context.Context, email string, at time.Time) (int64, error)
}

const userColumns = `email, name, photo_url, role, is_member, membership_date, created_at, updated_at`

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts the user unless the email is already registered. It reports
// whether a new row was written.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) (bool, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING
	`

	result, err := ur.db.Exec(ctx, query,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.Role,
		user.IsMember,
		user.MembershipDate,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return false, fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return result.RowsAffected() == 1, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return ur.findOne(ctx, query, email)
}

func (ur *userRepository) FindMemberByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2 FOR UPDATE`
	return ur.findOne(ctx, query, email, entity.RoleMember)
}

func (ur *userRepository) findOne(ctx context.Context, query, email string, args ...any) (*entity.User, error) {
	user, err := scanUser(ur.db.QueryRow(ctx, query, append([]any{email}, args...)...))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindMembers(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY membership_date DESC NULLS LAST, email`

	rows, err := ur.db.Query(ctx, query, entity.RoleMember)
	if err != nil {
		ur.log.Error("Failed to find members", zap.Error(err))
		return nil, fmt.Errorf("find members: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find members: %w", err)
	}

	return users, nil
}

// PromoteToMember marks the user as a member. An existing membership date is
// kept so repeated approvals never move it.
func (ur *userRepository) PromoteToMember(ctx context.Context, email string, at time.Time) (int64, error) {
	query := `
		UPDATE users
		SET role = $2,
		    is_member = TRUE,
		    membership_date = CASE WHEN is_member AND membership_date IS NOT NULL THEN membership_date ELSE $3 END,
		    updated_at = $3
		WHERE email = $1
	`

	result, err := ur.db.Exec(ctx, query, email, entity.RoleMember, at)
	if err != nil {
		ur.log.Error("Failed to promote user to member",
			zap.Error(err),
			zap.String("email", email),
		)
		return 0, fmt.Errorf("promote user %s: %w", email, err)
	}

	return result.RowsAffected(), nil
}

func (ur *userRepository) DemoteMember(ctx context.Context, email string, at time.Time) (int64, error) {
	query := `
		UPDATE users
		SET role = $2, is_member = FALSE, membership_date = NULL, updated_at = $4
		WHERE email = $1 AND role = $3
	`

	result, err := ur.db.Exec(ctx, query, email, entity.RoleUser, entity.RoleMember, at)
	if err != nil {
		ur.log.Error("Failed to demote member",
			zap.Error(err),
			zap.String("email", email),
		)
		return 0, fmt.Errorf("demote member %s: %w", email, err)
	}

	return result.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.Email,
		&user.Name,
		&user.PhotoURL,
		&user.Role,
		&user.IsMember,
		&user.MembershipDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
