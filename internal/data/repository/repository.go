package repository

import (
	"context"
	"errors"

	"sports-club/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is wrapped when a write targets a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken is returned when a slot key is already held by an active booking.
	ErrSlotTaken = errors.New("slot already booked")
)

// Transactor runs fn with repositories bound to a single transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type Repository struct {
	Transactor
	User    UserRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Transactor = &pgTransactor{db: db, log: log}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(q, log),
		Booking: NewBookingRepository(q, log),
	}
}

type pgTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return database.WithTx(ctx, t.db, func(tx pgx.Tx) error {
		txRepo := newRepository(tx, t.log)
		txRepo.Transactor = JoinTx(txRepo)
		return fn(txRepo)
	})
}

// JoinTx returns a Transactor that runs fn on repo directly, joining whatever
// transaction repo is already bound to.
func JoinTx(repo *Repository) Transactor {
	return joinedTx{repo: repo}
}

type joinedTx struct {
	repo *Repository
}

func (j joinedTx) WithinTx(_ context.Context, fn func(repo *Repository) error) error {
	return fn(j.repo)
}
