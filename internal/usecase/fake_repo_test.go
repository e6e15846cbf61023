package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"sports-club/internal/data/entity"
	"sports-club/internal/data/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory store with the same slot-claim rules as the
// Postgres schema. Transactions are serialized by a single lock.
type memStore struct {
	txMu     sync.Mutex
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	claims   map[entity.SlotKey]uuid.UUID
	users    map[string]*entity.User
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		bookings: map[uuid.UUID]*entity.Booking{},
		claims:   map[entity.SlotKey]uuid.UUID{},
		users:    map[string]*entity.User{},
	}
}

func (s *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		Booking: &memBookingRepo{s: s},
		User:    &memUserRepo{s: s},
	}
	repo.Transactor = memTx{s: s, repo: repo}
	return repo
}

type memTx struct {
	s    *memStore
	repo *repository.Repository
}

// WithinTx restores the pre-transaction state when fn fails.
func (t memTx) WithinTx(_ context.Context, fn func(repo *repository.Repository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(t.repo); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memSnapshot struct {
	bookings map[uuid.UUID]*entity.Booking
	claims   map[entity.SlotKey]uuid.UUID
	users    map[string]*entity.User
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		bookings: make(map[uuid.UUID]*entity.Booking, len(s.bookings)),
		claims:   make(map[entity.SlotKey]uuid.UUID, len(s.claims)),
		users:    make(map[string]*entity.User, len(s.users)),
	}
	for id, b := range s.bookings {
		snap.bookings[id] = clone(b)
	}
	for k, v := range s.claims {
		snap.claims[k] = v
	}
	for email, u := range s.users {
		c := *u
		snap.users[email] = &c
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap.bookings
	s.claims = snap.claims
	s.users = snap.users
}

func clone(b *entity.Booking) *entity.Booking {
	c := *b
	c.Slots = append([]string(nil), b.Slots...)
	return &c
}

type memBookingRepo struct {
	s *memStore
}

func (r *memBookingRepo) CheckConflict(_ context.Context, courtID, date string, slots []string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, key := range entity.KeysFor(courtID, date, slots) {
		if _, ok := r.s.claims[key]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	// keep insertion order observable through CreatedAt
	r.s.seq++
	stored := clone(booking)
	stored.CreatedAt = stored.CreatedAt.Add(time.Duration(r.s.seq) * time.Microsecond)
	r.s.bookings[booking.ID] = stored
	r.s.mu.Unlock()

	if booking.Status.Active() {
		if err := r.ClaimSlots(ctx, booking); err != nil {
			r.s.mu.Lock()
			delete(r.s.bookings, booking.ID)
			r.s.mu.Unlock()
			return err
		}
	}
	return nil
}

func (r *memBookingRepo) ClaimSlots(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keys := booking.SlotKeys()
	for _, key := range keys {
		if holder, ok := r.s.claims[key]; ok && holder != booking.ID {
			return fmt.Errorf("claim %s: %w", key.Slot, repository.ErrSlotTaken)
		}
	}
	for _, key := range keys {
		r.s.claims[key] = booking.ID
	}
	return nil
}

func (r *memBookingRepo) ReleaseSlots(_ context.Context, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, holder := range r.s.claims {
		if holder == bookingID {
			delete(r.s.claims, key)
		}
	}
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return clone(b), nil
}

func (r *memBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *memBookingRepo) filter(keep func(*entity.Booking) bool, newestFirst bool) []*entity.Booking {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *memBookingRepo) FindAll(_ context.Context, email string) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return email == "" || b.UserEmail == email }, true), nil
}

func (r *memBookingRepo) FindByEmail(_ context.Context, email string) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.UserEmail == email }, false), nil
}

func (r *memBookingRepo) FindPending(_ context.Context) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool { return b.Status == entity.BookingStatusPending }, false), nil
}

func (r *memBookingRepo) FindApprovedByEmail(_ context.Context, email string) ([]*entity.Booking, error) {
	return r.filter(func(b *entity.Booking) bool {
		return b.UserEmail == email && b.Status == entity.BookingStatusApproved
	}, true), nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, at time.Time) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status == status {
		return nil, nil
	}
	b.Status = status
	b.UpdatedAt = at
	return clone(b), nil
}

func (r *memBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	_, ok := r.s.bookings[id]
	delete(r.s.bookings, id)
	r.s.mu.Unlock()
	if !ok {
		return fmt.Errorf("delete booking %s: %w", id, repository.ErrNotFound)
	}
	return r.ReleaseSlots(ctx, id)
}

func (r *memBookingRepo) DeletePending(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	b, ok := r.s.bookings[id]
	pending := ok && b.Status == entity.BookingStatusPending
	r.s.mu.Unlock()
	if !pending {
		return fmt.Errorf("delete pending booking %s: %w", id, repository.ErrNotFound)
	}
	return r.Delete(ctx, id)
}

func (r *memBookingRepo) DeleteAllByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	for _, b := range r.filter(func(b *entity.Booking) bool { return b.UserEmail == email }, false) {
		if err := r.Delete(ctx, b.ID); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type memUserRepo struct {
	s *memStore
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Email]; ok {
		return false, nil
	}
	c := *user
	r.s.users[user.Email] = &c
	return true, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) FindMemberByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if u == nil || u.Role != entity.RoleMember {
		return nil, err
	}
	return u, nil
}

func (r *memUserRepo) FindMembers(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.Role == entity.RoleMember {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memUserRepo) PromoteToMember(_ context.Context, email string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return 0, nil
	}
	if !u.IsMember || u.MembershipDate == nil {
		t := at
		u.MembershipDate = &t
	}
	u.Role = entity.RoleMember
	u.IsMember = true
	u.UpdatedAt = at
	return 1, nil
}

func (r *memUserRepo) DemoteMember(_ context.Context, email string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok || u.Role != entity.RoleMember {
		return 0, nil
	}
	u.Role = entity.RoleUser
	u.IsMember = false
	u.MembershipDate = nil
	u.UpdatedAt = at
	return 1, nil
}
