package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record carries the identity and audit columns of rows keyed by a generated id.
type Record struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Timestamps are the audit columns of rows keyed by a natural key.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
