// Package model holds the resource shapes exchanged with clients and
// stored in the database.
//
// Every resource family comes in three shapes:
//   - a create payload (Create*): user-supplied fields only
//   - a stored record: payload + Timestamps, returned by create
//   - a read projection: stored record + generated ID
//
// Embedded structs are flattened both by encoding/json and by sqlx.
package model

import "time"

// Payload is implemented by every create payload.
//
// Values returns the column values in the same order as the
// columns declared for the resource's table.
type Payload interface {
	Values() []any
}

// Timestamps are set by the server, never by clients.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewTimestamps returns timestamps for a freshly inserted row.
// Both fields hold the same instant.
func NewTimestamps(now time.Time) Timestamps {
	return Timestamps{CreatedAt: now, UpdatedAt: now}
}
