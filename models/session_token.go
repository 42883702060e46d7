package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionToken records which question IDs were already served to a client.
// ServedIDs is append-only for the lifetime of the session; duplicates are
// tolerated since the sequence is only ever used for set-membership exclusion.
type SessionToken struct {
	Token     string                      `json:"token" gorm:"primaryKey"`
	ServedIDs datatypes.JSONSlice[string] `json:"served_ids" gorm:"column:served_ids"`
	ExpiresAt time.Time                   `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time                   `json:"created_at"`
}
