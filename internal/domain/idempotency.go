// Package domain defines the core persistence models for the application.
package domain

import "time"

// Idempotency records the outcome of a previously processed student
// registration, keyed by (client_id, key). It lets POST /students be retried
// safely under an Idempotency-Key header: a replay returns the originally
// created student instead of inserting a duplicate.
type Idempotency struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	ClientID  string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_client_key,priority:1"`
	Key       string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_client_key,priority:2"`
	StudentID string    `gorm:"type:char(36);not null"`
	Status    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
