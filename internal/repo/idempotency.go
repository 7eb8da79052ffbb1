// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the Idempotency
// model used to implement safe-retry semantics for student registration.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/picocico/StudentManagement-sub000/internal/domain"
	"github.com/picocico/StudentManagement-sub000/internal/ident"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given (client_id, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, clientID, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("client_id = ? AND key = ? AND expires_at > ?", clientID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique
// violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, clientID, key, studentID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	id, err := ident.EncodeUUIDString(ident.New())
	if err != nil {
		return nil, err
	}
	rec := &domain.Idempotency{
		ID:        id,
		ClientID:  clientID,
		Key:       key,
		StudentID: studentID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes records whose TTL has elapsed. Called
// opportunistically; failures are non-fatal.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.Idempotency{}).Error
}
