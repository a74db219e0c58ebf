package storage

import (
	"context"
	"errors"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// ErrDuplicate is returned by Insert when a record already exists for the
// same (user, date).
var ErrDuplicate = errors.New("storage: record already exists for this date")

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("storage: record not found")

// RecordRepository is the persistence boundary for health records, keyed
// uniquely by (user_id, date).
type RecordRepository interface {
	ListByUser(ctx context.Context, userID string) ([]internal.HealthRecord, error)
	GetByUserDate(ctx context.Context, userID, date string) (*internal.HealthRecord, error)
	Upsert(ctx context.Context, record *internal.HealthRecord) error
	Insert(ctx context.Context, record *internal.HealthRecord) error
	DeleteWhere(ctx context.Context, userID string, dates []string) error
}
