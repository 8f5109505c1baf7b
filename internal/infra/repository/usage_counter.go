package repository

import (
	"context"
	"time"

	"court-booking/internal/domain/usage"
	"court-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UsageCounterRepository struct {
	db db.DBTX
}

func NewUsageCounterRepository(dbtx db.DBTX) *UsageCounterRepository {
	return &UsageCounterRepository{db: dbtx}
}

// GetOrCreate inserts a zeroed counter on first use, then locks the row for
// the rest of the transaction. The row lock is what keeps increments atomic
// when a user appears in several slots being drawn concurrently.
func (r *UsageCounterRepository) GetOrCreate(ctx context.Context, userID uuid.UUID, now time.Time) (*usage.Counter, error) {
	const insert = `
		INSERT INTO usage_counters (user_id, count, last_reset_date)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, insert, userID, now); err != nil {
		return nil, wrapPgErr("failed to initialize usage counter", err)
	}

	const query = `
		SELECT user_id, count, last_reset_date
		FROM usage_counters
		WHERE user_id = $1
		FOR UPDATE`

	var c usage.Counter
	if err := r.db.QueryRow(ctx, query, userID).Scan(&c.UserID, &c.Count, &c.LastResetDate); err != nil {
		return nil, wrapPgErr("failed to load usage counter", err)
	}
	return &c, nil
}

func (r *UsageCounterRepository) Save(ctx context.Context, counter *usage.Counter) error {
	const query = `
		UPDATE usage_counters
		SET count = $2, last_reset_date = $3
		WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, counter.UserID, counter.Count, counter.LastResetDate); err != nil {
		return wrapPgErr("failed to save usage counter", err)
	}
	return nil
}
