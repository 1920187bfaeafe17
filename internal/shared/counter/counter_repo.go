package counter

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetNextValue(ctx context.Context, gymID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, gymID string, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment to handle race conditions per gym/type
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO gym_counters (gym_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (gym_id, counter_type) DO UPDATE
		SET last_value = gym_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, gymID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
