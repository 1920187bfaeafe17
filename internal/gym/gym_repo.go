package gym

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*Gym, error)
	FindCurrentCredential(ctx context.Context, gymID string) (*QRCredential, error)
	ReplaceCredential(ctx context.Context, cred *QRCredential) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Gym, error) {
	var g Gym
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) FindCurrentCredential(ctx context.Context, gymID string) (*QRCredential, error) {
	var cred QRCredential
	err := r.db.WithContext(ctx).
		Where("gym_id = ?", gymID).
		Order("created_at DESC").
		First(&cred).Error
	return &cred, err
}

// ReplaceCredential removes old tokens and inserts the new one so exactly one
// credential exists per gym.
func (r *repository) ReplaceCredential(ctx context.Context, cred *QRCredential) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gym_id = ?", cred.GymID).Delete(&QRCredential{}).Error; err != nil {
			return err
		}
		return tx.Create(cred).Error
	})
}
