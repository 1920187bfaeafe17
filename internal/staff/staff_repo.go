package staff

import (
	"context"

	"go-gym/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	FindAllByGym(ctx context.Context, gymID string) ([]Staff, error)
	FindByIDAndGym(ctx context.Context, gymID string, id string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, gymID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllByGym(ctx context.Context, gymID string) ([]Staff, error) {
	var rows []Staff
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndGym(ctx context.Context, gymID string, id string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, gymID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Delete(&Staff{}, "id = ?", id).Error
}
