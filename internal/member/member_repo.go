package member

import (
	"context"
	"database/sql"

	"go-gym/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Member) error
	FindAllByGym(ctx context.Context, gymID string) ([]Member, error)
	FindByIDAndGym(ctx context.Context, gymID string, id string) (*Member, error)
	SearchByGym(ctx context.Context, gymID string, query string) ([]Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, gymID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAllByGym(ctx context.Context, gymID string) ([]Member, error) {
	var members []Member
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindByIDAndGym(ctx context.Context, gymID string, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) SearchByGym(ctx context.Context, gymID string, query string) ([]Member, error) {
	var members []Member
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, gymID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Delete(&Member{}, "id = ?", id).Error
}
