package subscription

import (
	"context"
	"database/sql"

	"go-gym/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Subscription) error
	CreatePayment(ctx context.Context, p *Payment) error
	FindAllByGym(ctx context.Context, gymID string) ([]Subscription, error)
	FindByIDAndGym(ctx context.Context, gymID, id string) (*Subscription, error)
	FindActiveByMember(ctx context.Context, gymID, memberID string) (*Subscription, error)
	FindAllByMember(ctx context.Context, gymID, memberID string) ([]Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	ExpireOverdue(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) CreatePayment(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByGym(ctx context.Context, gymID string) ([]Subscription, error) {
	var rows []Subscription
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Preload("Payments").
		Order("end_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndGym(ctx context.Context, gymID, id string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Preload("Payments").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindActiveByMember(ctx context.Context, gymID, memberID string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Where("status = ?", StatusActive).
		Order("end_date DESC").
		First(&s).Error
	return &s, err
}

func (r *repository) FindAllByMember(ctx context.Context, gymID, memberID string) ([]Subscription, error) {
	var rows []Subscription
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Preload("Payments").
		Order("end_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// ExpireOverdue flips active subscriptions whose end date has passed, across
// all gyms. Run periodically by the background worker.
func (r *repository) ExpireOverdue(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("status = ?", StatusActive).
		Where("end_date < CURRENT_DATE").
		Update("status", StatusExpired)
	return res.RowsAffected, res.Error
}
