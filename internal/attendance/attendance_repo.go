package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-gym/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	MemberInGym(ctx context.Context, gymID, memberID string) (bool, error)
	FindOpenSessions(ctx context.Context, gymID, memberID string) ([]Session, error)
	FindOpenSessionsExcluding(ctx context.Context, gymID, memberID string, exclude []uuid.UUID) ([]Session, error)
	Create(ctx context.Context, s *Session) error
	Close(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
	FindAllByMember(ctx context.Context, gymID, memberID string) ([]Session, error)
	FindAllByGym(ctx context.Context, gymID string) ([]Session, error)
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

func (r *repository) MemberInGym(ctx context.Context, gymID, memberID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&MemberRef{}).
		Where("id = ?", memberID).
		Where("gym_id = ?", gymID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindOpenSessions(ctx context.Context, gymID, memberID string) ([]Session, error) {
	var rows []Session
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Where("check_out IS NULL").
		Order("check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOpenSessionsExcluding(ctx context.Context, gymID, memberID string, exclude []uuid.UUID) ([]Session, error) {
	var rows []Session
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Where("check_out IS NULL")
	if len(exclude) > 0 {
		q = q.Where("id NOT IN ?", exclude)
	}
	err := q.Order("check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Close sets check_out only if the row is still open. The caller checks the
// returned row count to detect a concurrent close.
func (r *repository) Close(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ?", id).
		Where("check_out IS NULL").
		Update("check_out", at)
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllByMember(ctx context.Context, gymID, memberID string) ([]Session, error) {
	var rows []Session
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Order("check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByGym(ctx context.Context, gymID string) ([]Session, error) {
	var rows []Session
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(gymID)).
		Preload("Member").
		Order("check_in DESC").
		Find(&rows).Error
	return rows, err
}
