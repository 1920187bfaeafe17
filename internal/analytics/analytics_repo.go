package analytics

import (
	"context"
	"time"

	"go-gym/internal/tenant"

	"gorm.io/gorm"
)

// SessionRow is a read-model over the checkins table. Analytics never writes
// sessions, so it carries its own minimal projection instead of the full
// attendance entity.
type SessionRow struct {
	MemberID string
	CheckIn  time.Time
	CheckOut *time.Time
}

type LeaderboardRow struct {
	MemberID     string
	MemberName   string
	CheckinCount int
	TotalMinutes int
}

type Repository interface {
	FindMemberSessions(ctx context.Context, gymID, memberID string) ([]SessionRow, error)
	LeaderboardRows(ctx context.Context, gymID string, limit int) ([]LeaderboardRow, error)
	ActiveRevenue(ctx context.Context, gymID string) (float64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindMemberSessions(ctx context.Context, gymID, memberID string) ([]SessionRow, error) {
	var rows []SessionRow
	err := r.db.WithContext(ctx).
		Table("checkins").
		Select("member_id, check_in, check_out").
		Scopes(tenant.Scope(gymID)).
		Where("member_id = ?", memberID).
		Order("check_in DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) LeaderboardRows(ctx context.Context, gymID string, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("checkins AS c").
		Select(`c.member_id,
			m.name AS member_name,
			COUNT(*) AS checkin_count,
			COALESCE(SUM(FLOOR(EXTRACT(EPOCH FROM (c.check_out - c.check_in)) / 60)), 0) AS total_minutes`).
		Joins("JOIN members m ON m.id = c.member_id").
		Where("c.gym_id = ?", gymID).
		Where("c.check_out IS NOT NULL").
		Group("c.member_id, m.name").
		Order("checkin_count DESC, total_minutes DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ActiveRevenue(ctx context.Context, gymID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("COALESCE(SUM(plan_price), 0)").
		Scopes(tenant.Scope(gymID)).
		Where("status = ?", "active").
		Where("deleted_at IS NULL").
		Scan(&total).Error
	return total, err
}
