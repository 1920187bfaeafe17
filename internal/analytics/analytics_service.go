package analytics

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	analyticserrors "go-gym/internal/analytics/errors"
)

const (
	leaderboardKeyPrefix = "leaderboard:"
	leaderboardTTL       = 10 * time.Minute
	leaderboardSize      = 10
	earlyBirdHour        = 8
)

func GetLeaderboardKey(gymID string) string {
	return leaderboardKeyPrefix + gymID
}

type Service interface {
	MemberStats(ctx context.Context, gymID, memberID string) (MemberStatsResponse, error)
	Leaderboard(ctx context.Context, gymID string) ([]LeaderboardEntry, error)
	RefreshLeaderboard(ctx context.Context, gymID string) error
	Revenue(ctx context.Context, gymID string) (RevenueResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("analytics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) MemberStats(ctx context.Context, gymID, memberID string) (MemberStatsResponse, error) {
	if _, err := uuid.Parse(memberID); err != nil {
		return MemberStatsResponse{}, analyticserrors.ErrInvalidMemberID
	}

	sessions, err := s.repo.FindMemberSessions(ctx, gymID, memberID)
	if err != nil {
		s.logger.Error("member sessions lookup failed", zap.Error(err))
		return MemberStatsResponse{}, err
	}

	now := time.Now().UTC()
	stats := MemberStatsResponse{MemberID: memberID}

	closedCount := 0
	for _, sess := range sessions {
		stats.TotalCheckins++
		if sess.CheckIn.Hour() < earlyBirdHour {
			stats.EarlyBirdCount++
		}
		if sess.CheckIn.Year() == now.Year() && sess.CheckIn.Month() == now.Month() {
			stats.ThisMonthCheckins++
		}
		if sess.CheckOut != nil {
			d := int(sess.CheckOut.Sub(sess.CheckIn).Minutes())
			if d < 0 {
				d = 0
			}
			stats.TotalMinutes += d
			closedCount++
		}
	}
	if closedCount > 0 {
		stats.AverageSessionMinutes = float64(stats.TotalMinutes) / float64(closedCount)
	}

	days := uniqueVisitDays(sessions)
	stats.CurrentStreakDays = currentStreak(days, now)
	stats.LongestStreakDays = longestStreak(days)

	return stats, nil
}

// uniqueVisitDays collapses sessions to their check-in calendar days, newest
// first.
func uniqueVisitDays(sessions []SessionRow) []time.Time {
	seen := map[time.Time]bool{}
	days := make([]time.Time, 0, len(sessions))
	for _, sess := range sessions {
		day := sess.CheckIn.UTC().Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// currentStreak counts consecutive visit days ending today or yesterday. A
// member who trained yesterday but not yet today still holds the streak.
func currentStreak(days []time.Time, now time.Time) int {
	if len(days) == 0 {
		return 0
	}
	today := now.UTC().Truncate(24 * time.Hour)
	anchor := days[0]
	if !anchor.Equal(today) && !anchor.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			streak++
			continue
		}
		break
	}
	return streak
}

func longestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func (s *service) Leaderboard(ctx context.Context, gymID string) ([]LeaderboardEntry, error) {
	cacheKey := GetLeaderboardKey(gymID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		return s.computeLeaderboard(ctx, gymID)
	})
	if err != nil {
		return nil, err
	}
	entries := v.([]LeaderboardEntry)

	s.cacheLeaderboard(ctx, cacheKey, entries)
	return entries, nil
}

// RefreshLeaderboard recomputes and overwrites the cached leaderboard. Called
// by the checkin consumer so the cache stays warm instead of expiring.
func (s *service) RefreshLeaderboard(ctx context.Context, gymID string) error {
	entries, err := s.computeLeaderboard(ctx, gymID)
	if err != nil {
		return err
	}
	s.cacheLeaderboard(ctx, GetLeaderboardKey(gymID), entries)
	s.logger.Debug("leaderboard refreshed",
		zap.String("gym_id", gymID),
		zap.Int("entries", len(entries)),
	)
	return nil
}

func (s *service) computeLeaderboard(ctx context.Context, gymID string) ([]LeaderboardEntry, error) {
	rows, err := s.repo.LeaderboardRows(ctx, gymID, leaderboardSize)
	if err != nil {
		s.logger.Error("leaderboard query failed", zap.String("gym_id", gymID), zap.Error(err))
		return nil, err
	}
	entries := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = LeaderboardEntry{
			Rank:         i + 1,
			MemberID:     r.MemberID,
			MemberName:   r.MemberName,
			CheckinCount: r.CheckinCount,
			TotalMinutes: r.TotalMinutes,
		}
	}
	return entries, nil
}

func (s *service) cacheLeaderboard(ctx context.Context, key string, entries []LeaderboardEntry) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, payload, leaderboardTTL).Err(); err != nil {
		s.logger.Warn("leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) Revenue(ctx context.Context, gymID string) (RevenueResponse, error) {
	total, err := s.repo.ActiveRevenue(ctx, gymID)
	if err != nil {
		s.logger.Error("revenue query failed", zap.String("gym_id", gymID), zap.Error(err))
		return RevenueResponse{}, err
	}
	return RevenueResponse{GymID: gymID, ActiveMonthlyRevenue: total}, nil
}
