package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	sessionsFn    func(ctx context.Context, gymID, memberID string) ([]SessionRow, error)
	leaderboardFn func(ctx context.Context, gymID string, limit int) ([]LeaderboardRow, error)
	revenueFn     func(ctx context.Context, gymID string) (float64, error)
}

func (f *fakeRepo) FindMemberSessions(ctx context.Context, gymID, memberID string) ([]SessionRow, error) {
	return f.sessionsFn(ctx, gymID, memberID)
}
func (f *fakeRepo) LeaderboardRows(ctx context.Context, gymID string, limit int) ([]LeaderboardRow, error) {
	return f.leaderboardFn(ctx, gymID, limit)
}
func (f *fakeRepo) ActiveRevenue(ctx context.Context, gymID string) (float64, error) {
	return f.revenueFn(ctx, gymID)
}

func sessionOn(day time.Time, hour int, minutes int) SessionRow {
	in := day.Add(time.Duration(hour) * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	return SessionRow{CheckIn: in, CheckOut: &out}
}

func TestService_MemberStats_Totals(t *testing.T) {
	memberID := uuid.New().String()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	repo := &fakeRepo{
		sessionsFn: func(ctx context.Context, gymID, m string) ([]SessionRow, error) {
			return []SessionRow{
				sessionOn(today, 7, 60),                  // early bird
				sessionOn(today.AddDate(0, 0, -1), 18, 30),
				{CheckIn: today.Add(9 * time.Hour)},      // still open, no minutes
			}, nil
		},
	}

	svc := NewService(repo, nil)

	stats, err := svc.MemberStats(context.Background(), uuid.New().String(), memberID)
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCheckins)
	assert.Equal(t, 90, stats.TotalMinutes)
	assert.Equal(t, 1, stats.EarlyBirdCount)
	assert.Equal(t, 45.0, stats.AverageSessionMinutes)
	assert.Equal(t, 2, stats.CurrentStreakDays)
}

func TestService_MemberStats_StreakAnchoredYesterday(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	repo := &fakeRepo{
		sessionsFn: func(ctx context.Context, gymID, m string) ([]SessionRow, error) {
			// Trained the last three days but not yet today.
			return []SessionRow{
				sessionOn(today.AddDate(0, 0, -1), 10, 45),
				sessionOn(today.AddDate(0, 0, -2), 10, 45),
				sessionOn(today.AddDate(0, 0, -3), 10, 45),
			}, nil
		},
	}

	svc := NewService(repo, nil)

	stats, err := svc.MemberStats(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreakDays)
	assert.Equal(t, 3, stats.LongestStreakDays)
}

func TestService_MemberStats_BrokenStreak(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	repo := &fakeRepo{
		sessionsFn: func(ctx context.Context, gymID, m string) ([]SessionRow, error) {
			// Last visit two days ago: current streak is gone, but the old
			// five day run still counts as the longest.
			rows := []SessionRow{}
			for i := 2; i <= 6; i++ {
				rows = append(rows, sessionOn(today.AddDate(0, 0, -i), 10, 45))
			}
			return rows, nil
		},
	}

	svc := NewService(repo, nil)

	stats, err := svc.MemberStats(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreakDays)
	assert.Equal(t, 5, stats.LongestStreakDays)
}

func TestService_MemberStats_MultipleVisitsOneDay(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	repo := &fakeRepo{
		sessionsFn: func(ctx context.Context, gymID, m string) ([]SessionRow, error) {
			return []SessionRow{
				sessionOn(today, 7, 30),
				sessionOn(today, 18, 30),
			}, nil
		},
	}

	svc := NewService(repo, nil)

	stats, err := svc.MemberStats(context.Background(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCheckins)
	assert.Equal(t, 1, stats.CurrentStreakDays)
}

func TestService_Leaderboard_RanksEntries(t *testing.T) {
	repo := &fakeRepo{
		leaderboardFn: func(ctx context.Context, gymID string, limit int) ([]LeaderboardRow, error) {
			assert.Equal(t, 10, limit)
			return []LeaderboardRow{
				{MemberID: "a", MemberName: "Ana", CheckinCount: 20, TotalMinutes: 900},
				{MemberID: "b", MemberName: "Ben", CheckinCount: 20, TotalMinutes: 700},
				{MemberID: "c", MemberName: "Cam", CheckinCount: 5, TotalMinutes: 1000},
			}, nil
		},
	}

	svc := NewService(repo, nil)

	entries, err := svc.Leaderboard(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Ana", entries[0].MemberName)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Ben", entries[1].MemberName)
}

func TestService_Revenue(t *testing.T) {
	gymID := uuid.New().String()
	repo := &fakeRepo{
		revenueFn: func(ctx context.Context, g string) (float64, error) {
			assert.Equal(t, gymID, g)
			return 1250.50, nil
		},
	}

	svc := NewService(repo, nil)

	resp, err := svc.Revenue(context.Background(), gymID)
	assert.NoError(t, err)
	assert.Equal(t, 1250.50, resp.ActiveMonthlyRevenue)
	assert.Equal(t, gymID, resp.GymID)
}
