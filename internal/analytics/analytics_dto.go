package analytics

type MemberStatsResponse struct {
	MemberID              string  `json:"member_id"`
	TotalCheckins         int     `json:"total_checkins"`
	TotalMinutes          int     `json:"total_minutes"`
	CurrentStreakDays     int     `json:"current_streak_days"`
	LongestStreakDays     int     `json:"longest_streak_days"`
	EarlyBirdCount        int     `json:"early_bird_count"`
	ThisMonthCheckins     int     `json:"this_month_checkins"`
	AverageSessionMinutes float64 `json:"average_session_minutes"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	MemberID     string `json:"member_id"`
	MemberName   string `json:"member_name"`
	CheckinCount int    `json:"checkin_count"`
	TotalMinutes int    `json:"total_minutes"`
}

type RevenueResponse struct {
	GymID                string  `json:"gym_id"`
	ActiveMonthlyRevenue float64 `json:"active_monthly_revenue"`
}
