package ports

import (
	"context"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// MonthlyNewUsers compares this month's registrations against last month.
type MonthlyNewUsers struct {
	CurrentMonth     int64   `json:"currentMonth"`
	PreviousMonth    int64   `json:"previousMonth"`
	PercentageChange float64 `json:"percentageChange"`
}

// DashboardOverview bundles every dashboard widget in one payload.
type DashboardOverview struct {
	UserStats          UserStats             `json:"userStats"`
	RoleDistribution   []RoleCount           `json:"roleDistribution"`
	StatusDistribution []StatusCount         `json:"statusDistribution"`
	RegistrationTrends []DailyCount          `json:"registrationTrends"`
	NewUsersThisMonth  MonthlyNewUsers       `json:"newUsersThisMonth"`
	RecentUsers        []*domain.User        `json:"recentUsers"`
	RecentActivity     []*domain.ActivityLog `json:"recentActivity"`
}

// AnalyticsService exposes the read-only aggregates behind the admin
// dashboard.
type AnalyticsService interface {
	UserStats(ctx context.Context) (UserStats, error)
	RoleDistribution(ctx context.Context) ([]RoleCount, error)
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
	RegistrationTrends(ctx context.Context, days int) ([]DailyCount, error)
	NewUsersThisMonth(ctx context.Context) (MonthlyNewUsers, error)
	RecentUsers(ctx context.Context, limit int) ([]*domain.User, error)
	DashboardOverview(ctx context.Context) (DashboardOverview, error)
}
