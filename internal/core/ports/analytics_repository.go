package ports

import (
	"context"
	"time"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// UserStats is the headline account census.
type UserStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	ActiveUsers     int64 `json:"activeUsers"`
	SuspendedUsers  int64 `json:"suspendedUsers"`
	VerifiedUsers   int64 `json:"verifiedUsers"`
	UnverifiedUsers int64 `json:"unverifiedUsers"`
}

// RoleCount is one bucket of the role distribution.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DailyCount is one day of the registration trend series.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

// AnalyticsRepository exposes the aggregate read operations backing the
// admin dashboard. All queries run against the users collection.
type AnalyticsRepository interface {
	UserStats(ctx context.Context) (UserStats, error)
	RoleDistribution(ctx context.Context) ([]RoleCount, error)
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
	RegistrationTrends(ctx context.Context, since time.Time) ([]DailyCount, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	RecentUsers(ctx context.Context, limit int) ([]*domain.User, error)
}
