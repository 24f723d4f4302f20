package service

import (
	"context"
	"math"
	"time"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

const (
	defaultTrendDays   = 30
	defaultRecentUsers = 5
)

type analyticsService struct {
	repo ports.AnalyticsRepository
	logs ports.ActivityLogService
}

// NewAnalyticsService returns an AnalyticsService implementation.
func NewAnalyticsService(repo ports.AnalyticsRepository, logs ports.ActivityLogService) ports.AnalyticsService {
	return &analyticsService{repo: repo, logs: logs}
}

func (s *analyticsService) UserStats(ctx context.Context) (ports.UserStats, error) {
	return s.repo.UserStats(ctx)
}

func (s *analyticsService) RoleDistribution(ctx context.Context) ([]ports.RoleCount, error) {
	return s.repo.RoleDistribution(ctx)
}

func (s *analyticsService) StatusDistribution(ctx context.Context) ([]ports.StatusCount, error) {
	return s.repo.StatusDistribution(ctx)
}

func (s *analyticsService) RegistrationTrends(ctx context.Context, days int) ([]ports.DailyCount, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.RegistrationTrends(ctx, since)
}

func (s *analyticsService) NewUsersThisMonth(ctx context.Context) (ports.MonthlyNewUsers, error) {
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfPrevious := startOfMonth.AddDate(0, -1, 0)

	current, err := s.repo.CountCreatedBetween(ctx, startOfMonth, now)
	if err != nil {
		return ports.MonthlyNewUsers{}, err
	}
	previous, err := s.repo.CountCreatedBetween(ctx, startOfPrevious, startOfMonth)
	if err != nil {
		return ports.MonthlyNewUsers{}, err
	}

	change := 100.0
	if previous > 0 {
		change = float64(current-previous) / float64(previous) * 100
	}

	return ports.MonthlyNewUsers{
		CurrentMonth:     current,
		PreviousMonth:    previous,
		PercentageChange: math.Round(change*100) / 100,
	}, nil
}

func (s *analyticsService) RecentUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = defaultRecentUsers
	}
	return s.repo.RecentUsers(ctx, limit)
}

func (s *analyticsService) DashboardOverview(ctx context.Context) (ports.DashboardOverview, error) {
	stats, err := s.UserStats(ctx)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	roles, err := s.RoleDistribution(ctx)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	statuses, err := s.StatusDistribution(ctx)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	trends, err := s.RegistrationTrends(ctx, defaultTrendDays)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	monthly, err := s.NewUsersThisMonth(ctx)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	recent, err := s.RecentUsers(ctx, defaultRecentUsers)
	if err != nil {
		return ports.DashboardOverview{}, err
	}
	activity, err := s.logs.Recent(ctx, defaultRecentUsers)
	if err != nil {
		return ports.DashboardOverview{}, err
	}

	return ports.DashboardOverview{
		UserStats:          stats,
		RoleDistribution:   roles,
		StatusDistribution: statuses,
		RegistrationTrends: trends,
		NewUsersThisMonth:  monthly,
		RecentUsers:        recent,
		RecentActivity:     activity,
	}, nil
}
