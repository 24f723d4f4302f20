package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// logSearchableFields are the fields the free-text search ORs across.
var logSearchableFields = []string{"description", "ipAddress", "userAgent"}

// logFilterFields is the allow-list of equality filters on log listings.
var logFilterFields = []string{"activityType", "user", "targetUser"}

const defaultCleanupDays = 90

type activityLogService struct {
	repo   ports.ActivityLogRepository
	log    zerolog.Logger
	onDrop func()
}

// NewActivityLogService returns an ActivityLogService implementation.
// onDrop is invoked once per entry that could not be written, so the
// caller can count drops however it observes things; nil disables it.
func NewActivityLogService(repo ports.ActivityLogRepository, log zerolog.Logger, onDrop func()) ports.ActivityLogService {
	if onDrop == nil {
		onDrop = func() {}
	}
	return &activityLogService{repo: repo, log: log, onDrop: onDrop}
}

// Record appends one audit entry. Failures are reported to operational
// output only; they never alter the outcome of the triggering operation.
func (s *activityLogService) Record(ctx context.Context, entry *domain.ActivityLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		s.onDrop()
		s.log.Warn().
			Err(err).
			Str("activity_type", string(entry.ActivityType)).
			Str("user", entry.UserID).
			Msg("failed to write activity log entry")
	}
}

func (s *activityLogService) ListAll(ctx context.Context, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	return s.list(ctx, query, ports.ActivityLogScope{})
}

func (s *activityLogService) ListByUser(ctx context.Context, userID string, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	return s.list(ctx, query, ports.ActivityLogScope{UserID: userID})
}

func (s *activityLogService) ListByType(ctx context.Context, activityType domain.ActivityType, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error) {
	if !domain.ValidActivityType(activityType) {
		return nil, domain.ListMeta{}, domain.ValidationError("invalid activity type",
			domain.ErrorSource{Path: "type", Message: "unknown activity type"})
	}
	return s.list(ctx, query, ports.ActivityLogScope{ActivityType: activityType})
}

func (s *activityLogService) list(ctx context.Context, query map[string]string, scope ports.ActivityLogScope) ([]*domain.ActivityLog, domain.ListMeta, error) {
	q, err := domain.ParseListQuery(query, logFilterFields)
	if err != nil {
		return nil, domain.ListMeta{}, err
	}
	entries, total, err := s.repo.List(ctx, q, scope)
	if err != nil {
		return nil, domain.ListMeta{}, err
	}
	return entries, q.Meta(total), nil
}

func (s *activityLogService) Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.Recent(ctx, limit)
}

func (s *activityLogService) Cleanup(ctx context.Context, daysOld int) (int64, error) {
	if daysOld <= 0 {
		daysOld = defaultCleanupDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld)

	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info().
		Int64("deleted", deleted).
		Int("days_old", daysOld).
		Msg("activity log cleanup completed")
	return deleted, nil
}
