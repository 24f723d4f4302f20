package ports

import (
	"context"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// ActivityLogService records and queries the audit trail.
type ActivityLogService interface {
	// Record appends one entry, best-effort: failures are logged and
	// counted but never surfaced to the triggering operation.
	Record(ctx context.Context, entry *domain.ActivityLog)
	ListAll(ctx context.Context, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error)
	ListByUser(ctx context.Context, userID string, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error)
	ListByType(ctx context.Context, activityType domain.ActivityType, query map[string]string) ([]*domain.ActivityLog, domain.ListMeta, error)
	Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	// Cleanup deletes entries older than daysOld days (default 90) and
	// returns the deleted count.
	Cleanup(ctx context.Context, daysOld int) (int64, error)
}
