package ports

import (
	"context"
	"time"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// ActivityLogScope narrows a log listing to a fixed actor and/or type
// before the request's own query parameters are applied.
type ActivityLogScope struct {
	UserID       string
	ActivityType domain.ActivityType
}

// ActivityLogRepository defines persistence for the append-only audit log.
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, q domain.ListQuery, scope ActivityLogScope) ([]*domain.ActivityLog, int64, error)
	Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error)
	// DeleteOlderThan removes entries created before cutoff and reports
	// how many were deleted. This is the only way entries ever leave.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
