package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

const activityLogsCollection = "activity_logs"

// ActivityLogRepository implements ports.ActivityLogRepository using
// MongoDB. The collection is append-only: no update path exists.
type ActivityLogRepository struct {
	col *mongo.Collection
}

func NewActivityLogRepository(db *mongo.Database) *ActivityLogRepository {
	return &ActivityLogRepository{col: db.Collection(activityLogsCollection)}
}

type mongoActivityLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user"`
	ActivityType string             `bson:"activityType"`
	Description  string             `bson:"description"`
	IPAddress    string             `bson:"ipAddress,omitempty"`
	UserAgent    string             `bson:"userAgent,omitempty"`
	TargetUserID string             `bson:"targetUser,omitempty"`
	Metadata     map[string]any     `bson:"metadata,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (r *ActivityLogRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoActivityLog{
		ID:           primitive.NewObjectID(),
		UserID:       entry.UserID,
		ActivityType: string(entry.ActivityType),
		Description:  entry.Description,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		TargetUserID: entry.TargetUserID,
		Metadata:     entry.Metadata,
		CreatedAt:    entry.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepository) List(ctx context.Context, q domain.ListQuery, scope ports.ActivityLogScope) ([]*domain.ActivityLog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildFilter(q, []string{"description", "ipAddress", "userAgent"}, "createdAt")
	// Scope constraints win over request-supplied filters.
	if scope.UserID != "" {
		filter["user"] = scope.UserID
	}
	if scope.ActivityType != "" {
		filter["activityType"] = string(scope.ActivityType)
	}

	cursor, err := r.col.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	entries, err := decodeLogs(ctx, cursor)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}
	return entries, total, nil
}

func (r *ActivityLogRepository) Recent(ctx context.Context, limit int) ([]*domain.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeLogs(ctx, cursor)
}

func (r *ActivityLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("delete old activity logs: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ActivityLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "activityType", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeLogs(ctx context.Context, cursor *mongo.Cursor) ([]*domain.ActivityLog, error) {
	var entries []*domain.ActivityLog
	for cursor.Next(ctx) {
		var ml mongoActivityLog
		if err := cursor.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode activity log: %w", err)
		}
		entries = append(entries, &domain.ActivityLog{
			ID:           ml.ID.Hex(),
			UserID:       ml.UserID,
			ActivityType: domain.ActivityType(ml.ActivityType),
			Description:  ml.Description,
			IPAddress:    ml.IPAddress,
			UserAgent:    ml.UserAgent,
			TargetUserID: ml.TargetUserID,
			Metadata:     ml.Metadata,
			CreatedAt:    ml.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return entries, nil
}
