package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// AnalyticsRepository implements ports.AnalyticsRepository with counts
// and aggregation pipelines over the users collection.
type AnalyticsRepository struct {
	col *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{col: db.Collection(usersCollection)}
}

func (r *AnalyticsRepository) UserStats(ctx context.Context) (ports.UserStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stats ports.UserStats
	var err error

	if stats.TotalUsers, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return ports.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	if stats.ActiveUsers, err = r.col.CountDocuments(ctx, bson.M{"status": domain.StatusActive}); err != nil {
		return ports.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	if stats.SuspendedUsers, err = r.col.CountDocuments(ctx, bson.M{"status": domain.StatusSuspended}); err != nil {
		return ports.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	if stats.VerifiedUsers, err = r.col.CountDocuments(ctx, bson.M{"isVerified": true}); err != nil {
		return ports.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	if stats.UnverifiedUsers, err = r.col.CountDocuments(ctx, bson.M{"isVerified": false}); err != nil {
		return ports.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

func (r *AnalyticsRepository) RoleDistribution(ctx context.Context) ([]ports.RoleCount, error) {
	buckets, err := r.groupBy(ctx, "$role")
	if err != nil {
		return nil, fmt.Errorf("role distribution: %w", err)
	}
	out := make([]ports.RoleCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ports.RoleCount{Role: b.Key, Count: b.Count})
	}
	return out, nil
}

func (r *AnalyticsRepository) StatusDistribution(ctx context.Context) ([]ports.StatusCount, error) {
	buckets, err := r.groupBy(ctx, "$status")
	if err != nil {
		return nil, fmt.Errorf("status distribution: %w", err)
	}
	out := make([]ports.StatusCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ports.StatusCount{Status: b.Key, Count: b.Count})
	}
	return out, nil
}

type groupBucket struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (r *AnalyticsRepository) groupBy(ctx context.Context, field string) ([]groupBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []groupBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *AnalyticsRepository) RegistrationTrends(ctx context.Context, since time.Time) ([]ports.DailyCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
				"day":   bson.M{"$dayOfMonth": "$createdAt"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "_id.year", Value: 1},
			{Key: "_id.month", Value: 1},
			{Key: "_id.day", Value: 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id": 0,
			"date": bson.M{"$dateFromParts": bson.M{
				"year":  "$_id.year",
				"month": "$_id.month",
				"day":   "$_id.day",
			}},
			"count": 1,
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("registration trends: %w", err)
	}
	defer cursor.Close(ctx)

	var trends []ports.DailyCount
	if err := cursor.All(ctx, &trends); err != nil {
		return nil, fmt.Errorf("registration trends: %w", err)
	}
	return trends, nil
}

func (r *AnalyticsRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, fmt.Errorf("count created between: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepository) RecentUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"password": 0})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, fromMongoUser(mu))
	}
	return users, cursor.Err()
}
