package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

type mongoAuthProvider struct {
	Provider   string `bson:"provider"`
	ProviderID string `bson:"providerId"`
}

type mongoUser struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Name       string              `bson:"name"`
	Email      string              `bson:"email"`
	Password   string              `bson:"password,omitempty"`
	Role       string              `bson:"role"`
	Status     string              `bson:"status"`
	IsVerified bool                `bson:"isVerified"`
	Auths      []mongoAuthProvider `bson:"auths"`
	Picture    string              `bson:"picture,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := toMongoUser(user)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return fromMongoUser(doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(mu), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Picture != nil {
		set["picture"] = *upd.Picture
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.IsVerified != nil {
		set["isVerified"] = *upd.IsVerified
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return fromMongoUser(mu), nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id, hash string, provider *domain.AuthProvider) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	update := bson.M{
		"$set": bson.M{"password": hash, "updatedAt": time.Now().UTC()},
	}
	if provider != nil {
		update["$push"] = bson.M{"auths": mongoAuthProvider{
			Provider:   provider.Provider,
			ProviderID: provider.ProviderID,
		}}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}, update)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List runs the generic list query over users. The count runs under the
// same filter predicate, pre-pagination.
func (r *UserRepository) List(ctx context.Context, q domain.ListQuery) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildFilter(q, []string{"name", "email"}, "createdAt")

	cursor, err := r.col.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, 0, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, fromMongoUser(mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// EnsureIndexes creates the unique email index backing case-insensitive
// duplicate detection (emails are stored normalized).
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toMongoUser(u *domain.User) mongoUser {
	auths := make([]mongoAuthProvider, 0, len(u.Auths))
	for _, a := range u.Auths {
		auths = append(auths, mongoAuthProvider{Provider: a.Provider, ProviderID: a.ProviderID})
	}
	return mongoUser{
		Name:       u.Name,
		Email:      domain.NormalizeEmail(u.Email),
		Password:   u.Password,
		Role:       u.Role,
		Status:     u.Status,
		IsVerified: u.IsVerified,
		Auths:      auths,
		Picture:    u.Picture,
	}
}

func fromMongoUser(mu mongoUser) *domain.User {
	auths := make([]domain.AuthProvider, 0, len(mu.Auths))
	for _, a := range mu.Auths {
		auths = append(auths, domain.AuthProvider{Provider: a.Provider, ProviderID: a.ProviderID})
	}
	return &domain.User{
		ID:         mu.ID.Hex(),
		Name:       mu.Name,
		Email:      mu.Email,
		Password:   mu.Password,
		Role:       mu.Role,
		Status:     mu.Status,
		IsVerified: mu.IsVerified,
		Auths:      auths,
		Picture:    mu.Picture,
		CreatedAt:  mu.CreatedAt,
		UpdatedAt:  mu.UpdatedAt,
	}
}
