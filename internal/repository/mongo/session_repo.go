package mongo

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SessionCollectionName = "sessions"

const maxMutateAttempts = 5

// mongoSessionRepository implements repository.SessionRepository using MongoDB.
// Lets several API replicas share sessions; a TTL index drops expired ones.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new session repository.
// It expects a connected *mongo.Database instance.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(SessionCollectionName),
	}
}

// Create inserts a new session document.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}
	_, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID loads a live session. The TTL monitor runs only about once a
// minute, so expiry is also checked in the filter.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var session domain.Session
	filter := bson.M{
		"_id":       id,
		"expiresAt": bson.M{"$gt": time.Now().UTC()},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Mutate reads the session, applies fn and replaces the document only if
// its version is unchanged. A concurrent writer makes it retry with fresh
// data; after maxMutateAttempts it gives up with repository.ErrConflict.
func (r *mongoSessionRepository) Mutate(ctx context.Context, id string, fn repository.MutateFunc) (*domain.Session, error) {
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		session, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		version := session.Version

		if err := fn(session); err != nil {
			return nil, err
		}
		session.ID = id
		session.Version = version + 1
		session.UpdatedAt = time.Now().UTC()

		result, err := r.collection.ReplaceOne(ctx, versionFilter(id, version, session.UpdatedAt), session)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return session, nil
		}
	}
	return nil, repository.ErrConflict
}

// versionFilter matches the live document still at version.
func versionFilter(id string, version int64, now time.Time) bson.M {
	return bson.M{
		"_id":       id,
		"version":   version,
		"expiresAt": bson.M{"$gt": now},
	}
}

// Delete removes a session document.
func (r *mongoSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionIndexes creates the TTL index on expiresAt.
// Call this once during application startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Documents are removed as soon as expiresAt is in the past.
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
