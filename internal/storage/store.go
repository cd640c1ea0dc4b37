// Package storage provides MongoDB storage for the verse bot.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gracechain/versebot/internal/models"
)

// Store provides access to all MongoDB collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	usage  *mongo.Collection
	posts  *mongo.Collection
	locks  *mongo.Collection
}

// NewStore creates a new storage connection.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	log.Info().Str("db", dbName).Msg("Connected to MongoDB")

	store := &Store{
		client: client,
		db:     db,
		usage:  db.Collection("usage"),
		posts:  db.Collection("posts"),
		locks:  db.Collection("locks"),
	}

	if err := store.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create some indexes")
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// createIndexes creates necessary indexes for efficient queries.
func (s *Store) createIndexes(ctx context.Context) error {
	usageIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "month", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := s.usage.Indexes().CreateMany(ctx, usageIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create usage indexes")
	}

	postIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
		{Keys: bson.D{{Key: "posted_at", Value: -1}}},
	}
	if _, err := s.posts.Indexes().CreateMany(ctx, postIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create post indexes")
	}

	lockIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := s.locks.Indexes().CreateMany(ctx, lockIndexes); err != nil {
		log.Warn().Err(err).Msg("Failed to create lock indexes")
	}

	return nil
}

// ============================================================================
// USAGE OPERATIONS
// ============================================================================

// LoadUsage returns the ledger for the month containing now, creating a
// fresh one when none is stored yet.
func (s *Store) LoadUsage(ctx context.Context, now time.Time) (*models.Usage, error) {
	month := now.UTC().Format(models.MonthKey)

	var usage models.Usage
	err := s.usage.FindOne(ctx, bson.M{"month": month}).Decode(&usage)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewUsage(now), nil
	}
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// SaveUsage persists the ledger, keyed by month.
func (s *Store) SaveUsage(ctx context.Context, usage *models.Usage) error {
	filter := bson.M{"month": usage.Month}
	update := bson.M{"$set": usage}
	opts := options.Update().SetUpsert(true)

	_, err := s.usage.UpdateOne(ctx, filter, update, opts)
	return err
}

// ============================================================================
// POST OPERATIONS
// ============================================================================

// SavePost archives one published segment.
func (s *Store) SavePost(ctx context.Context, record *models.PostRecord) error {
	if record.PostedAt.IsZero() {
		record.PostedAt = time.Now().UTC()
	}
	_, err := s.posts.InsertOne(ctx, record)
	return err
}

// GetRecentPosts returns the most recently published segments.
func (s *Store) GetRecentPosts(ctx context.Context, limit int) ([]models.PostRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.PostRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetPostsByKind returns recent segments of one kind.
func (s *Store) GetPostsByKind(ctx context.Context, kind models.PostKind, limit int) ([]models.PostRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "posted_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.posts.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.PostRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountPostsToday returns how many segments were archived in the UTC day
// containing now.
func (s *Store) CountPostsToday(ctx context.Context, now time.Time) (int64, error) {
	day := now.UTC().Truncate(24 * time.Hour)
	return s.posts.CountDocuments(ctx, bson.M{"posted_at": bson.M{"$gte": day}})
}

// ============================================================================
// RUN LOCK OPERATIONS
// ============================================================================

type runLock struct {
	Name      string    `bson:"name"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// AcquireRunLock takes the named lock for ttl. A lock that is held and
// unexpired yields ErrRunInProgress; an expired one is stolen.
func (s *Store) AcquireRunLock(ctx context.Context, name string, ttl time.Duration) error {
	now := time.Now().UTC()

	filter := bson.M{
		"name": name,
		"$or": []bson.M{
			{"expires_at": bson.M{"$lte": now}},
			{"expires_at": bson.M{"$exists": false}},
		},
	}
	update := bson.M{"$set": runLock{Name: name, ExpiresAt: now.Add(ttl)}}
	opts := options.Update().SetUpsert(true)

	_, err := s.locks.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrRunInProgress
	}
	return err
}

// ReleaseRunLock drops the named lock. Safe to call on a lock that was
// never taken.
func (s *Store) ReleaseRunLock(ctx context.Context, name string) error {
	_, err := s.locks.DeleteOne(ctx, bson.M{"name": name})
	return err
}
