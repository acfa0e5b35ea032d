package repository

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// HistoryRepository provides Mongo-backed persistence for the
// recent-repository history. One document per repository, keyed by
// "owner/name".
type HistoryRepository struct {
	col *mongo.Collection
}

// NewHistoryRepository returns a HistoryRepository that operates on the "recent_repos" collection.
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		col: db.Collection("recent_repos"),
	}
}

// Touch records a query against repo at time at, creating the document on
// first use and bumping its counter afterwards.
func (r *HistoryRepository) Touch(ctx context.Context, repo models.RepoRef, at time.Time) error {
	id := repo.FullName()
	_, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{
				"owner":           repo.Owner,
				"name":            repo.Name,
				"last_queried_at": at,
			},
			"$inc": bson.M{"query_count": 1},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("[History Repository] Error touching %s: %v", id, err)
		return err
	}
	return nil
}

// Recent returns up to limit repositories, most recently queried first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]models.RecentRepo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "last_queried_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	repos := []models.RecentRepo{}
	if err := cursor.All(ctx, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Ping reports whether the backing database answers.
func (r *HistoryRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}
