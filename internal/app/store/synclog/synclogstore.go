// internal/app/store/synclog/synclogstore.go
package synclogstore

import (
	"context"

	"github.com/syncboard/syncboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the singleton document in the "synclogs" collection.
type Store struct {
	c *mongo.Collection
}

// New creates a sync log Store on the given database.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("synclogs")}
}

// Write records the outcome of a reconciliation attempt. The upsert against
// the empty filter keeps the collection at exactly one document: the log is
// overwritten on every attempt and only ever reflects the latest run.
func (s *Store) Write(ctx context.Context, log models.SyncLog) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": bson.M{
			"lastSyncTime": log.LastSyncTime,
			"status":       log.Status,
			"code":         log.Code,
			"message":      log.Message,
			"runId":        log.RunID,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Last returns the most recent sync log, or nil if no reconciliation has ever
// run.
func (s *Store) Last(ctx context.Context) (*models.SyncLog, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "lastSyncTime", Value: -1}})

	var log models.SyncLog
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&log)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}
