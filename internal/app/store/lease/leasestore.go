// internal/app/store/lease/leasestore.go
package leasestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResourceName identifies the single reconciliation lease document.
const ResourceName = "user-sync"

// ErrHeld is returned by Acquire when another run currently holds the lease.
var ErrHeld = errors.New("sync lease is held by another run")

// Store manages the run-level mutual-exclusion lease in the "sync_leases"
// collection. The lease keeps overlapping reconciliation triggers (manual
// request plus scheduler, for example) from running concurrently. Expiry is
// checked explicitly on acquire, so a crashed holder can never deadlock the
// system: once its lease lapses the next run steals it.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a lease Store on the given database. The ttl bounds how long a
// holder that never releases can block other runs.
func New(db *mongo.Database, ttl time.Duration) *Store {
	return &Store{c: db.Collection("sync_leases"), ttl: ttl}
}

// Acquire takes the lease for owner. The upsert matches only an expired lease
// document: if the lease is live under a different owner the upsert collides
// with the _id and Acquire reports ErrHeld. The whole check-and-take is one
// atomic storage operation.
func (s *Store) Acquire(ctx context.Context, owner string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": ResourceName, "expiresAt": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{
			"owner":     owner,
			"expiresAt": now.Add(s.ttl),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrHeld
		}
		return err
	}
	return nil
}

// Release frees the lease if owner still holds it. Releasing a lease that was
// already stolen after expiry is a no-op.
func (s *Store) Release(ctx context.Context, owner string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": ResourceName, "owner": owner})
	return err
}
