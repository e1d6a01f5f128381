// internal/domain/models/synclog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncLog describes the most recent reconciliation attempt. Exactly one
// document exists in the "synclogs" collection at any time: it is upserted
// against the empty filter on every run, so it always reflects the latest
// attempt only.
type SyncLog struct {
	OID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	LastSyncTime time.Time          `bson:"lastSyncTime" json:"lastSyncTime"`
	Status       string             `bson:"status" json:"status"`
	Code         int                `bson:"code" json:"code"`
	Message      string             `bson:"message" json:"message"`
	RunID        string             `bson:"runId,omitempty" json:"runId,omitempty"`
}
