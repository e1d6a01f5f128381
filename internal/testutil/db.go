// internal/testutil/db.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// EnvTestMongoURI names the environment variable that points integration
// tests at a running MongoDB instance.
const EnvTestMongoURI = "SYNCBOARD_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB instance and returns a database
// with a unique name, dropped automatically when the test finishes. Tests
// that need a real database are skipped when EnvTestMongoURI is not set.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(EnvTestMongoURI)
	if uri == "" {
		t.Skipf("%s not set; skipping MongoDB integration test", EnvTestMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("syncboard_test_%s", uuid.NewString()[:8]))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test db: %v", err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("disconnect test mongo: %v", err)
		}
	})

	return db
}

// TestContext returns a context bounded by the medium operation timeout,
// suitable for most store calls in tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeouts.Medium())
}
