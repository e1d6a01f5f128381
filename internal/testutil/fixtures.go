// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// BuildUser returns a fully populated user with the given id and company,
// both timestamps set to ts. It does not touch the database.
func BuildUser(id int, company string, ts time.Time) models.User {
	return models.User{
		ID:       id,
		Name:     fmt.Sprintf("User %d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
		Username: fmt.Sprintf("user%d", id),
		Phone:    "555-0100",
		Website:  "example.com",
		Address: models.Address{
			Street:  "1 Test Way",
			City:    "Testville",
			Zipcode: "00000",
		},
		Company:   models.Company{Name: company},
		Category:  models.Categorize(company),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// CreateUser inserts a user built by BuildUser into the users collection.
func (f *Fixtures) CreateUser(ctx context.Context, id int, company string, ts time.Time) models.User {
	f.t.Helper()

	u := BuildUser(id, company, ts)
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserAt inserts a user with distinct creation and update times.
func (f *Fixtures) CreateUserAt(ctx context.Context, id int, company string, createdAt, updatedAt time.Time) models.User {
	f.t.Helper()

	u := BuildUser(id, company, createdAt)
	u.UpdatedAt = updatedAt
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
