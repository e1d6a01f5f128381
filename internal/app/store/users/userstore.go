// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages documents in the "users" collection. User identity is the
// external integer id, not the Mongo _id.
type Store struct {
	c *mongo.Collection
}

// New creates a user Store on the given database.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the indexes the reconciler and dashboard queries rely
// on. The unique index on id backs the atomic upsert merge key.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_users_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_users_category"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_users_created_at"),
		},
		{
			Keys:    bson.D{{Key: "updatedAt", Value: 1}},
			Options: options.Index().SetName("idx_users_updated_at"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Upsert merges one reconciled user keyed on the external id, as a single
// atomic operation: all mutable fields (plus the denormalized category and
// updatedAt) are set on every write, while createdAt is only applied when the
// document is first inserted. Concurrent runs therefore converge instead of
// duplicating records or rewriting creation times.
func (s *Store) Upsert(ctx context.Context, u models.User) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"id": u.ID},
		bson.M{
			"$set": bson.M{
				"name":      u.Name,
				"email":     u.Email,
				"username":  u.Username,
				"phone":     u.Phone,
				"website":   u.Website,
				"address":   u.Address,
				"company":   u.Company,
				"category":  u.Category,
				"updatedAt": u.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"createdAt": u.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// List returns all users.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns the user with the given email, or nil if none exists.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// NextID returns the next external id for a locally created user: one past
// the current maximum, or 1 for an empty collection.
func (s *Store) NextID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var top struct {
		ID int `bson:"id"`
	}
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return top.ID + 1, nil
}

// Insert stores a locally created user.
func (s *Store) Insert(ctx context.Context, u models.User) error {
	_, err := s.c.InsertOne(ctx, u)
	return err
}

// Update replaces the mutable fields of the user with the given external id.
// It reports whether a user was matched; createdAt is never touched.
func (s *Store) Update(ctx context.Context, id int, u models.User) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"name":      u.Name,
			"email":     u.Email,
			"username":  u.Username,
			"phone":     u.Phone,
			"website":   u.Website,
			"address":   u.Address,
			"company":   u.Company,
			"category":  u.Category,
			"updatedAt": u.UpdatedAt,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the user with the given external id and reports whether a
// user was deleted.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountCategories returns the number of distinct category values.
func (s *Store) CountCategories(ctx context.Context) (int, error) {
	vals, err := s.c.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return 0, err
	}
	return len(vals), nil
}

// CategoryCounts groups users by category. When both bounds are given the
// grouping is restricted to users created inside [start, end].
func (s *Store) CategoryCounts(ctx context.Context, start, end *time.Time) ([]models.CategoryCount, error) {
	match := bson.M{}
	if start != nil && end != nil {
		match["createdAt"] = bson.M{"$gte": *start, "$lte": *end}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
		{"$project": bson.M{"category": "$_id", "count": 1, "_id": 0}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var counts []models.CategoryCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// DailyCreatedCounts counts users per creation day (YYYY-MM-DD), considering
// only users whose updatedAt falls inside [start, end]. Days with no matching
// users are absent from the result, which is sorted ascending by date.
func (s *Store) DailyCreatedCounts(ctx context.Context, start, end time.Time) ([]models.DateCount, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"updatedAt": bson.M{"$gte": start, "$lte": end}}},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
		{"$project": bson.M{"date": "$_id", "count": 1, "_id": 0}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var counts []models.DateCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
