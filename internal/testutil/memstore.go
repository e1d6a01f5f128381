// internal/testutil/memstore.go
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
)

// MemUserStore is an in-memory stand-in for the Mongo user store. It keeps
// the same merge semantics as the real store (atomic upsert keyed on the
// external id, createdAt applied on first insertion only) so engine and
// handler tests can exercise reconciliation and aggregation logic without a
// database.
type MemUserStore struct {
	mu    sync.Mutex
	users map[int]models.User

	// UpsertErrAfter, when >= 0, makes Upsert fail with UpsertErr once that
	// many upserts have succeeded. Used to test partial-failure behavior.
	UpsertErrAfter int
	UpsertErr      error

	upserts int
}

// NewMemUserStore returns an empty in-memory user store.
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: map[int]models.User{}, UpsertErrAfter: -1}
}

// Upsert merges u keyed on its external id, preserving createdAt for
// existing users.
func (m *MemUserStore) Upsert(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpsertErr != nil && m.UpsertErrAfter >= 0 && m.upserts >= m.UpsertErrAfter {
		return m.UpsertErr
	}
	m.upserts++

	if existing, ok := m.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
		u.OID = existing.OID
	}
	m.users[u.ID] = u
	return nil
}

// List returns all users sorted by external id.
func (m *MemUserStore) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the user with the given id, or nil.
func (m *MemUserStore) Get(id int) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok {
		return &u
	}
	return nil
}

// FindByEmail returns the user with the given email, or nil.
func (m *MemUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// NextID returns max(id)+1, or 1 when empty.
func (m *MemUserStore) NextID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := 1
	for id := range m.users {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

// Insert stores a new user.
func (m *MemUserStore) Insert(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[u.ID] = u
	return nil
}

// Update replaces the mutable fields of the user with the given id,
// preserving createdAt.
func (m *MemUserStore) Update(ctx context.Context, id int, u models.User) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[id]
	if !ok {
		return false, nil
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.OID = existing.OID
	m.users[id] = u
	return true, nil
}

// Delete removes the user with the given id.
func (m *MemUserStore) Delete(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

// CountUsers returns the total number of users.
func (m *MemUserStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

// CountCategories returns the number of distinct categories.
func (m *MemUserStore) CountCategories(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{}
	for _, u := range m.users {
		seen[u.Category] = struct{}{}
	}
	return len(seen), nil
}

// CategoryCounts groups users by category, optionally restricted to users
// created inside [start, end].
func (m *MemUserStore) CategoryCounts(ctx context.Context, start, end *time.Time) ([]models.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int64{}
	for _, u := range m.users {
		if start != nil && end != nil {
			if u.CreatedAt.Before(*start) || u.CreatedAt.After(*end) {
				continue
			}
		}
		counts[u.Category]++
	}

	out := make([]models.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, models.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

// DailyCreatedCounts counts users per creation day, considering only users
// whose updatedAt falls inside [start, end]. Sorted ascending by date.
func (m *MemUserStore) DailyCreatedCounts(ctx context.Context, start, end time.Time) ([]models.DateCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int64{}
	for _, u := range m.users {
		if u.UpdatedAt.Before(start) || u.UpdatedAt.After(end) {
			continue
		}
		counts[u.CreatedAt.UTC().Format("2006-01-02")]++
	}

	out := make([]models.DateCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, models.DateCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
