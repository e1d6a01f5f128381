package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	usersfeature "github.com/syncboard/syncboard/internal/app/features/users"
	"github.com/syncboard/syncboard/internal/domain/models"
	"github.com/syncboard/syncboard/internal/testutil"
	"go.uber.org/zap"
)

func newHandler() (*usersfeature.Handler, *testutil.MemUserStore) {
	store := testutil.NewMemUserStore()
	return usersfeature.NewHandler(store, zap.NewNop()), store
}

func TestList(t *testing.T) {
	h, store := newHandler()
	ts := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Insert(context.Background(), testutil.BuildUser(1, "Foo", ts))
	_ = store.Insert(context.Background(), testutil.BuildUser(2, "Bar", ts))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body struct {
		Data     []models.User `json:"data"`
		Metadata struct {
			TotalUsers int `json:"totalUsers"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 2 || body.Metadata.TotalUsers != 2 {
		t.Errorf("body: %d users, metadata %+v", len(body.Data), body.Metadata)
	}
}

func TestCreate_RequiresNameAndEmail(t *testing.T) {
	h, _ := newHandler()

	for _, payload := range []string{
		`{"email":"a@b.c"}`,
		`{"name":"A"}`,
		`{}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		h.Create(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s: got %d, want 400", payload, rec.Code)
		}
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	h, store := newHandler()
	u := testutil.BuildUser(1, "Foo", time.Now().UTC())
	u.Email = "taken@example.com"
	_ = store.Insert(context.Background(), u)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"B","email":"taken@example.com"}`))
	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
}

func TestCreate_AssignsNextIDAndNormalizes(t *testing.T) {
	h, store := newHandler()
	_ = store.Insert(context.Background(), testutil.BuildUser(7, "Foo", time.Now().UTC()))

	payload := `{
		"name": "New User",
		"email": "new@example.com",
		"address": "42 Plain Street",
		"company": {"name": ""}
	}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Data models.User `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ID != 8 {
		t.Errorf("id: got %d, want 8 (one past current max)", body.Data.ID)
	}
	if body.Data.Address.Street != "42 Plain Street" {
		t.Errorf("string address should become the street, got %+v", body.Data.Address)
	}
	if body.Data.Category != models.DefaultCategory {
		t.Errorf("category: got %q, want %q", body.Data.Category, models.DefaultCategory)
	}
	if body.Data.CreatedAt.IsZero() || body.Data.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	stored := store.Get(8)
	if stored == nil || stored.Email != "new@example.com" {
		t.Errorf("stored user: %+v", stored)
	}
}

func TestCreate_EmptyStoreStartsAtOne(t *testing.T) {
	h, store := newHandler()

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"A","email":"a@b.c"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}
	if store.Get(1) == nil {
		t.Error("first user should get id 1")
	}
}

func TestUpdate(t *testing.T) {
	h, store := newHandler()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = store.Insert(context.Background(), testutil.BuildUser(3, "Foo", created))

	payload := `{"name":"Renamed","email":"renamed@example.com","company":{"name":"Baz"}}`
	req := testutil.WithChiURLParam(
		httptest.NewRequest(http.MethodPut, "/3", strings.NewReader(payload)), "id", "3")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	u := store.Get(3)
	if u.Name != "Renamed" || u.Category != "Baz" {
		t.Errorf("stored user: %+v", u)
	}
	if !u.CreatedAt.Equal(created) {
		t.Errorf("createdAt must not change on update: %v", u.CreatedAt)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	h, _ := newHandler()

	req := testutil.WithChiURLParam(
		httptest.NewRequest(http.MethodPut, "/99", strings.NewReader(`{"name":"X","email":"x@y.z"}`)), "id", "99")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestUpdate_BadID(t *testing.T) {
	h, _ := newHandler()

	req := testutil.WithChiURLParam(
		httptest.NewRequest(http.MethodPut, "/abc", strings.NewReader(`{"name":"X","email":"x@y.z"}`)), "id", "abc")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	h, store := newHandler()
	_ = store.Insert(context.Background(), testutil.BuildUser(5, "Foo", time.Now().UTC()))

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodDelete, "/5", nil), "id", "5")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if store.Get(5) != nil {
		t.Error("user should be gone")
	}

	// Deleting again is a 404.
	req = testutil.WithChiURLParam(httptest.NewRequest(http.MethodDelete, "/5", nil), "id", "5")
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete: got %d, want 404", rec.Code)
	}
}
