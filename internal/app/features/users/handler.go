// internal/app/features/users/handler.go
package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/syncboard/syncboard/internal/app/system/httpjson"
	"github.com/syncboard/syncboard/internal/app/system/timeouts"
	"github.com/syncboard/syncboard/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the slice of the user store the manual CRUD endpoints use.
type Store interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	NextID(ctx context.Context) (int, error)
	Insert(ctx context.Context, u models.User) error
	Update(ctx context.Context, id int, u models.User) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Handler serves the manual user management endpoints. These exist alongside
// the reconciler: locally created users share the users collection and the
// same id space, so they show up in dashboard aggregates like synced ones.
type Handler struct {
	Store Store
	Log   *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// userPayload is the create/update request body. Address and company accept
// object, string, or absent shapes and are normalized before storage.
type userPayload struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Username string              `json:"username"`
	Phone    string              `json:"phone"`
	Website  string              `json:"website"`
	Address  models.AddressInput `json:"address"`
	Company  models.CompanyInput `json:"company"`
}

// user builds the canonical stored form from the payload.
func (p userPayload) user(id int, now time.Time) models.User {
	company := p.Company.Normalize()
	return models.User{
		ID:        id,
		Name:      p.Name,
		Email:     p.Email,
		Username:  p.Username,
		Phone:     p.Phone,
		Website:   p.Website,
		Address:   p.Address.Normalize(),
		Company:   company,
		Category:  models.Categorize(company.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type listResponse struct {
	Status   string        `json:"status"`
	Code     int           `json:"code"`
	Data     []models.User `json:"data"`
	Metadata struct {
		TotalUsers int `json:"totalUsers"`
	} `json:"metadata"`
}

// List handles GET /: all users plus a total count.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	resp := listResponse{Status: httpjson.StatusSuccess, Code: http.StatusOK, Data: users}
	resp.Metadata.TotalUsers = len(users)
	httpjson.Write(w, http.StatusOK, resp)
}

type createResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Data    models.User `json:"data"`
	Message string      `json:"message"`
}

// Create handles POST /: a locally created user. Name and email are
// mandatory; the email must be unique; the external id continues the
// sequence one past the current maximum.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Name == "" || p.Email == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Store.FindByEmail(ctx, p.Email)
	if err != nil {
		h.Log.Error("email lookup failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	if existing != nil {
		httpjson.Fail(w, http.StatusConflict, "User with this email already exists")
		return
	}

	id, err := h.Store.NextID(ctx)
	if err != nil {
		h.Log.Error("next id lookup failed", zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}

	u := p.user(id, time.Now().UTC())
	if err := h.Store.Insert(ctx, u); err != nil {
		h.Log.Error("user insert failed", zap.Int("user_id", id), zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, createResponse{
		Status:  httpjson.StatusSuccess,
		Code:    http.StatusCreated,
		Data:    u,
		Message: "User created successfully",
	})
}

// Update handles PUT /{id}. Only mutable fields change; createdAt is owned
// by the original insert.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var p userPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if p.Name == "" || p.Email == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Store.Update(ctx, id, p.user(id, time.Now().UTC()))
	if err != nil {
		h.Log.Error("user update failed", zap.Int("user_id", id), zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	if !matched {
		httpjson.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	httpjson.OK(w, http.StatusOK, "User updated successfully")
}

// Delete handles DELETE /{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.Log.Error("user delete failed", zap.Int("user_id", id), zap.Error(err))
		httpjson.FailErr(w, err)
		return
	}
	if !deleted {
		httpjson.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	httpjson.OK(w, http.StatusOK, "User deleted successfully")
}
