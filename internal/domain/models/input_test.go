package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/syncboard/syncboard/internal/domain/models"
)

func TestAddressInput_Object(t *testing.T) {
	var in models.AddressInput
	payload := `{"street":"Kulas Light","suite":"Apt. 556","city":"Gwenborough","zipcode":"92998-3874","geo":{"lat":"-37.3159","lng":"81.1496"}}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := in.Normalize()
	if got.Street != "Kulas Light" {
		t.Errorf("Street: got %q, want %q", got.Street, "Kulas Light")
	}
	if got.Suite != "Apt. 556" {
		t.Errorf("Suite: got %q, want %q", got.Suite, "Apt. 556")
	}
	if got.Geo.Lat != "-37.3159" || got.Geo.Lng != "81.1496" {
		t.Errorf("Geo: got %+v", got.Geo)
	}
}

func TestAddressInput_String(t *testing.T) {
	var in models.AddressInput
	if err := json.Unmarshal([]byte(`"123 Main St"`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := in.Normalize()
	if got.Street != "123 Main St" {
		t.Errorf("Street: got %q, want %q", got.Street, "123 Main St")
	}
	if got.Suite != "" || got.City != "" || got.Zipcode != "" {
		t.Errorf("expected empty fields, got %+v", got)
	}
	if got.Geo.Lat != "" || got.Geo.Lng != "" {
		t.Errorf("expected empty geo, got %+v", got.Geo)
	}
}

func TestAddressInput_AbsentAndNull(t *testing.T) {
	for _, payload := range []string{`null`, `[1,2]`, `42`} {
		var in models.AddressInput
		if err := json.Unmarshal([]byte(payload), &in); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if got := in.Normalize(); got != (models.Address{}) {
			t.Errorf("payload %s: expected zero address, got %+v", payload, got)
		}
	}
}

func TestAddressInput_NumericZipcode(t *testing.T) {
	var in models.AddressInput
	if err := json.Unmarshal([]byte(`{"zipcode":92998}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := in.Normalize().Zipcode; got != "92998" {
		t.Errorf("Zipcode: got %q, want %q", got, "92998")
	}
}

func TestCompanyInput_Shapes(t *testing.T) {
	var obj models.CompanyInput
	if err := json.Unmarshal([]byte(`{"name":"Romaguera-Crona","catchPhrase":"Multi-layered","bs":"harness"}`), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := obj.Normalize(); got.Name != "Romaguera-Crona" || got.CatchPhrase != "Multi-layered" || got.Bs != "harness" {
		t.Errorf("object form: got %+v", got)
	}

	var str models.CompanyInput
	if err := json.Unmarshal([]byte(`"Acme"`), &str); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := str.Normalize(); got.Name != "Acme" || got.CatchPhrase != "" {
		t.Errorf("string form: got %+v", got)
	}
}

func TestCategorize(t *testing.T) {
	if got := models.Categorize("Foo"); got != "Foo" {
		t.Errorf("got %q, want %q", got, "Foo")
	}
	if got := models.Categorize(""); got != models.DefaultCategory {
		t.Errorf("got %q, want %q", got, models.DefaultCategory)
	}
}

func TestSourceUser_User(t *testing.T) {
	payload := `{
		"id": 1,
		"name": "Leanne Graham",
		"email": "Sincere@april.biz",
		"username": "Bret",
		"phone": "1-770-736-8031",
		"website": "hildegard.org",
		"address": {"street": "Kulas Light", "city": "Gwenborough", "geo": {"lat": "-37.3159"}},
		"company": {"name": "Romaguera-Crona"}
	}`
	var src models.SourceUser
	if err := json.Unmarshal([]byte(payload), &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := src.User(now)

	if u.ID != 1 || u.Name != "Leanne Graham" || u.Email != "Sincere@april.biz" {
		t.Errorf("identity fields: got %+v", u)
	}
	if u.Category != "Romaguera-Crona" {
		t.Errorf("Category: got %q, want %q", u.Category, "Romaguera-Crona")
	}
	if u.Address.Suite != "" || u.Address.Geo.Lng != "" {
		t.Errorf("missing address fields should default to empty: %+v", u.Address)
	}
	if !u.CreatedAt.Equal(now) || !u.UpdatedAt.Equal(now) {
		t.Errorf("timestamps: created=%v updated=%v", u.CreatedAt, u.UpdatedAt)
	}
}

func TestSourceUser_EmptyCompanyName(t *testing.T) {
	var src models.SourceUser
	if err := json.Unmarshal([]byte(`{"id":7,"name":"X","email":"x@y.z"}`), &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	u := src.User(time.Now())
	if u.Category != models.DefaultCategory {
		t.Errorf("Category: got %q, want %q", u.Category, models.DefaultCategory)
	}
}
