// internal/domain/models/input.go
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// AddressInput accepts the heterogeneous address shapes seen at the API
// boundary: a structured object, a bare string (taken as the street), or
// absent/null. Normalize collapses all of them into the canonical Address
// with empty-string defaults.
type AddressInput struct {
	obj map[string]any
	str string
}

func (a *AddressInput) UnmarshalJSON(b []byte) error {
	*a = AddressInput{}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err == nil {
		a.obj = obj
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.str = s
		return nil
	}
	// Arrays, numbers, booleans: treat as absent rather than rejecting the
	// whole payload.
	return nil
}

// Normalize returns the canonical structured address.
func (a AddressInput) Normalize() Address {
	if a.obj != nil {
		geo, _ := a.obj["geo"].(map[string]any)
		return Address{
			Street:  stringField(a.obj, "street"),
			Suite:   stringField(a.obj, "suite"),
			City:    stringField(a.obj, "city"),
			Zipcode: stringField(a.obj, "zipcode"),
			Geo: Geo{
				Lat: stringField(geo, "lat"),
				Lng: stringField(geo, "lng"),
			},
		}
	}
	return Address{Street: a.str}
}

// CompanyInput accepts a structured object, a bare string (taken as the
// company name), or absent/null, mirroring AddressInput.
type CompanyInput struct {
	obj map[string]any
	str string
}

func (c *CompanyInput) UnmarshalJSON(b []byte) error {
	*c = CompanyInput{}
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err == nil {
		c.obj = obj
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.str = s
		return nil
	}
	return nil
}

// Normalize returns the canonical structured company.
func (c CompanyInput) Normalize() Company {
	if c.obj != nil {
		return Company{
			Name:        stringField(c.obj, "name"),
			CatchPhrase: stringField(c.obj, "catchPhrase"),
			Bs:          stringField(c.obj, "bs"),
		}
	}
	return Company{Name: c.str}
}

// stringField pulls a string out of a decoded JSON object, coercing numbers
// so inputs like {"zipcode": 92998} survive intact. Anything else becomes "".
func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// SourceUser is the wire shape of one record from the remote user dataset.
type SourceUser struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	Phone    string       `json:"phone"`
	Website  string       `json:"website"`
	Address  AddressInput `json:"address"`
	Company  CompanyInput `json:"company"`
}

// User normalizes the source record into the canonical stored form, deriving
// the category from the company name. CreatedAt and UpdatedAt are both set to
// now; the storage layer only applies CreatedAt on first insertion.
func (s SourceUser) User(now time.Time) User {
	company := s.Company.Normalize()
	return User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Username:  s.Username,
		Phone:     s.Phone,
		Website:   s.Website,
		Address:   s.Address.Normalize(),
		Company:   company,
		Category:  Categorize(company.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
