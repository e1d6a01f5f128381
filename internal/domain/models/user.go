// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategory is assigned when a user's company has no name.
const DefaultCategory = "Uncategorized"

// Geo holds the coordinates of a user's address. Coordinates arrive from the
// remote source as strings and are stored as-is.
type Geo struct {
	Lat string `bson:"lat" json:"lat"`
	Lng string `bson:"lng" json:"lng"`
}

// Address is the structured address of a user. Every field is always present
// in storage; missing input fields become empty strings, never null.
type Address struct {
	Street  string `bson:"street" json:"street"`
	Suite   string `bson:"suite" json:"suite"`
	City    string `bson:"city" json:"city"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
	Geo     Geo    `bson:"geo" json:"geo"`
}

// Company is the structured company of a user, with the same defaulting rule
// as Address.
type Company struct {
	Name        string `bson:"name" json:"name"`
	CatchPhrase string `bson:"catchPhrase" json:"catchPhrase"`
	Bs          string `bson:"bs" json:"bs"`
}

// User is the reconciled entity stored in the "users" collection.
//
// ID is the stable external identity and the merge key for reconciliation;
// the Mongo _id is internal only and never exposed as the user's identity.
// Category is denormalized from Company.Name so dashboard aggregations never
// need to reach into the sub-object.
type User struct {
	OID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID       int                `bson:"id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Username string             `bson:"username" json:"username"`
	Phone    string             `bson:"phone" json:"phone"`
	Website  string             `bson:"website" json:"website"`
	Address  Address            `bson:"address" json:"address"`
	Company  Company            `bson:"company" json:"company"`
	Category string             `bson:"category" json:"category"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Categorize derives the denormalized category for a company name.
func Categorize(companyName string) string {
	if companyName == "" {
		return DefaultCategory
	}
	return companyName
}

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Category string `bson:"category" json:"category"`
	Count    int64  `bson:"count" json:"count"`
}

// DateCount is one day of the activity time series. Date is formatted
// YYYY-MM-DD.
type DateCount struct {
	Date  string `bson:"date" json:"date"`
	Count int64  `bson:"count" json:"count"`
}
