package domain

import "time"

// Admin is the domain model for console operators. Admins live in their own
// collection; an email that also exists as a User is a separate principal
// and the two never authenticate against each other's collection.
type Admin struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
