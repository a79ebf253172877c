package domain

import "time"

// User is the domain model for customers who browse the menu and place orders.
// PasswordHash normally holds a bcrypt hash; accounts imported from the
// pre-hashing era may still carry the plaintext password until their first
// successful login upgrades it.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	PhoneNumber  string    `bson:"phone_number" json:"phone"`
	Address      string    `bson:"address" json:"address"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
