package models

import "time"

// Profile stores display details for a customer. Identity is owned by the
// external provider; this record is upserted from verified token claims so
// admins can browse customers without calling out to the identity service.
type Profile struct {
	UserID    string    `bson:"user_id" json:"user_id"` // Subject id from the identity provider
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Role      string    `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
