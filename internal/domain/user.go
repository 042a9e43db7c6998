package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"                json:"id"`
	Name             string             `bson:"name"                         json:"name"`
	Email            string             `bson:"email"                        json:"email"`
	PasswordHash     string             `bson:"password"                     json:"-"`
	Role             string             `bson:"role"                         json:"role"`
	ResetToken       string             `bson:"reset_token,omitempty"        json:"-"`
	ResetTokenExpiry *time.Time         `bson:"reset_token_expiry,omitempty" json:"-"`
	RefreshToken     string             `bson:"refresh_token,omitempty"      json:"-"`
	CreatedAt        time.Time          `bson:"created_at"                   json:"createdAt"`
}

// FormattedCreatedAt mirrors the long en-US date shown in the users listing,
// e.g. "Monday, January 6, 2025".
func (u User) FormattedCreatedAt() string {
	return u.CreatedAt.Format("Monday, January 2, 2006")
}
