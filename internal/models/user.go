package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// Photo references an image stored at the external image host.
type Photo struct {
	ID        string `bson:"id,omitempty" json:"id,omitempty"`
	SecureURL string `bson:"secure_url,omitempty" json:"secure_url,omitempty"`
}

// User represents an account. The password hash and reset-token fields are
// never serialized into responses.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Email                string             `bson:"email" json:"email"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	Role                 string             `bson:"role" json:"role"`
	Photo                Photo              `bson:"photo,omitempty" json:"photo"`
	ForgotPasswordToken  string             `bson:"forgotPasswordToken,omitempty" json:"-"`
	ForgotPasswordExpiry *time.Time         `bson:"forgotPasswordExpiry,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
