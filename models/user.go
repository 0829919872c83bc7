package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password" json:"-"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the subset of User embedded in idea and comment responses.
type PublicUser struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Username       string             `bson:"username" json:"username"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture"`
}

// Public strips credential fields for embedding in responses.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
